package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    ActionCategory
		wantErr bool
	}{
		{"recycle", CategoryRecycle, false},
		{"Recycle", CategoryRecycle, false},
		{"plant_tree", CategoryPlantTree, false},
		{"Plant-Tree", CategoryPlantTree, false},
		{"plant tree", CategoryPlantTree, false},
		{"  clean_up  ", CategoryCleanUp, false},
		{"reduce_energy", CategoryReduceEnergy, false},
		{"conserve_water", CategoryConserveWater, false},
		{"jetski", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategories_AllValid(t *testing.T) {
	categories := Categories()
	assert.Len(t, categories, 5)
	for _, c := range categories {
		assert.True(t, c.IsValid())
	}
	assert.False(t, ActionCategory("jetski").IsValid())
}
