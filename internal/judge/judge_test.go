package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/taxonomy"
)

func newJudge(t *testing.T) *Judge {
	t.Helper()
	tax, err := taxonomy.New()
	require.NoError(t, err)
	return New(tax)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name            string
		classifications []model.ClassificationResult
		category        model.ActionCategory
		wantAccepted    bool
		wantMatched     []string
	}{
		{
			name: "plastic bottle matches recycle on both words",
			classifications: []model.ClassificationResult{
				{Label: "plastic bottle", Confidence: 0.82},
				{Label: "desk", Confidence: 0.3},
			},
			category:     model.CategoryRecycle,
			wantAccepted: true,
			wantMatched:  []string{"bottle", "plastic"},
		},
		{
			name: "comma-separated synonyms are split into candidate terms",
			classifications: []model.ClassificationResult{
				{Label: "pop bottle, soda bottle", Confidence: 0.7},
			},
			category:     model.CategoryRecycle,
			wantAccepted: true,
			wantMatched:  []string{"bottle"},
		},
		{
			name: "exact keyword match accepts",
			classifications: []model.ClassificationResult{
				{Label: "bottle", Confidence: 0.82},
				{Label: "desk", Confidence: 0.3},
			},
			category:     model.CategoryRecycle,
			wantAccepted: true,
			wantMatched:  []string{"bottle"},
		},
		{
			name: "case-insensitive match",
			classifications: []model.ClassificationResult{
				{Label: "Bottle", Confidence: 0.5},
			},
			category:     model.CategoryRecycle,
			wantAccepted: true,
			wantMatched:  []string{"bottle"},
		},
		{
			name: "comma list containing a keyword accepts",
			classifications: []model.ClassificationResult{
				{Label: "water bottle, bottle, flask", Confidence: 0.6},
			},
			category:     model.CategoryRecycle,
			wantAccepted: true,
			wantMatched:  []string{"bottle"},
		},
		{
			name: "low-confidence match above the floor still accepts",
			classifications: []model.ClassificationResult{
				{Label: "tree", Confidence: 0.11},
			},
			category:     model.CategoryPlantTree,
			wantAccepted: true,
			wantMatched:  []string{"tree"},
		},
		{
			name: "car does not verify plant_tree",
			classifications: []model.ClassificationResult{
				{Label: "car", Confidence: 0.9},
			},
			category:     model.CategoryPlantTree,
			wantAccepted: false,
		},
		{
			name:            "empty classifications reject",
			classifications: nil,
			category:        model.CategoryRecycle,
			wantAccepted:    false,
		},
		{
			name: "matches gathered across all classifications, not just the top one",
			classifications: []model.ClassificationResult{
				{Label: "desk", Confidence: 0.9},
				{Label: "garbage", Confidence: 0.15},
				{Label: "litter", Confidence: 0.12},
			},
			category:     model.CategoryCleanUp,
			wantAccepted: true,
			wantMatched:  []string{"garbage", "litter"},
		},
		{
			name: "whitespace around comma tokens is trimmed",
			classifications: []model.ClassificationResult{
				{Label: " faucet ,  shower ", Confidence: 0.4},
			},
			category:     model.CategoryConserveWater,
			wantAccepted: true,
			wantMatched:  []string{"faucet", "shower"},
		},
	}

	j := newJudge(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := j.Verify(tt.classifications, tt.category)

			assert.Equal(t, tt.wantAccepted, verdict.Accepted)
			assert.Equal(t, tt.category, verdict.Category)
			assert.Equal(t, tt.classifications, verdict.Classifications)
			assert.NotEmpty(t, verdict.Rationale)

			if tt.wantMatched != nil {
				assert.Equal(t, tt.wantMatched, verdict.MatchedLabels)
			}
			// accepted == !matchedLabels.isEmpty holds for every input.
			assert.Equal(t, len(verdict.MatchedLabels) > 0, verdict.Accepted)
		})
	}
}

func TestVerify_EmptyRejectsEveryCategory(t *testing.T) {
	j := newJudge(t)
	for _, category := range model.Categories() {
		verdict := j.Verify(nil, category)
		assert.False(t, verdict.Accepted, "empty classifications must reject %s", category)
		assert.Empty(t, verdict.MatchedLabels)
		assert.Contains(t, verdict.Rationale, "nothing recognizable")
	}
}

func TestVerify_KeywordAboveFloorAcceptsForEveryCategory(t *testing.T) {
	tax, err := taxonomy.New()
	require.NoError(t, err)
	j := New(tax)

	for _, category := range model.Categories() {
		kw := tax.Keywords(category)[0]
		verdict := j.Verify([]model.ClassificationResult{{Label: kw, Confidence: 0.11}}, category)
		assert.True(t, verdict.Accepted, "keyword %q must verify %s", kw, category)
		assert.Contains(t, verdict.MatchedLabels, kw)
	}
}

func TestVerify_Idempotent(t *testing.T) {
	j := newJudge(t)
	classifications := []model.ClassificationResult{
		{Label: "bottle, container", Confidence: 0.55},
		{Label: "desk", Confidence: 0.2},
	}

	first := j.Verify(classifications, model.CategoryRecycle)
	second := j.Verify(classifications, model.CategoryRecycle)
	assert.Equal(t, first, second)
}

func TestVerify_MatchedLabelsSubsetOfKeywords(t *testing.T) {
	tax, err := taxonomy.New()
	require.NoError(t, err)
	j := New(tax)

	classifications := []model.ClassificationResult{
		{Label: "plastic, bottle, spaceship", Confidence: 0.5},
		{Label: "glass", Confidence: 0.3},
	}
	verdict := j.Verify(classifications, model.CategoryRecycle)

	require.True(t, verdict.Accepted)
	for _, matched := range verdict.MatchedLabels {
		assert.True(t, tax.Contains(model.CategoryRecycle, matched),
			"matched label %q must be a taxonomy keyword", matched)
	}
	assert.Equal(t, []string{"bottle", "glass", "plastic"}, verdict.MatchedLabels)
}

func TestVerify_RationaleContents(t *testing.T) {
	j := newJudge(t)

	accepted := j.Verify([]model.ClassificationResult{{Label: "bottle", Confidence: 0.82}}, model.CategoryRecycle)
	assert.Contains(t, accepted.Rationale, "Recycle")
	assert.Contains(t, accepted.Rationale, "bottle")
	assert.Contains(t, accepted.Rationale, "82%")

	rejected := j.Verify([]model.ClassificationResult{{Label: "car", Confidence: 0.9}}, model.CategoryPlantTree)
	assert.Contains(t, rejected.Rationale, "Plant a Tree")
	assert.Contains(t, rejected.Rationale, "car (90%)")
}
