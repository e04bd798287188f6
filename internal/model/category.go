// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// ActionCategory identifies one of the eco actions a user can claim.
type ActionCategory string

// The closed set of action categories.
const (
	CategoryRecycle       ActionCategory = "recycle"
	CategoryPlantTree     ActionCategory = "plant_tree"
	CategoryCleanUp       ActionCategory = "clean_up"
	CategoryReduceEnergy  ActionCategory = "reduce_energy"
	CategoryConserveWater ActionCategory = "conserve_water"
)

// Categories returns every valid action category. The order is stable.
func Categories() []ActionCategory {
	return []ActionCategory{
		CategoryRecycle,
		CategoryPlantTree,
		CategoryCleanUp,
		CategoryReduceEnergy,
		CategoryConserveWater,
	}
}

// IsValid reports whether c is a member of the closed category set.
func (c ActionCategory) IsValid() bool {
	switch c {
	case CategoryRecycle, CategoryPlantTree, CategoryCleanUp, CategoryReduceEnergy, CategoryConserveWater:
		return true
	}
	return false
}

// ParseCategory converts user input into an ActionCategory. It accepts the
// canonical form ("plant_tree") as well as hyphenated and case-variant
// spellings ("Plant-Tree").
func ParseCategory(s string) (ActionCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	c := ActionCategory(normalized)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown action category: %q", s)
	}
	return c, nil
}
