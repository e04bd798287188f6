// Package taxonomy defines the static per-category attributes used by the
// verification pipeline: display names, credit values, and the keyword
// vocabulary each action category is expected to match.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verdantlabs/greenproof/internal/model"
)

// Attributes holds the immutable configuration for one action category.
type Attributes struct {
	DisplayName string
	Credits     int
	Keywords    []string
}

// attributes is the authoritative category table. Keywords must be lowercase;
// credits must be positive. New returns an error if any category in
// model.Categories is missing here, so adding a category is a single
// guaranteed-total update.
var attributes = map[model.ActionCategory]Attributes{
	model.CategoryRecycle: {
		DisplayName: "Recycle",
		Credits:     5,
		Keywords:    []string{"bottle", "container", "plastic", "paper", "cardboard", "can", "glass", "recycling"},
	},
	model.CategoryPlantTree: {
		DisplayName: "Plant a Tree",
		Credits:     20,
		Keywords:    []string{"tree", "plant", "garden", "soil", "sapling", "seedling", "nature"},
	},
	model.CategoryCleanUp: {
		DisplayName: "Clean Up",
		Credits:     15,
		Keywords:    []string{"trash", "garbage", "waste", "litter", "cleaning", "beach", "park"},
	},
	model.CategoryReduceEnergy: {
		DisplayName: "Reduce Energy",
		Credits:     10,
		Keywords:    []string{"light", "bulb", "led", "thermostat", "switch", "appliance"},
	},
	model.CategoryConserveWater: {
		DisplayName: "Conserve Water",
		Credits:     10,
		Keywords:    []string{"water", "tap", "faucet", "shower", "irrigation", "garden"},
	},
}

// Taxonomy provides pure, total lookups over the closed category set.
type Taxonomy struct {
	keywords map[model.ActionCategory]map[string]struct{}
}

// New builds a Taxonomy from the static category table, validating that the
// table is total over model.Categories and internally consistent.
func New() (*Taxonomy, error) {
	keywords := make(map[model.ActionCategory]map[string]struct{}, len(attributes))

	for _, category := range model.Categories() {
		attrs, ok := attributes[category]
		if !ok {
			return nil, fmt.Errorf("taxonomy: no attributes defined for category %q", category)
		}
		if attrs.DisplayName == "" {
			return nil, fmt.Errorf("taxonomy: category %q has no display name", category)
		}
		if attrs.Credits <= 0 {
			return nil, fmt.Errorf("taxonomy: category %q has non-positive credit value %d", category, attrs.Credits)
		}
		if len(attrs.Keywords) == 0 {
			return nil, fmt.Errorf("taxonomy: category %q has no keywords", category)
		}

		set := make(map[string]struct{}, len(attrs.Keywords))
		for _, kw := range attrs.Keywords {
			if kw == "" || kw != strings.ToLower(strings.TrimSpace(kw)) {
				return nil, fmt.Errorf("taxonomy: category %q has malformed keyword %q", category, kw)
			}
			set[kw] = struct{}{}
		}
		keywords[category] = set
	}

	return &Taxonomy{keywords: keywords}, nil
}

// Keywords returns the keyword set for a category as a sorted slice.
func (t *Taxonomy) Keywords(category model.ActionCategory) []string {
	set := t.keywords[category]
	out := make([]string, 0, len(set))
	for kw := range set {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether term is in the category's keyword set. The term
// must already be lowercase and trimmed.
func (t *Taxonomy) Contains(category model.ActionCategory, term string) bool {
	_, ok := t.keywords[category][term]
	return ok
}

// Credits returns the credit value awarded for an accepted action.
func (t *Taxonomy) Credits(category model.ActionCategory) int {
	return attributes[category].Credits
}

// DisplayName returns the user-facing name for a category.
func (t *Taxonomy) DisplayName(category model.ActionCategory) string {
	return attributes[category].DisplayName
}
