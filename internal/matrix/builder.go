package matrix

import (
	"sort"
	"strings"

	"sdkmatrix/internal/catalog"
)

// Section is the per-product presentation unit. Features[0] is always the
// product's own SDK feature; the builder maintains that invariant and the
// projector is the only consumer that relies on it.
type Section struct {
	Key              string
	Title            string
	Description      string
	IntegrationPaths []catalog.IntegrationPath
	Features         []catalog.Feature
}

// BuildResult carries the built sections plus non-fatal findings. A
// cross-product feature referencing an unknown product key does not fail the
// build; the reference is skipped and recorded here so tooling can surface
// catalog authoring mistakes.
type BuildResult struct {
	Sections      []Section
	UnmatchedRefs []string // "feature name -> product key"
}

// Build produces one section per product, in product order, and expands
// every cross-product feature into the sections it applies to. Pure: the
// same inputs always produce the same result, and the inputs are never
// mutated.
func Build(products []catalog.Product, crossFeatures []catalog.CrossProductFeature) *BuildResult {
	result := &BuildResult{Sections: make([]Section, 0, len(products))}

	index := make(map[string]int, len(products))
	for _, p := range products {
		index[p.Key] = len(result.Sections)
		result.Sections = append(result.Sections, Section{
			Key:              p.Key,
			Title:            p.Name,
			Description:      p.Description,
			IntegrationPaths: append([]catalog.IntegrationPath(nil), p.IntegrationPaths...),
			Features:         []catalog.Feature{primaryFeature(p)},
		})
	}

	unmatched := make(map[string]bool)
	for _, cf := range crossFeatures {
		for _, ref := range cf.AvailableIn {
			i, ok := index[ref.Product]
			if !ok {
				unmatched[cf.Name+" -> "+ref.Product] = true
				continue
			}
			result.Sections[i].Features = append(result.Sections[i].Features, expand(cf, ref))
		}
	}

	result.UnmatchedRefs = sortedSetKeys(unmatched)
	return result
}

// primaryFeature synthesizes the section's baseline feature from the
// product's own availability map.
func primaryFeature(p catalog.Product) catalog.Feature {
	desc := p.SDKDescription
	if desc == "" {
		desc = p.Description
	}
	return catalog.Feature{
		Name:        p.Name + " SDK",
		Description: desc,
		Category:    p.Name,
		Frameworks:  p.Frameworks,
	}
}

func expand(cf catalog.CrossProductFeature, ref catalog.ProductRef) catalog.Feature {
	f := cf.Feature
	if notes := strings.TrimSpace(ref.Notes); notes != "" {
		f.Description = f.Description + " (" + notes + ")"
	}
	return f
}

func sortedSetKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
