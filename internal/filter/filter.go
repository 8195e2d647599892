package filter

import (
	"strings"

	"sdkmatrix/internal/catalog"
	"sdkmatrix/internal/matrix"
)

// Filters holds the active filter state. An empty string means the axis is
// unconstrained. Framework and Product carry keys ("net-android"), not
// display names; IntegrationPath carries a path type value.
type Filters struct {
	Framework       string
	Product         string
	IntegrationPath string
	Search          string
}

// Empty reports whether no axis is set.
func (f Filters) Empty() bool {
	return f.Framework == "" && f.Product == "" && f.IntegrationPath == "" && f.Search == ""
}

// Engine evaluates filter predicates against sections and features. It holds
// the framework key→name table so filters can use stable keys while
// availability maps use display names. The engine never mutates its inputs;
// both Sections and Features return freshly built slices.
type Engine struct {
	frameworkNames map[string]string // key -> display name
}

func New(frameworks []catalog.Framework) *Engine {
	names := make(map[string]string, len(frameworks))
	for _, f := range frameworks {
		names[f.Key] = f.Name
	}
	return &Engine{frameworkNames: names}
}

// Sections returns the sections satisfying every set axis. A section failing
// any axis is dropped whole, not feature-filtered down. Unknown framework,
// product, or path values match nothing.
func (e *Engine) Sections(sections []matrix.Section, f Filters) []matrix.Section {
	out := make([]matrix.Section, 0, len(sections))
	for _, sec := range sections {
		if e.sectionMatches(sec, f) {
			out = append(out, sec)
		}
	}
	return out
}

// Features re-applies the feature-level axes (framework and search) to a
// feature list. Product and integration path are section-level axes and are
// ignored here.
func (e *Engine) Features(features []catalog.Feature, f Filters) []catalog.Feature {
	out := make([]catalog.Feature, 0, len(features))
	for _, feat := range features {
		if e.featureMatches(feat, f) {
			out = append(out, feat)
		}
	}
	return out
}

func (e *Engine) sectionMatches(sec matrix.Section, f Filters) bool {
	if f.Product != "" && sec.Key != f.Product {
		return false
	}

	if f.IntegrationPath != "" {
		want := catalog.PathType(f.IntegrationPath)
		found := false
		for _, p := range sec.IntegrationPaths {
			if p.Type == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Search != "" {
		found := false
		for _, feat := range sec.Features {
			if matchesSearch(feat, f.Search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Framework != "" {
		name, ok := e.frameworkNames[f.Framework]
		if !ok {
			return false
		}
		found := false
		for _, feat := range sec.Features {
			if feat.Frameworks[name].Available() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (e *Engine) featureMatches(feat catalog.Feature, f Filters) bool {
	if f.Search != "" && !matchesSearch(feat, f.Search) {
		return false
	}
	if f.Framework != "" {
		name, ok := e.frameworkNames[f.Framework]
		if !ok {
			return false
		}
		if !feat.Frameworks[name].Available() {
			return false
		}
	}
	return true
}

func matchesSearch(feat catalog.Feature, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(feat.Name), q) ||
		strings.Contains(strings.ToLower(feat.Description), q)
}
