package projector

import (
	"sdkmatrix/internal/catalog"
	"sdkmatrix/internal/filter"
	"sdkmatrix/internal/matrix"
)

// Availability is one rendered matrix cell. APIURL is empty whenever
// Available is false, regardless of what the catalog held, so the rendering
// layer can never link to an integration that does not exist.
type Availability struct {
	Framework string `json:"framework"`
	Available bool   `json:"available"`
	Version   string `json:"version"`
	APIURL    string `json:"api_url,omitempty"`
}

// FeatureView is a feature decorated with its availability row.
type FeatureView struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Availability []Availability `json:"availability"`
}

// CategoryView groups the extra features of a section under one label.
type CategoryView struct {
	Name     string        `json:"name"`
	Features []FeatureView `json:"features"`
}

// SectionView is the renderable form of one section. Heading is an optional
// super-heading shown above the first section of a grouped family; it is a
// display annotation only.
type SectionView struct {
	Heading          string                    `json:"heading,omitempty"`
	Key              string                    `json:"key"`
	Title            string                    `json:"title"`
	Description      string                    `json:"description"`
	IntegrationPaths []catalog.IntegrationPath `json:"integration_paths,omitempty"`
	Primary          FeatureView               `json:"primary"`
	Categories       []CategoryView            `json:"categories"`
}

// PrimarySplit separates a section's baseline SDK feature from its add-on
// features, so nothing downstream relies on slice positions.
type PrimarySplit struct {
	Primary catalog.Feature
	Extras  []catalog.Feature
}

// SplitPrimary splits a built section. The builder guarantees the primary
// feature is first.
func SplitPrimary(sec matrix.Section) PrimarySplit {
	return PrimarySplit{Primary: sec.Features[0], Extras: sec.Features[1:]}
}

// CategoryGroup pairs a category label with its features, in stable order.
type CategoryGroup struct {
	Name     string
	Features []catalog.Feature
}

// GroupByCategory groups features by their category label, preserving the
// order in which each category first occurs. Applied only to extras, never
// to the primary feature.
func GroupByCategory(features []catalog.Feature) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, f := range features {
		i, ok := index[f.Category]
		if !ok {
			i = len(groups)
			index[f.Category] = i
			groups = append(groups, CategoryGroup{Name: f.Category})
		}
		groups[i].Features = append(groups[i].Features, f)
	}
	return groups
}

// ResolveAvailability computes the rendered cell for one feature/framework
// pair. When the pair is unavailable the version reads as stored (or "n/a"
// when the framework is absent from the map) and the link is suppressed.
func ResolveAvailability(feat catalog.Feature, frameworkName string) Availability {
	av, ok := feat.Frameworks[frameworkName]
	if !ok || !av.Available() {
		version := catalog.NotAvailable
		if ok && av.Version != "" {
			version = av.Version
		}
		return Availability{Framework: frameworkName, Available: false, Version: version}
	}
	return Availability{Framework: frameworkName, Available: true, Version: av.Version, APIURL: av.APIURL}
}

// Projector turns filtered sections into the renderable tree.
type Projector struct {
	frameworks []catalog.Framework
	filter     *filter.Engine
	headings   map[string]string // section title -> super heading
}

func New(frameworks []catalog.Framework) *Projector {
	return &Projector{
		frameworks: frameworks,
		filter:     filter.New(frameworks),
		headings:   defaultHeadings(),
	}
}

// defaultHeadings groups the MatrixScan family under one umbrella heading.
// Pure display lookup; it never affects filtering or grouping.
func defaultHeadings() map[string]string {
	return map[string]string{
		"MatrixScan Batch": "MatrixScan",
		"MatrixScan AR":    "MatrixScan",
		"MatrixScan Count": "MatrixScan",
		"MatrixScan Find":  "MatrixScan",
		"MatrixScan Pick":  "MatrixScan",
	}
}

// Project applies the section- and feature-level filters and produces the
// final tree. Sections whose feature-level filter result is empty are
// dropped even though they passed the section-level predicate: a section can
// have some framework-compatible feature yet expose none once narrowed to a
// specific framework.
func (p *Projector) Project(sections []matrix.Section, f filter.Filters) []SectionView {
	columns := p.columns(f)

	views := make([]SectionView, 0, len(sections))
	prevHeading := ""
	for _, sec := range p.filter.Sections(sections, f) {
		if len(sec.Features) == 0 {
			continue
		}
		split := SplitPrimary(sec)

		survivors := p.filter.Features(sec.Features, f)
		if len(survivors) == 0 {
			continue
		}
		extras := p.filter.Features(split.Extras, f)

		view := SectionView{
			Key:              sec.Key,
			Title:            sec.Title,
			Description:      sec.Description,
			IntegrationPaths: sec.IntegrationPaths,
			Primary:          p.featureView(split.Primary, columns),
		}
		for _, group := range GroupByCategory(extras) {
			cv := CategoryView{Name: group.Name}
			for _, feat := range group.Features {
				cv.Features = append(cv.Features, p.featureView(feat, columns))
			}
			view.Categories = append(view.Categories, cv)
		}

		if heading := p.headings[sec.Title]; heading != "" && heading != prevHeading {
			view.Heading = heading
		}
		prevHeading = p.headings[sec.Title]

		views = append(views, view)
	}
	return views
}

// columns returns the frameworks to decorate, in display order. An active
// framework filter narrows the row to that single framework.
func (p *Projector) columns(f filter.Filters) []catalog.Framework {
	if f.Framework == "" {
		return p.frameworks
	}
	for _, fw := range p.frameworks {
		if fw.Key == f.Framework {
			return []catalog.Framework{fw}
		}
	}
	return nil
}

func (p *Projector) featureView(feat catalog.Feature, columns []catalog.Framework) FeatureView {
	view := FeatureView{Name: feat.Name, Description: feat.Description}
	for _, fw := range columns {
		view.Availability = append(view.Availability, ResolveAvailability(feat, fw.Name))
	}
	return view
}
