package pipeline

import (
	"sdkmatrix/internal/catalog"
	"sdkmatrix/internal/filter"
	"sdkmatrix/internal/matrix"
	"sdkmatrix/internal/projector"
)

// Engine wires the stages together: catalog → builder → filter → projector.
// The builder output is computed once and cached, since it depends only on
// the catalog. Filtered and projected output is recomputed per query and
// never cached across differing filter states.
type Engine struct {
	catalog   *catalog.Catalog
	projector *projector.Projector
	built     *matrix.BuildResult
}

func New(cat *catalog.Catalog) *Engine {
	return &Engine{
		catalog:   cat,
		projector: projector.New(cat.Frameworks),
	}
}

// NewFromSections wraps an engine around pre-built sections, e.g. a snapshot
// loaded from the section store.
func NewFromSections(cat *catalog.Catalog, sections []matrix.Section) *Engine {
	e := New(cat)
	e.built = &matrix.BuildResult{Sections: sections}
	return e
}

// Sections returns the canonical built sections.
func (e *Engine) Sections() []matrix.Section {
	return e.build().Sections
}

// UnmatchedRefs reports cross-product feature references that named unknown
// product keys. Empty for a well-authored catalog.
func (e *Engine) UnmatchedRefs() []string {
	return e.build().UnmatchedRefs
}

// Query runs the filter and projection stages over the built sections.
func (e *Engine) Query(f filter.Filters) []projector.SectionView {
	return e.projector.Project(e.build().Sections, f)
}

// Catalog returns the loaded catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

func (e *Engine) build() *matrix.BuildResult {
	if e.built == nil {
		e.built = matrix.Build(e.catalog.Products, e.catalog.CrossFeatures)
	}
	return e.built
}
