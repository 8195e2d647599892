package render

import (
	"strings"
	"testing"

	"sdkmatrix/internal/projector"

	"github.com/stretchr/testify/assert"
)

func testViews() []projector.SectionView {
	return []projector.SectionView{
		{
			Heading:     "MatrixScan",
			Title:       "MatrixScan Count",
			Description: "Count multiple barcodes with visual feedback",
			Primary: projector.FeatureView{
				Name: "MatrixScan Count SDK",
				Availability: []projector.Availability{
					{Framework: "iOS", Available: true, Version: "6.9", APIURL: "/sdks/ios/matrixscan-count/"},
					{Framework: "Titanium", Available: false, Version: "n/a"},
				},
			},
			Categories: []projector.CategoryView{
				{
					Name: "Scanning UX",
					Features: []projector.FeatureView{
						{Name: "Scan While Moving", Description: "Tracking assisted"},
					},
				},
			},
		},
	}
}

func TestMarkdown_RendersHeadingsSectionsAndCategories(t *testing.T) {
	doc := Markdown(testViews())

	assert.Contains(t, doc, "## MatrixScan\n")
	assert.Contains(t, doc, "### MatrixScan Count\n")
	assert.Contains(t, doc, "#### Scanning UX\n")
	assert.Contains(t, doc, "**MatrixScan Count SDK**")
	assert.Contains(t, doc, "**Scan While Moving**: Tracking assisted")
}

func TestMarkdown_LinksOnlyAvailableCells(t *testing.T) {
	doc := Markdown(testViews())

	assert.Contains(t, doc, "| iOS | [6.9](/sdks/ios/matrixscan-count/) |")
	assert.Contains(t, doc, "| Titanium | n/a |")
	assert.NotContains(t, doc, "[n/a]")
}

func TestMarkdown_EmptyResultIsNotAnError(t *testing.T) {
	doc := Markdown(nil)
	assert.Contains(t, doc, "No results.")
}

func TestMarkdown_Deterministic(t *testing.T) {
	views := testViews()
	assert.Equal(t, Markdown(views), Markdown(views))
}

func TestMarkdown_SectionSeparators(t *testing.T) {
	views := append(testViews(), projector.SectionView{
		Title:   "Parser",
		Primary: projector.FeatureView{Name: "Parser SDK"},
	})
	doc := Markdown(views)

	assert.Equal(t, 1, strings.Count(doc, "\n---\n"))
	assert.False(t, strings.HasSuffix(doc, "---\n"))
}
