package filter

import (
	"testing"

	"sdkmatrix/internal/catalog"
	"sdkmatrix/internal/matrix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrameworks() []catalog.Framework {
	return []catalog.Framework{
		{Key: "ios", Name: "iOS"},
		{Key: "titanium", Name: "Titanium"},
		{Key: "web", Name: "Web"},
	}
}

func testSections() []matrix.Section {
	return []matrix.Section{
		{
			Key:         "barcode-capture",
			Title:       "Barcode Capture",
			Description: "Core barcode scanning",
			IntegrationPaths: []catalog.IntegrationPath{
				{Type: catalog.PathCustomSDK, Label: "BarcodeCapture API"},
			},
			Features: []catalog.Feature{
				{
					Name:        "Barcode Capture SDK",
					Description: "Main SDK for barcode scanning",
					Category:    "Barcode Capture",
					Frameworks: map[string]catalog.Availability{
						"iOS":      {Version: "6.0", APIURL: "/sdks/ios/barcode-capture/"},
						"Titanium": {Version: "6.8", APIURL: "/sdks/titanium/barcode-capture/"},
						"Web":      {Version: "6.13", APIURL: "/sdks/web/barcode-capture/"},
					},
				},
			},
		},
		{
			Key:         "matrixscan-count",
			Title:       "MatrixScan Count",
			Description: "Count multiple barcodes with visual feedback",
			IntegrationPaths: []catalog.IntegrationPath{
				{Type: catalog.PathPreBuilt, Label: "MatrixScan Count UI"},
			},
			Features: []catalog.Feature{
				{
					Name:        "MatrixScan Count SDK",
					Description: "Count and track multiple barcodes in real-time",
					Category:    "MatrixScan Count",
					Frameworks: map[string]catalog.Availability{
						"iOS":      {Version: "6.9", APIURL: "/sdks/ios/matrixscan-count/"},
						"Titanium": {Version: catalog.NotAvailable},
						"Web":      {Version: catalog.NotAvailable},
					},
				},
			},
		},
	}
}

func TestSections_NoFiltersIsIdentity(t *testing.T) {
	e := New(testFrameworks())
	sections := testSections()

	out := e.Sections(sections, Filters{})
	assert.Len(t, out, len(sections))
}

func TestSections_ProductAxis(t *testing.T) {
	e := New(testFrameworks())

	out := e.Sections(testSections(), Filters{Product: "matrixscan-count"})
	require.Len(t, out, 1)
	assert.Equal(t, "MatrixScan Count", out[0].Title)

	assert.Empty(t, e.Sections(testSections(), Filters{Product: "no-such-product"}))
}

func TestSections_IntegrationPathAxis(t *testing.T) {
	e := New(testFrameworks())

	out := e.Sections(testSections(), Filters{IntegrationPath: "pre-built"})
	require.Len(t, out, 1)
	assert.Equal(t, "matrixscan-count", out[0].Key)

	assert.Empty(t, e.Sections(testSections(), Filters{IntegrationPath: "carrier-pigeon"}))
}

func TestSections_FrameworkAxisDropsUnavailable(t *testing.T) {
	e := New(testFrameworks())

	out := e.Sections(testSections(), Filters{Framework: "titanium"})
	require.Len(t, out, 1)
	assert.Equal(t, "barcode-capture", out[0].Key)
}

func TestSections_UnknownFrameworkMatchesNothing(t *testing.T) {
	e := New(testFrameworks())
	assert.Empty(t, e.Sections(testSections(), Filters{Framework: "blackberry"}))
}

func TestSections_SearchIsCaseInsensitive(t *testing.T) {
	e := New(testFrameworks())

	out := e.Sections(testSections(), Filters{Search: "COUNT"})
	require.Len(t, out, 1)
	assert.Equal(t, "matrixscan-count", out[0].Key)
}

func TestSections_AxesCombineWithAnd(t *testing.T) {
	e := New(testFrameworks())

	out := e.Sections(testSections(), Filters{Search: "count", Framework: "web"})
	assert.Empty(t, out)
}

func TestSections_AddingAxesNeverGrowsResult(t *testing.T) {
	e := New(testFrameworks())
	sections := testSections()

	base := Filters{Search: "barcode"}
	narrowed := []Filters{
		{Search: "barcode", Framework: "ios"},
		{Search: "barcode", Product: "barcode-capture"},
		{Search: "barcode", IntegrationPath: "custom-sdk"},
		{Search: "barcode", Framework: "titanium", Product: "matrixscan-count"},
	}

	baseLen := len(e.Sections(sections, base))
	for _, f := range narrowed {
		assert.LessOrEqual(t, len(e.Sections(sections, f)), baseLen)
	}
}

func TestFeatures_FrameworkAndSearchAxes(t *testing.T) {
	e := New(testFrameworks())
	features := []catalog.Feature{
		{
			Name:        "Smart Scan Intention",
			Description: "Detects scan intent",
			Frameworks:  map[string]catalog.Availability{"iOS": {Version: "6.20"}},
		},
		{
			Name:        "Extension Codes",
			Description: "Additional symbologies",
			Frameworks:  map[string]catalog.Availability{"Titanium": {Version: "6.8"}},
		},
	}

	out := e.Features(features, Filters{Framework: "ios"})
	require.Len(t, out, 1)
	assert.Equal(t, "Smart Scan Intention", out[0].Name)

	out = e.Features(features, Filters{Search: "symbologies"})
	require.Len(t, out, 1)
	assert.Equal(t, "Extension Codes", out[0].Name)

	assert.Empty(t, e.Features(features, Filters{Framework: "web"}))
}

func TestFeatures_IgnoresSectionLevelAxes(t *testing.T) {
	e := New(testFrameworks())
	features := testSections()[0].Features

	out := e.Features(features, Filters{Product: "something-else", IntegrationPath: "no-code"})
	assert.Len(t, out, len(features))
}

func TestSections_DoesNotMutateInput(t *testing.T) {
	e := New(testFrameworks())
	sections := testSections()

	out := e.Sections(sections, Filters{Product: "barcode-capture"})
	require.Len(t, out, 1)
	out[0].Title = "changed"

	assert.Equal(t, "Barcode Capture", sections[0].Title)
}
