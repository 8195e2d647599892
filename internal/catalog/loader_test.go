package catalog

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaPath(t *testing.T) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(currentFile), "..", "..", "schemas", "catalog.schema.json")
}

func TestLoad_ValidCatalog(t *testing.T) {
	cat, err := Load("testdata/products.yaml", "testdata/features.yaml", schemaPath(t))
	require.NoError(t, err)

	require.Len(t, cat.Products, 2)
	assert.Equal(t, "barcode-capture", cat.Products[0].Key)
	assert.Equal(t, "sparkscan", cat.Products[1].Key)
	assert.Equal(t, "iOS", cat.FrameworkName("ios"))
	assert.Equal(t, "", cat.FrameworkName("cobol"))

	require.Len(t, cat.CrossFeatures, 1)
	cf := cat.CrossFeatures[0]
	assert.Equal(t, "Smart Scan Intention", cf.Name)
	require.Len(t, cf.AvailableIn, 2)
	assert.Equal(t, "Enabled by default", cf.AvailableIn[1].Notes)

	av := cat.Products[1].Frameworks["Titanium"]
	assert.False(t, av.Available())
	assert.Equal(t, NotAvailable, av.Version)
}

func TestLoad_SchemaRejectsBadVersion(t *testing.T) {
	_, err := Load("testdata/bad_version_products.yaml", "testdata/features.yaml", schemaPath(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation")
}

func TestLoad_RejectsUndeclaredFramework(t *testing.T) {
	_, err := Load("testdata/unknown_framework_products.yaml", "testdata/empty_features.yaml", schemaPath(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "undeclared framework")
	require.Contains(t, err.Error(), "Androd")
}

func TestLoad_EmptyFeaturesIsFine(t *testing.T) {
	cat, err := Load("testdata/products.yaml", "testdata/empty_features.yaml", schemaPath(t))
	require.NoError(t, err)
	assert.Empty(t, cat.CrossFeatures)
}

func TestValidate_DuplicateProductKey(t *testing.T) {
	cat := &Catalog{
		Frameworks: DefaultFrameworks(),
		Products: []Product{
			{Key: "parser", Name: "Parser"},
			{Key: "parser", Name: "Parser Again"},
		},
	}
	err := cat.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product key")
}

func TestValidate_UnknownIntegrationPathType(t *testing.T) {
	cat := &Catalog{
		Frameworks: DefaultFrameworks(),
		Products: []Product{
			{
				Key:  "parser",
				Name: "Parser",
				IntegrationPaths: []IntegrationPath{
					{Type: "plugin", Label: "Parser Plugin"},
				},
			},
		},
	}
	err := cat.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown integration path type")
}

func TestHash_TracksCatalogContent(t *testing.T) {
	a, err := Load("testdata/products.yaml", "testdata/features.yaml", schemaPath(t))
	require.NoError(t, err)
	b, err := Load("testdata/products.yaml", "testdata/features.yaml", schemaPath(t))
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())

	b.Products[0].Description = "changed"
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestDefaultFrameworks_UsedWhenCatalogOmitsThem(t *testing.T) {
	cat, err := Load("testdata/defaults_products.yaml", "testdata/empty_features.yaml", schemaPath(t))
	require.NoError(t, err)
	require.Len(t, cat.Frameworks, 13)
	assert.Equal(t, "iOS", cat.Frameworks[0].Name)
	assert.Equal(t, ".NET Android", cat.Frameworks[12].Name)
}
