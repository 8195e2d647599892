package catalog

// NotAvailable is the sentinel version meaning a feature does not exist on a
// framework. Availability maps store it explicitly rather than omitting the
// framework so that catalogs stay reviewable line by line.
const NotAvailable = "n/a"

// Framework is one client platform binding (iOS, Web, .NET Android, ...).
// The declaration order of the framework list is the display order.
type Framework struct {
	Key  string `yaml:"key" json:"key"`
	Name string `yaml:"name" json:"name"`
}

// Availability describes one feature/framework cell of the matrix: either a
// dotted minimum version plus an optional API link, or NotAvailable.
type Availability struct {
	Version string `yaml:"version" json:"version"`
	APIURL  string `yaml:"api_url,omitempty" json:"api_url,omitempty"`
}

// Available reports whether the cell names a real version.
func (a Availability) Available() bool {
	return a.Version != "" && a.Version != NotAvailable
}

// PathType classifies how a product is adopted.
type PathType string

const (
	PathCustomSDK PathType = "custom-sdk"
	PathPreBuilt  PathType = "pre-built"
	PathNoCode    PathType = "no-code"
)

// KnownPathType reports whether t is one of the declared path types.
func KnownPathType(t PathType) bool {
	switch t {
	case PathCustomSDK, PathPreBuilt, PathNoCode:
		return true
	}
	return false
}

// IntegrationPath is one way of adopting a product. An empty URL means the
// path resolves to an in-site page.
type IntegrationPath struct {
	Type  PathType `yaml:"type" json:"type"`
	Label string   `yaml:"label" json:"label"`
	URL   string   `yaml:"url,omitempty" json:"url,omitempty"`
}

// Product is one top-level SDK offering. Frameworks maps framework display
// names to availability of the product's own SDK.
type Product struct {
	Key              string                  `yaml:"key" json:"key"`
	Name             string                  `yaml:"name" json:"name"`
	Description      string                  `yaml:"description" json:"description"`
	SDKDescription   string                  `yaml:"sdk_description,omitempty" json:"sdk_description,omitempty"`
	IntegrationPaths []IntegrationPath       `yaml:"integration_paths,omitempty" json:"integration_paths,omitempty"`
	Frameworks       map[string]Availability `yaml:"frameworks" json:"frameworks"`
}

// Feature is a named capability with per-framework availability. Category is
// a free-form grouping label compared by equality.
type Feature struct {
	Name        string                  `yaml:"name" json:"name"`
	Description string                  `yaml:"description" json:"description"`
	Category    string                  `yaml:"category" json:"category"`
	Frameworks  map[string]Availability `yaml:"frameworks" json:"frameworks"`
}

// ProductRef names a product a cross-product feature applies to, with an
// optional note folded into the feature description at merge time.
type ProductRef struct {
	Product string `yaml:"product" json:"product"`
	Notes   string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// CrossProductFeature is a feature template shared by several products. The
// builder expands it into one Feature per referenced product.
type CrossProductFeature struct {
	Feature     `yaml:",inline"`
	AvailableIn []ProductRef `yaml:"available_in" json:"available_in"`
}

// Catalog is the fully loaded, validated input of the matrix engine.
// Immutable after load.
type Catalog struct {
	Frameworks    []Framework
	Products      []Product
	CrossFeatures []CrossProductFeature
}

// FrameworkName resolves a framework key ("net-android") to its display
// name (".NET Android"). Unknown keys resolve to "".
func (c *Catalog) FrameworkName(key string) string {
	for _, f := range c.Frameworks {
		if f.Key == key {
			return f.Name
		}
	}
	return ""
}

// ProductByKey returns the product with the given key, or nil.
func (c *Catalog) ProductByKey(key string) *Product {
	for i := range c.Products {
		if c.Products[i].Key == key {
			return &c.Products[i]
		}
	}
	return nil
}

// DefaultFrameworks is the framework list used when the catalog file does
// not declare its own. Order matters: it is the display order.
func DefaultFrameworks() []Framework {
	return []Framework{
		{Key: "ios", Name: "iOS"},
		{Key: "android", Name: "Android"},
		{Key: "cordova", Name: "Cordova"},
		{Key: "react-native", Name: "React Native"},
		{Key: "xamarin-ios", Name: "Xamarin iOS"},
		{Key: "xamarin-android", Name: "Xamarin Android"},
		{Key: "xamarin-forms", Name: "Xamarin Forms"},
		{Key: "flutter", Name: "Flutter"},
		{Key: "capacitor", Name: "Capacitor"},
		{Key: "titanium", Name: "Titanium"},
		{Key: "web", Name: "Web"},
		{Key: "net-ios", Name: ".NET iOS"},
		{Key: "net-android", Name: ".NET Android"},
	}
}
