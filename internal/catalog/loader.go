package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

type productsFile struct {
	Frameworks []Framework `yaml:"frameworks"`
	Products   []Product   `yaml:"products"`
}

type featuresFile struct {
	Features []CrossProductFeature `yaml:"features"`
}

// Load reads the product and feature catalogs, validates both against the
// JSON Schema at schemaPath, and cross-validates references. All validation
// happens here, at the load boundary; the engine stages downstream never
// reject data.
func Load(productsPath, featuresPath, schemaPath string) (*Catalog, error) {
	var pf productsFile
	if err := loadYAML(productsPath, schemaPath, "#/$defs/productsFile", &pf); err != nil {
		return nil, fmt.Errorf("products catalog: %w", err)
	}

	var ff featuresFile
	if err := loadYAML(featuresPath, schemaPath, "#/$defs/featuresFile", &ff); err != nil {
		return nil, fmt.Errorf("features catalog: %w", err)
	}

	cat := &Catalog{
		Frameworks:    pf.Frameworks,
		Products:      pf.Products,
		CrossFeatures: ff.Features,
	}
	if len(cat.Frameworks) == 0 {
		cat.Frameworks = DefaultFrameworks()
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func loadYAML(path, schemaPath, fragment string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if schemaPath != "" {
		if err := validateWithSchema(b, schemaPath, fragment); err != nil {
			return err
		}
	}

	return yaml.Unmarshal(b, out)
}

// validateWithSchema round-trips the YAML document through JSON so the
// schema sees plain JSON types, then validates it.
func validateWithSchema(doc []byte, schemaPath, fragment string) error {
	schema, err := loadCompiledSchema(schemaPath, fragment)
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize catalog for schema validation: %w", err)
	}
	var v any
	if err := json.Unmarshal(jsonBytes, &v); err != nil {
		return fmt.Errorf("failed to normalize catalog for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

func loadCompiledSchema(schemaPath, fragment string) (*jsonschema.Schema, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, err
	}
	key := abs + fragment

	schemaCacheMu.Lock()
	if cached, ok := schemaCache[key]; ok {
		schemaCacheMu.Unlock()
		return cached, nil
	}
	schemaCacheMu.Unlock()

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile("file://" + filepath.ToSlash(abs) + fragment)
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	schemaCache[key] = compiled
	schemaCacheMu.Unlock()
	return compiled, nil
}

// Validate cross-checks the catalog: unique keys, declared framework names
// only, declared path types only. Typos fail here, never mid-query.
func (c *Catalog) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("catalog has no products")
	}

	frameworkNames := make(map[string]bool, len(c.Frameworks))
	frameworkKeys := make(map[string]bool, len(c.Frameworks))
	for _, f := range c.Frameworks {
		if f.Key == "" || f.Name == "" {
			return fmt.Errorf("framework entries need both key and name")
		}
		if frameworkKeys[f.Key] {
			return fmt.Errorf("duplicate framework key: %s", f.Key)
		}
		if frameworkNames[f.Name] {
			return fmt.Errorf("duplicate framework name: %s", f.Name)
		}
		frameworkKeys[f.Key] = true
		frameworkNames[f.Name] = true
	}

	productKeys := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.Key == "" {
			return fmt.Errorf("product %q has no key", p.Name)
		}
		if productKeys[p.Key] {
			return fmt.Errorf("duplicate product key: %s", p.Key)
		}
		productKeys[p.Key] = true

		if err := checkFrameworkNames(p.Frameworks, frameworkNames, "product "+p.Key); err != nil {
			return err
		}
		for _, path := range p.IntegrationPaths {
			if !KnownPathType(path.Type) {
				return fmt.Errorf("product %s: unknown integration path type: %s", p.Key, path.Type)
			}
		}
	}

	for _, f := range c.CrossFeatures {
		if f.Name == "" {
			return fmt.Errorf("cross-product feature with empty name")
		}
		if err := checkFrameworkNames(f.Frameworks, frameworkNames, "feature "+f.Name); err != nil {
			return err
		}
	}

	return nil
}

func checkFrameworkNames(m map[string]Availability, declared map[string]bool, owner string) error {
	for name := range m {
		if !declared[name] {
			return fmt.Errorf("%s: availability references undeclared framework %q", owner, name)
		}
	}
	return nil
}

// Hash returns a content hash of the catalog, used to detect whether a
// persisted section snapshot is stale.
func (c *Catalog) Hash() string {
	b, _ := json.Marshal(struct {
		Frameworks    []Framework           `json:"frameworks"`
		Products      []Product             `json:"products"`
		CrossFeatures []CrossProductFeature `json:"cross_features"`
	}{c.Frameworks, c.Products, c.CrossFeatures})
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:])
}
