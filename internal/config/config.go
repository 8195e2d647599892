package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Catalog struct {
		Products string `yaml:"products"`
		Features string `yaml:"features"`
		Schema   string `yaml:"schema"`
	} `yaml:"catalog"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := defaults()

	// 2. Load YAML config; a missing file falls back to defaults
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("SDKMATRIX_PRODUCTS"); v != "" {
		cfg.Catalog.Products = v
	}
	if v := os.Getenv("SDKMATRIX_FEATURES"); v != "" {
		cfg.Catalog.Features = v
	}
	if v := os.Getenv("SDKMATRIX_SCHEMA"); v != "" {
		cfg.Catalog.Schema = v
	}
	if v := os.Getenv("SDKMATRIX_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Catalog.Products = "catalogs/products.yaml"
	cfg.Catalog.Features = "catalogs/features.yaml"
	cfg.Catalog.Schema = "schemas/catalog.schema.json"
	cfg.Output.Dir = "docs"
	return cfg
}
