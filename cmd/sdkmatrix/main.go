package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sdkmatrix/internal/catalog"
	"sdkmatrix/internal/config"
	"sdkmatrix/internal/filter"
	"sdkmatrix/internal/pipeline"
	"sdkmatrix/internal/projector"
	"sdkmatrix/internal/render"
	"sdkmatrix/internal/store"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "sdkmatrix",
		Short: "SDK feature-availability matrix tooling",
	}
	dbPath  string
	cfgPath string

	frameworkFlag string
	productFlag   string
	pathFlag      string
	searchFlag    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "sdkmatrix.db", "Path to the local section snapshot database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the config file")

	for _, cmd := range []*cobra.Command{queryCmd, renderCmd} {
		cmd.Flags().StringVar(&frameworkFlag, "framework", "", "Framework key (e.g. ios, net-android)")
		cmd.Flags().StringVar(&productFlag, "product", "", "Product key (e.g. barcode-capture)")
		cmd.Flags().StringVar(&pathFlag, "path", "", "Integration path type (custom-sdk, pre-built, no-code)")
		cmd.Flags().StringVar(&searchFlag, "search", "", "Free-text search over feature names and descriptions")
	}

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(renderCmd)
}

// loadCatalog loads and validates the catalogs named by the config.
func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return catalog.Load(cfg.Catalog.Products, cfg.Catalog.Features, cfg.Catalog.Schema)
}

// initEngine builds an engine, preferring a fresh snapshot from the local
// database over a rebuild.
func initEngine(ctx context.Context) (*pipeline.Engine, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	if s.Fresh(ctx, cat) {
		_, sections, err := s.LoadSnapshot(ctx)
		if err == nil {
			return pipeline.NewFromSections(cat, sections), nil
		}
		log.Printf("Snapshot load failed, rebuilding: %v", err)
	}

	return pipeline.New(cat), nil
}

func currentFilters() filter.Filters {
	return filter.Filters{
		Framework:       frameworkFlag,
		Product:         productFlag,
		IntegrationPath: pathFlag,
		Search:          searchFlag,
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalogs and report validation findings",
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := loadCatalog()
		if err != nil {
			log.Fatalf("Catalog validation failed: %v", err)
		}

		engine := pipeline.New(cat)
		sections := engine.Sections()

		fmt.Printf("✅ Catalog OK: %d frameworks, %d products, %d cross-product features.\n",
			len(cat.Frameworks), len(cat.Products), len(cat.CrossFeatures))
		fmt.Printf("📊 Built %d sections.\n", len(sections))

		for _, ref := range engine.UnmatchedRefs() {
			fmt.Printf("⚠️  Unmatched product reference: %s\n", ref)
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the section matrix and persist a snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cat, err := loadCatalog()
		if err != nil {
			log.Fatalf("Failed to load catalogs: %v", err)
		}

		fmt.Println("🚀 Building section matrix...")
		start := time.Now()
		engine := pipeline.New(cat)
		sections := engine.Sections()
		fmt.Printf("✅ Matrix built in %v. %d sections.\n", time.Since(start), len(sections))

		for _, ref := range engine.UnmatchedRefs() {
			fmt.Printf("⚠️  Unmatched product reference: %s\n", ref)
		}

		s, err := store.NewSQLiteStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer s.Close()

		fmt.Println("💾 Saving snapshot...")
		if err := s.SaveSnapshot(ctx, cat.Hash(), sections); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}

		fmt.Printf("🎉 Snapshot saved! Database: %s\n", dbPath)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter the matrix and print the result tree",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		engine, err := initEngine(ctx)
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}

		views := engine.Query(currentFilters())
		if len(views) == 0 {
			fmt.Println("No results.")
			return
		}

		for _, view := range views {
			if view.Heading != "" {
				fmt.Printf("== %s ==\n", view.Heading)
			}
			fmt.Printf("%s (%s)\n", view.Title, view.Key)
			printFeatureLine("  ", view.Primary)
			for _, cat := range view.Categories {
				fmt.Printf("  [%s]\n", cat.Name)
				for _, feat := range cat.Features {
					printFeatureLine("    ", feat)
				}
			}
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the filtered matrix as a markdown document",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		engine, err := initEngine(ctx)
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}

		fmt.Println("✍️  Rendering feature matrix...")
		doc := render.Markdown(engine.Query(currentFilters()))

		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
		outPath := filepath.Join(cfg.Output.Dir, "feature-matrix.md")
		if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}

		fmt.Printf("✅ Feature matrix written to %s.\n", outPath)
	},
}

func printFeatureLine(indent string, feat projector.FeatureView) {
	available := 0
	for _, av := range feat.Availability {
		if av.Available {
			available++
		}
	}
	fmt.Printf("%s- %s (%d/%d frameworks)\n", indent, feat.Name, available, len(feat.Availability))
}
