package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GeoscienceAustralia/Georegulation/internal/catalog"
	"github.com/GeoscienceAustralia/Georegulation/internal/config"
	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
	"github.com/GeoscienceAustralia/Georegulation/pkg/extract"
	"github.com/GeoscienceAustralia/Georegulation/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "extract":
		handleExtract(ctx, os.Args[2:])
	case "catalog":
		handleCatalog(ctx, os.Args[2:])
	case "info":
		handleInfo(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("encextract - extract S-57 ENC features into shapefiles")
	fmt.Println("\nUsage:")
	fmt.Println("  encextract extract -config <config.yaml>")
	fmt.Println("  encextract extract -root <dir> -out <dir> -feature ACRONYM:GEOMETRY [-feature ...] [-no-updates]")
	fmt.Println("  encextract catalog -db <catalog.db> [-feature ACRONYM]")
	fmt.Println("  encextract info -cell <file.000> [-no-updates]")
	fmt.Println("\nGeometry tokens: POINT, MULTIPOINT, LINESTRING, POLYGON")
}

// featureArgs collects repeatable -feature ACRONYM:GEOMETRY flags.
type featureArgs []string

func (f *featureArgs) String() string { return strings.Join(*f, ",") }
func (f *featureArgs) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func handleExtract(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	root := fs.String("root", "", "directory searched for base cells")
	out := fs.String("out", "", "output directory")
	noUpdates := fs.Bool("no-updates", false, "skip update files next to base cells")
	var features featureArgs
	fs.Var(&features, "feature", "feature to extract, as ACRONYM:GEOMETRY (repeatable)")
	fs.Parse(args)

	cfg, err := resolveConfig(*configPath, *root, *out, *noUpdates, features)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Keep a run log next to the outputs.
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.Create(filepath.Join(cfg.Output, "extract.log"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	pipe := extract.New(extract.Options{
		Root:         cfg.Root,
		OutputDir:    cfg.Output,
		ApplyUpdates: cfg.ShouldApplyUpdates(),
		Region:       cfg.Bounds(),
		Log:          logger.NewTee("extract", logFile),
	})
	result, err := pipe.Run(cfg.Specs())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Catalog.Path != "" {
		if err := recordRun(ctx, cfg, result); err != nil {
			fmt.Printf("Error recording catalog: %v\n", err)
			os.Exit(1)
		}
	}

	for _, sr := range result.Specs {
		fmt.Printf("%s: %s", sr.Spec, sr.State)
		if sr.CompositePath != "" {
			fmt.Printf(" -> %s (%d features)", sr.CompositePath, sr.CompositeFeatures)
		}
		fmt.Println()
	}
}

// resolveConfig builds the run configuration either from a YAML file or
// from command line flags. The two sources are exclusive.
func resolveConfig(configPath, root, out string, noUpdates bool, features featureArgs) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfg := &config.Config{Root: root, Output: out}
	if noUpdates {
		apply := false
		cfg.ApplyUpdates = &apply
	}
	for _, f := range features {
		parts := strings.SplitN(f, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid -feature %q (expected ACRONYM:GEOMETRY)", f)
		}
		cfg.Features = append(cfg.Features, config.FeatureConfig{
			Feature:  strings.ToUpper(parts[0]),
			Geometry: parts[1],
		})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// recordRun writes the run and its composite outputs to the catalog
// database.
func recordRun(ctx context.Context, cfg *config.Config, result *extract.RunResult) error {
	cat, err := catalog.Open(ctx, cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer cat.Close()

	runID, err := cat.BeginRun(ctx, cfg.Root, cfg.Output)
	if err != nil {
		return err
	}
	for _, sr := range result.Specs {
		if sr.CompositePath == "" {
			continue
		}
		out := catalog.Output{
			RunID:        runID,
			Feature:      sr.Spec.Feature,
			Geometry:     sr.Spec.Geometry.String(),
			Path:         sr.CompositePath,
			FeatureCount: sr.CompositeFeatures,
			ChartsWith:   sr.WithFeature(),
			ChartsOut:    sr.WithoutFeature(),
		}
		if cfg.Catalog.Hash {
			digest, err := catalog.HashFile(sr.CompositePath)
			if err != nil {
				return err
			}
			out.SHA256 = digest
		}
		if err := cat.RecordOutput(ctx, out); err != nil {
			return err
		}
	}
	return cat.FinishRun(ctx, runID, result.ChartCount)
}

func handleCatalog(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	db := fs.String("db", "", "catalog database path (required)")
	feature := fs.String("feature", "", "filter by feature acronym")
	fs.Parse(args)

	if *db == "" {
		fs.Usage()
		os.Exit(1)
	}

	cat, err := catalog.Open(ctx, *db)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	outputs, err := cat.Outputs(ctx, strings.ToUpper(*feature))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, o := range outputs {
		fmt.Printf("run %d  %s/%s  %s  %d features (%d charts with, %d without)",
			o.RunID, o.Feature, o.Geometry, o.Path, o.FeatureCount, o.ChartsWith, o.ChartsOut)
		if o.SHA256 != "" {
			fmt.Printf("  sha256=%s", o.SHA256[:12])
		}
		fmt.Println()
	}
}

func handleInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cell := fs.String("cell", "", "base cell file (required)")
	noUpdates := fs.Bool("no-updates", false, "skip update files next to the base cell")
	fs.Parse(args)

	if *cell == "" {
		fs.Usage()
		os.Exit(1)
	}

	opts := enc.DefaultParseOptions()
	opts.ApplyUpdates = !*noUpdates
	chart, err := enc.NewParser().ParseWithOptions(*cell, opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Dataset: %s\n", chart.DatasetName())
	if chart.HasIdentification() {
		fmt.Printf("Edition: %s update %s, issued %s\n",
			chart.Edition(), chart.UpdateNumber(), chart.IssueDate())
	}
	fmt.Printf("Compilation scale: 1:%d\n", chart.CompilationScale())
	b := chart.Bounds()
	fmt.Printf("Coverage: %.6f,%.6f to %.6f,%.6f\n", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)

	fmt.Println("\nLayers:")
	type layerCount struct {
		name string
		n    int
	}
	var layers []layerCount
	for _, name := range chart.LayerNames() {
		layers = append(layers, layerCount{name, len(chart.Layer(name))})
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].n > layers[j].n })
	for _, lc := range layers {
		fmt.Printf("  %-8s %d\n", lc.name, lc.n)
	}
}
