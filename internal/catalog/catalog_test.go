package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Opening catalog: %v", err)
	}
	t.Cleanup(func() { cat.Close() })
	return cat
}

// TestRunLifecycle tests recording a run with its outputs
func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	cat := openTestCatalog(t)

	runID, err := cat.BeginRun(ctx, "/data/ENC_ROOT", "/data/out")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == 0 {
		t.Error("Expected non-zero run id")
	}

	err = cat.RecordOutput(ctx, Output{
		RunID:        runID,
		Feature:      "SOUNDG",
		Geometry:     "MULTIPOINT",
		Path:         "/data/out/global_SOUNDG_MULTIPOINT.shp",
		FeatureCount: 1520,
		ChartsWith:   4,
		ChartsOut:    9,
	})
	if err != nil {
		t.Fatalf("RecordOutput: %v", err)
	}

	if err := cat.FinishRun(ctx, runID, 13); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	outputs, err := cat.Outputs(ctx, "")
	if err != nil {
		t.Fatalf("Outputs: %v", err)
	}
	if len(outputs) != 1 {
		t.Fatalf("Expected 1 output, got %d", len(outputs))
	}

	o := outputs[0]
	if o.Feature != "SOUNDG" || o.Geometry != "MULTIPOINT" {
		t.Errorf("Expected SOUNDG/MULTIPOINT, got %s/%s", o.Feature, o.Geometry)
	}
	if o.FeatureCount != 1520 || o.ChartsWith != 4 || o.ChartsOut != 9 {
		t.Errorf("Unexpected counts: %+v", o)
	}
	if o.SHA256 != "" {
		t.Errorf("Expected empty digest, got %q", o.SHA256)
	}
}

// TestOutputsFilter tests filtering recorded outputs by feature
func TestOutputsFilter(t *testing.T) {
	ctx := context.Background()
	cat := openTestCatalog(t)

	runID, err := cat.BeginRun(ctx, "/data/ENC_ROOT", "/data/out")
	if err != nil {
		t.Fatal(err)
	}
	for _, feature := range []string{"SOUNDG", "DEPARE", "SOUNDG"} {
		err := cat.RecordOutput(ctx, Output{
			RunID:    runID,
			Feature:  feature,
			Geometry: "POLYGON",
			Path:     "/data/out/global_" + feature + "_POLYGON.shp",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	outputs, err := cat.Outputs(ctx, "SOUNDG")
	if err != nil {
		t.Fatalf("Outputs: %v", err)
	}
	if len(outputs) != 2 {
		t.Errorf("Expected 2 SOUNDG outputs, got %d", len(outputs))
	}
	for _, o := range outputs {
		if o.Feature != "SOUNDG" {
			t.Errorf("Expected SOUNDG only, got %s", o.Feature)
		}
	}
}

// TestHashFile tests composite fingerprinting
func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("shapefile bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	digest, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if len(digest) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(digest))
	}

	again, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if digest != again {
		t.Error("Expected stable digest")
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing file")
	}
}
