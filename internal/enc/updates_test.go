package enc

import (
	"os"
	"path/filepath"
	"testing"
)

func newChartData(features ...*featureRecord) *chartData {
	data := &chartData{
		spatials:     make(map[spatialKey]*spatialRecord),
		featuresByID: make(map[featureID]*featureRecord),
	}
	for _, f := range features {
		data.features = append(data.features, f)
		data.featuresByID[data.key(f)] = f
	}
	return data
}

// TestApplyFeatureUpdateInsert tests RUIN=1 adding a new feature
func TestApplyFeatureUpdateInsert(t *testing.T) {
	data := newChartData()

	applyFeatureUpdate(data, &featureRecord{
		RCID:        1,
		FIDN:        100,
		UpdateInstr: updateInsert,
		Attributes:  map[string]interface{}{"OBJNAM": "New Buoy"},
	})

	if len(data.features) != 1 {
		t.Fatalf("Expected 1 feature, got %d", len(data.features))
	}
	if data.features[0].Attributes["OBJNAM"] != "New Buoy" {
		t.Errorf("Expected inserted attributes, got %v", data.features[0].Attributes)
	}
}

// TestApplyFeatureUpdateDelete tests RUIN=2 removing a feature
func TestApplyFeatureUpdateDelete(t *testing.T) {
	existing := &featureRecord{RCID: 1, FIDN: 100, Attributes: map[string]interface{}{}}
	data := newChartData(existing)

	applyFeatureUpdate(data, &featureRecord{
		RCID:        1,
		FIDN:        100,
		UpdateInstr: updateDelete,
	})

	if len(data.features) != 0 {
		t.Errorf("Expected feature removed, got %d remaining", len(data.features))
	}
	if len(data.featuresByID) != 0 {
		t.Errorf("Expected index cleared, got %d entries", len(data.featuresByID))
	}
}

// TestApplyFeatureUpdateModify tests RUIN=3 merging attributes and spatial refs
func TestApplyFeatureUpdateModify(t *testing.T) {
	existing := &featureRecord{
		RCID:          1,
		FIDN:          100,
		RecordVersion: 1,
		Attributes:    map[string]interface{}{"OBJNAM": "Old Name", "SCAMIN": 45000},
		SpatialRefs:   []spatialRef{{RCID: 10}},
	}
	data := newChartData(existing)

	applyFeatureUpdate(data, &featureRecord{
		RCID:          1,
		FIDN:          100,
		RecordVersion: 2,
		UpdateInstr:   updateModify,
		Attributes:    map[string]interface{}{"OBJNAM": "New Name"},
		SpatialRefs:   []spatialRef{{RCID: 20}},
	})

	if existing.Attributes["OBJNAM"] != "New Name" {
		t.Errorf("Expected OBJNAM updated, got %v", existing.Attributes["OBJNAM"])
	}
	if existing.Attributes["SCAMIN"] != 45000 {
		t.Errorf("Expected untouched attribute kept, got %v", existing.Attributes["SCAMIN"])
	}
	if len(existing.SpatialRefs) != 1 || existing.SpatialRefs[0].RCID != 20 {
		t.Errorf("Expected spatial refs replaced, got %v", existing.SpatialRefs)
	}
	if existing.RecordVersion != 2 {
		t.Errorf("Expected RVER=2, got %d", existing.RecordVersion)
	}
}

// TestApplyFeatureUpdateMissingTarget tests that delete/modify of unknown
// features is ignored rather than failing the whole chart
func TestApplyFeatureUpdateMissingTarget(t *testing.T) {
	for _, instr := range []int{updateDelete, updateModify} {
		data := newChartData()
		applyFeatureUpdate(data, &featureRecord{RCID: 5, FIDN: 500, UpdateInstr: instr})
		if len(data.features) != 0 {
			t.Errorf("Expected no features after instr=%d, got %d", instr, len(data.features))
		}
	}
}

// TestApplySpatialUpdate tests vector record insert, modify and delete
func TestApplySpatialUpdate(t *testing.T) {
	data := newChartData()
	key := spatialKey{RCNM: 110, RCID: 10}

	applySpatialUpdate(data, &spatialRecord{
		ID:          10,
		RecordType:  spatialTypeIsolatedNode,
		UpdateInstr: updateInsert,
		Coordinates: [][]float64{{151.0, -33.0}},
	})
	if data.spatials[key] == nil {
		t.Fatal("Expected spatial record inserted")
	}

	applySpatialUpdate(data, &spatialRecord{
		ID:          10,
		RecordType:  spatialTypeIsolatedNode,
		UpdateInstr: updateModify,
		Coordinates: [][]float64{{151.5, -33.5}},
	})
	if got := data.spatials[key].Coordinates[0][0]; got != 151.5 {
		t.Errorf("Expected coordinates replaced, got %v", got)
	}

	applySpatialUpdate(data, &spatialRecord{
		ID:          10,
		RecordType:  spatialTypeIsolatedNode,
		UpdateInstr: updateDelete,
	})
	if data.spatials[key] != nil {
		t.Error("Expected spatial record deleted")
	}
}

// TestFindUpdateFiles tests sequential update discovery with gap handling
func TestFindUpdateFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "AU412345.000")

	for _, name := range []string{"AU412345.000", "AU412345.001", "AU412345.002", "AU412345.004"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	updates, err := findUpdateFiles(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// .004 is unreachable across the .003 gap
	if len(updates) != 2 {
		t.Fatalf("Expected 2 update files, got %d: %v", len(updates), updates)
	}
	if filepath.Base(updates[0]) != "AU412345.001" || filepath.Base(updates[1]) != "AU412345.002" {
		t.Errorf("Expected sequential updates, got %v", updates)
	}
}

// TestFindUpdateFilesNone tests a base cell without updates
func TestFindUpdateFilesNone(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "AU412345.000")
	if err := os.WriteFile(base, []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}

	updates, err := findUpdateFiles(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("Expected no updates, got %v", updates)
	}
}
