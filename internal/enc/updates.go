package enc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	iso8211 "github.com/beetlebugorg/iso8211/pkg/iso8211"
)

// Record update instructions (RUIN), S-57 §8.4.2.2.
const (
	updateInsert = 1
	updateDelete = 2
	updateModify = 3
)

// featureID is the composite feature object key from FOID. FIDN alone is
// not unique across producing agencies.
type featureID struct {
	AGEN uint16
	FIDN uint32
	FIDS uint16
}

// chartData is the intermediate record state while update files are merged.
type chartData struct {
	features     []*featureRecord
	spatials     map[spatialKey]*spatialRecord
	featuresByID map[featureID]*featureRecord
}

func (d *chartData) key(rec *featureRecord) featureID {
	return featureID{AGEN: rec.AGEN, FIDN: rec.FIDN, FIDS: rec.FIDS}
}

// findUpdateFiles discovers sequential update files for a base cell.
// Given "AU412345.000" it looks for "AU412345.001", "AU412345.002", ... in
// the same directory, stopping at the first gap.
func findUpdateFiles(baseFilename string) ([]string, error) {
	dir := filepath.Dir(baseFilename)
	base := filepath.Base(baseFilename)
	baseName := strings.TrimSuffix(base, filepath.Ext(base))

	var updates []string
	for n := 1; n <= 999; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s.%03d", baseName, n))
		if _, err := os.Stat(candidate); err == nil {
			updates = append(updates, candidate)
		} else if os.IsNotExist(err) {
			break
		} else {
			return nil, fmt.Errorf("checking for update file %s: %w", candidate, err)
		}
	}
	return updates, nil
}

// applyUpdates merges update files into the base records in sequence,
// before geometry construction.
func applyUpdates(data *chartData, updateFiles []string, params datasetParams) error {
	for _, path := range updateFiles {
		if err := applyUpdate(data, path, params); err != nil {
			return fmt.Errorf("applying update %s: %w", path, err)
		}
	}
	return nil
}

func applyUpdate(data *chartData, path string, params datasetParams) error {
	reader, err := iso8211.NewReader(path)
	if err != nil {
		return fmt.Errorf("opening update file: %w", err)
	}
	defer reader.Close()

	isoFile, err := reader.Parse()
	if err != nil {
		return fmt.Errorf("parsing update file: %w", err)
	}

	for _, record := range isoFile.Records {
		if featureRec := parseFeatureRecord(record); featureRec != nil {
			applyFeatureUpdate(data, featureRec)
			continue
		}
		if spatialRec := parseSpatialRecord(record, params); spatialRec != nil {
			applySpatialUpdate(data, spatialRec)
		}
	}
	return nil
}

func applyFeatureUpdate(data *chartData, rec *featureRecord) {
	key := data.key(rec)
	existing := data.featuresByID[key]

	switch rec.UpdateInstr {
	case updateDelete:
		if existing == nil {
			return
		}
		delete(data.featuresByID, key)
		for i, f := range data.features {
			if f == existing {
				data.features = append(data.features[:i], data.features[i+1:]...)
				break
			}
		}
	case updateModify:
		if existing == nil {
			return
		}
		for name, value := range rec.Attributes {
			existing.Attributes[name] = value
		}
		if len(rec.SpatialRefs) > 0 {
			existing.SpatialRefs = rec.SpatialRefs
		}
		existing.RecordVersion = rec.RecordVersion
	default: // updateInsert, and base-file records carry RUIN=1 as well
		if existing != nil {
			return
		}
		data.features = append(data.features, rec)
		data.featuresByID[key] = rec
	}
}

func applySpatialUpdate(data *chartData, rec *spatialRecord) {
	key := spatialKey{RCNM: int(rec.RecordType), RCID: rec.ID}

	switch rec.UpdateInstr {
	case updateDelete:
		delete(data.spatials, key)
	case updateModify:
		existing := data.spatials[key]
		if existing == nil {
			return
		}
		if len(rec.Coordinates) > 0 {
			existing.Coordinates = rec.Coordinates
		}
		if len(rec.VectorPointers) > 0 {
			existing.VectorPointers = rec.VectorPointers
		}
		existing.RecordVersion = rec.RecordVersion
	default:
		data.spatials[key] = rec
	}
}
