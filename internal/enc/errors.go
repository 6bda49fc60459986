package enc

import (
	"fmt"
)

// ErrMissingSpatialRecord indicates an FSPT pointer references a spatial
// record that is not present in the dataset.
type ErrMissingSpatialRecord struct {
	FeatureID int64
	SpatialID int64
}

func (e *ErrMissingSpatialRecord) Error() string {
	return fmt.Sprintf("feature %d references missing spatial record %d",
		e.FeatureID, e.SpatialID)
}

// ErrInvalidGeometry indicates assembled geometry violates S-57 rules.
type ErrInvalidGeometry struct {
	FeatureID int64
	Reason    string
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("feature %d: invalid geometry: %s", e.FeatureID, e.Reason)
}

// ErrNotBaseCell indicates a file that is not an S-57 base cell (.000).
type ErrNotBaseCell struct {
	Path string
}

func (e *ErrNotBaseCell) Error() string {
	return fmt.Sprintf("not an S-57 base cell: %s", e.Path)
}
