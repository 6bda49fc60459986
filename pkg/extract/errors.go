package extract

import (
	"fmt"
)

// ErrUnknownGeometryType indicates an unrecognized geometry-type token in
// the run configuration. Fatal before any chart is opened.
type ErrUnknownGeometryType struct {
	Token string
}

func (e *ErrUnknownGeometryType) Error() string {
	return fmt.Sprintf("unrecognized geometry type %q (expected POINT, MULTIPOINT, LINESTRING or POLYGON)", e.Token)
}

// ErrNoCharts indicates the locator found no chart files under the root.
type ErrNoCharts struct {
	Root string
}

func (e *ErrNoCharts) Error() string {
	return fmt.Sprintf("zero charts found under %s", e.Root)
}

// ErrNoOutput indicates no chart yielded features for a combination; the
// combination is discarded but sibling combinations continue.
type ErrNoOutput struct {
	Spec FeatureTypeSpec
}

func (e *ErrNoOutput) Error() string {
	return fmt.Sprintf("no charts yielded %s features", e.Spec)
}
