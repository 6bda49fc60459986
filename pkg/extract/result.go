package extract

// ChartOutcome describes what happened to a single chart while processing
// one feature type specification.
type ChartOutcome int

const (
	// OutcomeExtracted means the chart produced a per-chart shapefile.
	OutcomeExtracted ChartOutcome = iota
	// OutcomeLayerAbsent means the chart carries no features of the
	// requested object class.
	OutcomeLayerAbsent
	// OutcomeNoMatchingGeometry means the layer exists but none of its
	// features carry the requested geometry type.
	OutcomeNoMatchingGeometry
	// OutcomeFailed means the chart could not be parsed or written.
	OutcomeFailed
)

func (o ChartOutcome) String() string {
	switch o {
	case OutcomeExtracted:
		return "extracted"
	case OutcomeLayerAbsent:
		return "layer absent"
	case OutcomeNoMatchingGeometry:
		return "no matching geometry"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// ChartResult records the outcome for one chart under one specification.
type ChartResult struct {
	Path     string
	Name     string
	Outcome  ChartOutcome
	Features int
	Err      error
}

// SpecState tracks a specification through the extraction lifecycle.
type SpecState int

const (
	StatePending SpecState = iota
	StateExtracting
	StateEmpty
	StatePopulated
	StateComposited
	StateDone
)

func (s SpecState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExtracting:
		return "extracting"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateComposited:
		return "composited"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// SpecResult aggregates per-chart outcomes for one specification.
type SpecResult struct {
	Spec              FeatureTypeSpec
	State             SpecState
	Charts            []ChartResult
	CompositePath     string
	CompositeFeatures int
}

// WithFeature reports how many charts produced output for this
// specification.
func (r *SpecResult) WithFeature() int {
	return r.countOutcome(OutcomeExtracted)
}

// WithoutFeature reports how many charts were processed without producing
// output, either because the layer was absent or because no feature
// matched the requested geometry.
func (r *SpecResult) WithoutFeature() int {
	return r.countOutcome(OutcomeLayerAbsent) + r.countOutcome(OutcomeNoMatchingGeometry)
}

// Failed reports how many charts could not be processed.
func (r *SpecResult) Failed() int {
	return r.countOutcome(OutcomeFailed)
}

func (r *SpecResult) countOutcome(o ChartOutcome) int {
	n := 0
	for _, c := range r.Charts {
		if c.Outcome == o {
			n++
		}
	}
	return n
}

// RunResult holds the results of one pipeline run across all
// specifications.
type RunResult struct {
	ChartCount int
	Specs      []SpecResult
}
