package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
)

// Pipeline runs the full extraction: locate base cells, extract one layer
// per specification from every chart, write per-chart shapefiles, and
// assemble one composite shapefile per specification.
type Pipeline struct {
	opts Options
}

// New returns a Pipeline for the given options. Zero-valued optional
// fields are replaced with production defaults.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts.withDefaults()}
}

// Run processes every specification against every chart found under the
// options root. Finding no charts at all is fatal; everything that goes
// wrong for an individual chart or specification is recorded in the
// result and logged, and the run continues.
func (p *Pipeline) Run(specs []FeatureTypeSpec) (*RunResult, error) {
	charts, err := FindCharts(p.opts.Root, []string{p.opts.OutputDir})
	if err != nil {
		return nil, err
	}
	if len(charts) == 0 {
		return nil, &ErrNoCharts{Root: p.opts.Root}
	}
	p.opts.Log.Printf("found %d charts under %s", len(charts), p.opts.Root)

	if p.opts.Region != nil {
		charts, err = p.filterRegion(charts)
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &RunResult{ChartCount: len(charts)}
	for _, spec := range specs {
		sr := p.runSpec(spec, charts)
		p.opts.Log.Printf("%s: %s, %d charts with feature, %d without, %d failed",
			spec, sr.State, sr.WithFeature(), sr.WithoutFeature(), sr.Failed())
		result.Specs = append(result.Specs, sr)
	}
	return result, nil
}

// filterRegion keeps only charts whose coverage intersects the configured
// region. Charts that fail to parse during indexing are logged and
// dropped; they would fail again during extraction anyway.
func (p *Pipeline) filterRegion(charts []string) ([]string, error) {
	idx, errs := BuildChartIndex(charts, p.opts.Parser)
	for _, e := range errs {
		p.opts.Log.Printf("indexing: %v", e)
	}
	filtered := idx.Query(*p.opts.Region)
	p.opts.Log.Printf("region filter kept %d of %d charts", len(filtered), len(charts))
	if len(filtered) == 0 {
		return nil, &ErrNoCharts{Root: p.opts.Root}
	}
	return filtered, nil
}

// runSpec extracts one feature/geometry pair from every chart and
// assembles the composite. The per-chart output directory is created only
// once the first chart produces output, so specifications that match
// nothing leave no empty directories behind.
func (p *Pipeline) runSpec(spec FeatureTypeSpec, charts []string) SpecResult {
	res := SpecResult{Spec: spec, State: StateExtracting}
	chartsDir := filepath.Join(p.opts.OutputDir, "charts", spec.CompositeName())

	parseOpts := enc.DefaultParseOptions()
	parseOpts.ApplyUpdates = p.opts.ApplyUpdates
	parseOpts.ObjectClassFilter = []string{spec.Feature}

	var compositeSchema StagingSchema
	var chartFiles []string
	for _, path := range charts {
		cr := p.extractChart(path, spec, parseOpts, chartsDir, &compositeSchema)
		switch cr.Outcome {
		case OutcomeFailed:
			p.opts.Log.Printf("%s: %s: %v", spec, cr.Name, cr.Err)
		case OutcomeExtracted:
			p.opts.Log.Printf("%s: %s: wrote %d features", spec, cr.Name, cr.Features)
			chartFiles = append(chartFiles, filepath.Join(chartsDir, cr.Name+".shp"))
		default:
			p.opts.Log.Printf("%s: %s: %s", spec, cr.Name, cr.Outcome)
		}
		res.Charts = append(res.Charts, cr)
	}

	if len(chartFiles) == 0 {
		res.State = StateEmpty
		p.opts.Log.Printf("%v", &ErrNoOutput{Spec: spec})
		return res
	}
	res.State = StatePopulated

	total, skipped, err := AssembleComposite(p.opts.OutputDir, spec, compositeSchema, chartFiles)
	for _, e := range skipped {
		p.opts.Log.Printf("%s: composite: %v", spec, e)
	}
	if err != nil {
		p.opts.Log.Printf("%s: composite: %v", spec, err)
		return res
	}
	res.State = StateComposited
	res.CompositePath = filepath.Join(p.opts.OutputDir, spec.CompositeName()+".shp")
	res.CompositeFeatures = total
	res.State = StateDone
	return res
}

// extractChart processes one chart for one specification. On the first
// successful extraction it records the staging schema that the composite
// will use and creates the per-chart output directory.
func (p *Pipeline) extractChart(path string, spec FeatureTypeSpec, parseOpts enc.ParseOptions, chartsDir string, compositeSchema *StagingSchema) ChartResult {
	name := chartName(path)
	cr := ChartResult{Path: path, Name: name}

	chart, err := p.opts.Parser.ParseWithOptions(path, parseOpts)
	if err != nil {
		cr.Outcome = OutcomeFailed
		cr.Err = err
		return cr
	}
	if dsnm := chart.DatasetName(); dsnm != "" {
		// DSNM carries the cell filename, extension included.
		cr.Name = trimExt(dsnm)
		name = cr.Name
	}

	layer := chart.Layer(spec.Feature)
	if layer == nil {
		cr.Outcome = OutcomeLayerAbsent
		return cr
	}

	schema := BuildStagingSchema(LayerSchema(layer))
	staged := StageLayer(layer, schema, ReadEnrichment(chart), spec.Geometry)
	if len(staged) == 0 {
		cr.Outcome = OutcomeNoMatchingGeometry
		return cr
	}

	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		cr.Outcome = OutcomeFailed
		cr.Err = fmt.Errorf("creating %s: %w", chartsDir, err)
		return cr
	}
	n, err := WriteChartShapefile(filepath.Join(chartsDir, name), spec.Geometry, schema, staged)
	if err != nil {
		cr.Outcome = OutcomeFailed
		cr.Err = err
		return cr
	}

	if *compositeSchema == nil {
		*compositeSchema = schema
	}
	cr.Outcome = OutcomeExtracted
	cr.Features = n
	return cr
}

// chartName derives the dataset name from a base cell path, used when the
// chart carries no identification record.
func chartName(path string) string {
	return trimExt(filepath.Base(path))
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
