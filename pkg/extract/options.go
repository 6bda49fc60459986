package extract

import (
	"log"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
	"github.com/GeoscienceAustralia/Georegulation/pkg/logger"
)

// Options configures a Pipeline.
type Options struct {
	// Root is the directory searched recursively for base cell files.
	Root string

	// OutputDir receives the composite shapefiles and, under a charts/
	// subdirectory per specification, the per-chart shapefiles. It is
	// excluded from the chart search so reruns never pick up their own
	// output.
	OutputDir string

	// ApplyUpdates controls whether sequential update files found next
	// to each base cell are applied before extraction.
	ApplyUpdates bool

	// Region, when set, restricts extraction to charts whose coverage
	// intersects the given bounds.
	Region *enc.Bounds

	// Parser parses base cell files. Defaults to enc.NewParser().
	Parser enc.Parser

	// Log receives progress and summary lines. Defaults to a stdout
	// logger.
	Log *log.Logger
}

// DefaultOptions returns Options with updates enabled, matching the normal
// production configuration.
func DefaultOptions(root, outputDir string) Options {
	return Options{
		Root:         root,
		OutputDir:    outputDir,
		ApplyUpdates: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Parser == nil {
		o.Parser = enc.NewParser()
	}
	if o.Log == nil {
		o.Log = logger.New("extract")
	}
	return o
}
