package extract

import (
	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
)

// EnrichmentRecord holds the dataset identification metadata stamped onto
// every staged feature of a chart.
type EnrichmentRecord struct {
	Name      string // dataset name (DSNM)
	IssueDate string // issue date (ISDT), YYYYMMDD
	Comment   string // coverage comment (COMT)
	Scale     int    // compilation scale denominator (DSPM CSCL)
}

// ReadEnrichment reads the identification metadata from a chart. Missing
// identification data substitutes zero values; it never fails, because a
// chart without a DSID record is still worth extracting.
func ReadEnrichment(chart *enc.Chart) EnrichmentRecord {
	rec := EnrichmentRecord{Scale: chart.CompilationScale()}
	if !chart.HasIdentification() {
		return rec
	}
	rec.Name = chart.DatasetName()
	rec.IssueDate = chart.IssueDate()
	rec.Comment = chart.Comment()
	return rec
}
