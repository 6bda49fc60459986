// Package catalog records extraction runs and their shapefile outputs in a
// SQLite database, so downstream tooling can locate and verify composite
// products without rescanning the output tree.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const ddl = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	root        TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	chart_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS outputs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         INTEGER NOT NULL REFERENCES runs(id),
	feature        TEXT NOT NULL,
	geometry       TEXT NOT NULL,
	path           TEXT NOT NULL,
	feature_count  INTEGER NOT NULL,
	charts_with    INTEGER NOT NULL,
	charts_without INTEGER NOT NULL,
	sha256         TEXT
);
CREATE INDEX IF NOT EXISTS idx_outputs_run ON outputs(run_id);
CREATE INDEX IF NOT EXISTS idx_outputs_feature ON outputs(feature, geometry);
`

// Catalog is a handle on the run database.
type Catalog struct {
	db *sql.DB
}

// Output is one recorded composite shapefile.
type Output struct {
	RunID        int64
	Feature      string
	Geometry     string
	Path         string
	FeatureCount int
	ChartsWith   int
	ChartsOut    int
	SHA256       string
}

// Open opens or creates the catalog database at path.
func Open(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// BeginRun records the start of an extraction run and returns its id.
func (c *Catalog) BeginRun(ctx context.Context, root, outputDir string) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO runs (root, output_dir, started_at) VALUES (?, ?, ?)`,
		root, outputDir, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	return id, nil
}

// FinishRun marks a run complete with the number of charts processed.
func (c *Catalog) FinishRun(ctx context.Context, runID int64, chartCount int) error {
	_, err := c.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, chart_count = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), chartCount, runID)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	return nil
}

// RecordOutput stores one composite shapefile produced by a run.
func (c *Catalog) RecordOutput(ctx context.Context, out Output) error {
	var digest interface{}
	if out.SHA256 != "" {
		digest = out.SHA256
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO outputs (run_id, feature, geometry, path, feature_count, charts_with, charts_without, sha256)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		out.RunID, out.Feature, out.Geometry, out.Path,
		out.FeatureCount, out.ChartsWith, out.ChartsOut, digest)
	if err != nil {
		return fmt.Errorf("recording output %s: %w", out.Path, err)
	}
	return nil
}

// Outputs lists recorded composites, optionally filtered by feature
// acronym. Results are newest first.
func (c *Catalog) Outputs(ctx context.Context, feature string) ([]Output, error) {
	builder := sq.Select("run_id", "feature", "geometry", "path",
		"feature_count", "charts_with", "charts_without", "COALESCE(sha256, '')").
		From("outputs").
		OrderBy("id DESC")
	if feature != "" {
		builder = builder.Where(sq.Eq{"feature": feature})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building outputs query: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing outputs: %w", err)
	}
	defer rows.Close()

	var outputs []Output
	for rows.Next() {
		var o Output
		if err := rows.Scan(&o.RunID, &o.Feature, &o.Geometry, &o.Path,
			&o.FeatureCount, &o.ChartsWith, &o.ChartsOut, &o.SHA256); err != nil {
			return nil, fmt.Errorf("scanning output: %w", err)
		}
		outputs = append(outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing outputs: %w", err)
	}
	return outputs, nil
}

// HashFile returns the hex SHA-256 digest of a file, used to fingerprint
// composite shapefiles in the catalog.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
