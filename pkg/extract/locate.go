package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindCharts recursively finds S-57 base cells (.000 files) under root.
// Directories listed in exclude (typically the pipeline's own output
// directory) are skipped so derived outputs are never re-read as input.
//
// The result is sorted for log readability only; callers must not depend
// on order for correctness.
func FindCharts(root string, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("chart root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("chart root %s is not a directory", root)
	}

	excluded := make(map[string]bool, len(exclude))
	for _, dir := range exclude {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			excluded[abs] = true
		}
	}

	var charts []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if abs, aerr := filepath.Abs(path); aerr == nil && excluded[abs] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".000") {
			charts = append(charts, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(charts)
	return charts, nil
}
