package sources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrSourceDirMissing is returned when the batch directory does not exist
var ErrSourceDirMissing = errors.New("source directory not found")

// DirectorySource reads scraper exports from a local directory of *.json files
type DirectorySource struct {
	dir string
	now func() time.Time
}

// NewDirectorySource creates a source for the given directory
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: dir, now: time.Now}
}

func (d *DirectorySource) GetName() string {
	return "directory"
}

func (d *DirectorySource) IsEnabled() bool {
	return d.dir != ""
}

func (d *DirectorySource) FetchPublications(ctx context.Context) (LoadResult, error) {
	if !d.IsEnabled() {
		logrus.Debug("Directory source disabled - no directory configured")
		return LoadResult{}, nil
	}
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}
	return loadDirectory(d.dir, d.now())
}

// LoadDirectory flattens every JSON file in dir and deduplicates the result.
// Only a missing or unreadable directory is an error; bad files are skipped.
func LoadDirectory(dir string) (LoadResult, error) {
	result, err := loadDirectory(dir, time.Now())
	if err != nil {
		return result, err
	}
	result.Publications = Deduplicate(result.Publications)
	return result, nil
}

func loadDirectory(dir string, now time.Time) (LoadResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LoadResult{}, fmt.Errorf("%w: %s", ErrSourceDirMissing, dir)
		}
		return LoadResult{}, fmt.Errorf("failed to stat source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return LoadResult{}, fmt.Errorf("source path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to list source directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	result := loadBatches(names, func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	}, now)

	logrus.Infof("Loaded %d publications from %d files in %s (%d skipped)",
		result.Records, result.Files, dir, result.SkippedFiles)
	return result, nil
}
