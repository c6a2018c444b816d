package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/sirupsen/logrus"
)

// LoadResult is the outcome of loading one or more batch files
type LoadResult struct {
	Publications []models.Publication
	Files        int // files attempted
	SkippedFiles int // files rejected as a whole
	Records      int // publications flattened before deduplication
}

// Merge folds another result into r without deduplicating
func (r *LoadResult) Merge(other LoadResult) {
	r.Publications = append(r.Publications, other.Publications...)
	r.Files += other.Files
	r.SkippedFiles += other.SkippedFiles
	r.Records += other.Records
}

// decodeBatch flattens a JSON array of raw publication objects.
// Elements that are not objects are skipped; a malformed document is an error.
func decodeBatch(name string, data []byte, now time.Time) ([]models.Publication, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var items []json.RawMessage
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	publications := make([]models.Publication, 0, len(items))
	for i, item := range items {
		raw, err := decodeObject(item)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": name, "index": i}).
				Warnf("Skipping record that is not an object: %v", err)
			continue
		}
		publications = append(publications, Flatten(raw, now))
	}

	return publications, nil
}

func decodeObject(item json.RawMessage) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(item))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("null record")
	}
	return raw, nil
}

// loadBatches decodes each named payload independently. A payload that cannot be
// read or decoded is logged and skipped; it never aborts the batch.
func loadBatches(names []string, read func(name string) ([]byte, error), now time.Time) LoadResult {
	result := LoadResult{Publications: []models.Publication{}}

	for _, name := range names {
		result.Files++

		data, err := read(name)
		if err != nil {
			result.SkippedFiles++
			logrus.WithField("file", name).Errorf("Failed to read batch file: %v", err)
			continue
		}

		publications, err := decodeBatch(name, data, now)
		if err != nil {
			result.SkippedFiles++
			logrus.WithField("file", name).Errorf("Failed to process batch file: %v", err)
			continue
		}

		logrus.WithField("file", name).Debugf("Flattened %d publications", len(publications))
		result.Records += len(publications)
		result.Publications = append(result.Publications, publications...)
	}

	return result
}
