package sources

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fanwatch/publication-insights/internal/storage"
	"github.com/sirupsen/logrus"
)

// StorageSource reads scraper exports uploaded to blob storage under a prefix
type StorageSource struct {
	storage storage.StorageInterface
	prefix  string
	now     func() time.Time
}

// NewStorageSource creates a source over the given storage and blob prefix
func NewStorageSource(store storage.StorageInterface, prefix string) *StorageSource {
	return &StorageSource{storage: store, prefix: prefix, now: time.Now}
}

func (s *StorageSource) GetName() string {
	return "storage"
}

func (s *StorageSource) IsEnabled() bool {
	return s.storage != nil && s.prefix != ""
}

func (s *StorageSource) FetchPublications(ctx context.Context) (LoadResult, error) {
	if !s.IsEnabled() {
		logrus.Debug("Storage source disabled - no blob prefix configured")
		return LoadResult{}, nil
	}
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	blobs, err := s.storage.List(s.prefix)
	if err != nil {
		return LoadResult{}, err
	}

	var names []string
	for _, name := range blobs {
		if strings.EqualFold(path.Ext(name), ".json") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := loadBatches(names, s.storage.Retrieve, s.now())
	logrus.Infof("Loaded %d publications from %d blobs under %s (%d skipped)",
		result.Records, result.Files, s.prefix, result.SkippedFiles)
	return result, nil
}
