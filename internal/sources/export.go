package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ExportSource downloads one JSON array export from the scraper's HTTP endpoint
type ExportSource struct {
	url    string
	client *resty.Client
	now    func() time.Time
}

// NewExportSource creates a new export source
func NewExportSource(url string) *ExportSource {
	return &ExportSource{
		url: url,
		client: resty.New().
			SetTimeout(60 * time.Second).
			SetRetryCount(2).
			SetHeader("User-Agent", "Publication-Insights/1.0"),
		now: time.Now,
	}
}

func (e *ExportSource) GetName() string {
	return "export"
}

func (e *ExportSource) IsEnabled() bool {
	return e.url != ""
}

func (e *ExportSource) FetchPublications(ctx context.Context) (LoadResult, error) {
	if !e.IsEnabled() {
		logrus.Debug("Export source disabled - no export URL configured")
		return LoadResult{}, nil
	}

	// The export is the whole source, so a failed download or decode fails the source
	data, err := e.download(ctx, e.url)
	if err != nil {
		return LoadResult{}, err
	}

	publications, err := decodeBatch(e.url, data, e.now())
	if err != nil {
		return LoadResult{}, err
	}

	logrus.WithField("url", e.url).Debugf("Flattened %d publications", len(publications))
	return LoadResult{Publications: publications, Files: 1, Records: len(publications)}, nil
}

func (e *ExportSource) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download export: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("export endpoint returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
