package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/sirupsen/logrus"
)

const (
	blobOperationTimeout = 2 * time.Minute
	uploadBlockSize      = 1 << 20
	uploadConcurrency    = 3
)

// AzureStorage keeps archived dashboards and uploaded scraper batches in one
// blob container. Blob names use the same slash-separated layout as FileStorage.
type AzureStorage struct {
	client    *azblob.Client
	container string
	log       *logrus.Entry
}

var _ StorageInterface = (*AzureStorage)(nil)

// NewAzureStorage connects with the default Azure credential chain (managed
// identity in the cluster, developer login locally) and creates the container
// on first use.
func NewAzureStorage(accountName, containerName string) (*AzureStorage, error) {
	if accountName == "" {
		return nil, fmt.Errorf("storage account name is required")
	}
	if containerName == "" {
		return nil, fmt.Errorf("storage container name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azblob.NewClient(fmt.Sprintf("https://%s.blob.core.windows.net/", accountName), credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	s := &AzureStorage{
		client:    client,
		container: containerName,
		log:       logrus.WithFields(logrus.Fields{"account": accountName, "container": containerName}),
	}

	ctx, cancel := s.opContext()
	defer cancel()
	if err := s.createContainer(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *AzureStorage) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), blobOperationTimeout)
}

func (s *AzureStorage) createContainer(ctx context.Context) error {
	if _, err := s.client.CreateContainer(ctx, s.container, nil); err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			s.log.Debug("Blob container already exists")
			return nil
		}
		return fmt.Errorf("failed to create container %s: %w", s.container, err)
	}

	s.log.Info("Created blob container")
	return nil
}

// Store uploads data as a block blob typed from the name's extension
func (s *AzureStorage) Store(filename string, data []byte) error {
	ctx, cancel := s.opContext()
	defer cancel()

	options := &azblob.UploadBufferOptions{
		BlockSize:   uploadBlockSize,
		Concurrency: uploadConcurrency,
	}
	if contentType := blobContentType(filename); contentType != "" {
		options.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}

	if _, err := s.client.UploadBuffer(ctx, s.container, filename, data, options); err != nil {
		return blobError("upload", filename, err)
	}

	s.log.WithField("blob", filename).Infof("Stored %d bytes", len(data))
	return nil
}

// Retrieve downloads a whole blob
func (s *AzureStorage) Retrieve(filename string) ([]byte, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	response, err := s.client.DownloadStream(ctx, s.container, filename, nil)
	if err != nil {
		return nil, blobError("download", filename, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", filename, err)
	}

	return data, nil
}

// List pages through the container and returns matching names sorted
func (s *AzureStorage) List(prefix string) ([]string, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	names := []string{}
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs under %q: %w", prefix, err)
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item != nil && item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes a blob
func (s *AzureStorage) Delete(filename string) error {
	ctx, cancel := s.opContext()
	defer cancel()

	if _, err := s.client.DeleteBlob(ctx, s.container, filename, nil); err != nil {
		return blobError("delete", filename, err)
	}

	s.log.WithField("blob", filename).Info("Deleted blob")
	return nil
}

// blobError maps a missing blob onto ErrNotFound
func blobError(op, filename string, err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return fmt.Errorf("%s %s: %w", op, filename, ErrNotFound)
	}
	return fmt.Errorf("failed to %s blob %s: %w", op, filename, err)
}

func blobContentType(filename string) string {
	if path.Ext(filename) == ".json" {
		return "application/json"
	}
	return mime.TypeByExtension(path.Ext(filename))
}
