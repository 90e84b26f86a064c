// Package publish uploads the generated document to shared storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"top10/internal/config"
)

// Environment variables holding the storage account credentials.
const (
	EnvAccountName = "AZURE_STORAGE_ACCOUNT_NAME"
	EnvAccountKey  = "AZURE_STORAGE_PRIMARY_ACCOUNT_KEY"
	EnvServiceURL  = "AZURE_STORAGE_SERVICE_URL"
)

// ObjectName is the file name used under each site's prefix.
const ObjectName = "filled.json"

// ErrMissingCredentials is returned when only one of the account variables is set.
var ErrMissingCredentials = errors.New(EnvAccountName + " and " + EnvAccountKey + " must both be set")

// Publisher stores data under key and returns where it went.
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte) (string, error)
}

// Key returns the object key for a site slug: "<slug>/filled.json".
func Key(slug string) string {
	return path.Join(slug, ObjectName)
}

// BlobPublisher uploads to one Azure Blob Storage container.
type BlobPublisher struct {
	client    *azblob.Client
	container string
}

var _ Publisher = (*BlobPublisher)(nil)

// NewBlobPublisher authenticates with a shared key. serviceURL defaults to
// https://<account>.blob.core.windows.net/.
func NewBlobPublisher(accountName, accountKey, serviceURL, container string) (*BlobPublisher, error) {
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	if serviceURL == "" {
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &BlobPublisher{client: client, container: container}, nil
}

// New picks the publisher for cfg: a DirPublisher when Dir is set, else
// FromEnv(cfg.Container). It returns nil when neither is configured.
func New(cfg config.PublishConfig) (Publisher, error) {
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		return DirPublisher{Root: dir}, nil
	}

	return FromEnv(cfg.Container)
}

// FromEnv returns a BlobPublisher for container when the account variables are
// set, and nil when publishing is not configured.
func FromEnv(container string) (Publisher, error) {
	if strings.TrimSpace(container) == "" {
		return nil, nil
	}

	name, hasName := os.LookupEnv(EnvAccountName)
	key, hasKey := os.LookupEnv(EnvAccountKey)

	switch {
	case !hasName && !hasKey:
		return nil, nil
	case name == "" || key == "":
		return nil, ErrMissingCredentials
	}

	p, err := NewBlobPublisher(name, key, os.Getenv(EnvServiceURL), container)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Publish uploads data as application/json, replacing any existing blob.
func (p *BlobPublisher) Publish(ctx context.Context, key string, data []byte) (string, error) {
	_, err := p.client.UploadBuffer(ctx, p.container, key, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType:  to.Ptr("application/json"),
			BlobCacheControl: to.Ptr("no-cache"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", p.container, key, err)
	}

	return p.URL(key), nil
}

// URL returns the blob URL for key.
func (p *BlobPublisher) URL(key string) string {
	return strings.TrimRight(p.client.URL(), "/") + "/" + p.container + "/" + key
}

// DirPublisher copies documents into a local directory tree, for sites served
// from a shared volume or for trying the publish step without a storage account.
type DirPublisher struct {
	Root string
}

var _ Publisher = DirPublisher{}

// Publish writes data to Root/key.
func (d DirPublisher) Publish(_ context.Context, key string, data []byte) (string, error) {
	dest := filepath.Join(d.Root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create publish directory: %w", err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}

	return dest, nil
}
