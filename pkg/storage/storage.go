// Package storage provides object storage for uploaded files with an Azure Blob Storage implementation.
// Uploaded objects are identified by a stable public id and retrieved through a URL.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/google/uuid"

	"github.com/JaimeStill/jobboard/pkg/lifecycle"
)

// Resource types recorded on uploaded objects.
const (
	ResourceAuto  = "auto"
	ResourceImage = "image"
	ResourceRaw   = "raw"
)

// UploadOptions describes how a local file is stored.
type UploadOptions struct {
	// ResourceType is ResourceAuto, ResourceImage, or ResourceRaw. Auto resolves from ContentType.
	ResourceType string
	// Folder prefixes the generated public id.
	Folder      string
	Filename    string
	ContentType string
}

// Object identifies a stored file.
type Object struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// System manages object storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage container.
	Start(lc *lifecycle.Coordinator) error
	// Upload stores the file at localPath under a newly generated public id.
	Upload(ctx context.Context, localPath string, opts UploadOptions) (*Object, error)
	// Delete removes the object with the given public id. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, publicID string) error
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// New creates a storage system from the given configuration.
// A connection string takes precedence; otherwise the service URL is paired
// with the default Azure credential chain. No request is made until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage"),
	}, nil
}

func newClient(cfg *Config) (*azblob.Client, error) {
	if cfg.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	}

	cred, err := defaultCredential()
	if err != nil {
		return nil, fmt.Errorf("default credential: %w", err)
	}
	return azblob.NewClient(cfg.ServiceURL, cred, nil)
}

func defaultCredential() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup(func() error {
		_, err := a.client.CreateContainer(lc.Context(), a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			a.logger.Error("storage container initialization failed", "error", err)
			return fmt.Errorf("create container %s: %w", a.container, err)
		}

		a.logger.Info("storage container ready", "container", a.container)
		return nil
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, localPath string, opts UploadOptions) (*Object, error) {
	if localPath == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", localPath, err)
	}
	defer f.Close()

	key := BuildKey(opts.Folder, uuid.New(), opts.Filename)
	resourceType := ResolveResourceType(opts.ResourceType, opts.ContentType)
	filename := path.Base(key)

	uploadOpts := &azblob.UploadFileOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &opts.ContentType,
		},
		Metadata: map[string]*string{
			"resource_type":     &resourceType,
			"original_filename": &filename,
		},
	}

	if _, err := a.client.UploadFile(ctx, a.container, key, f, uploadOpts); err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", key, err)
	}

	obj := &Object{
		PublicID:  key,
		SecureURL: a.blobURL(key),
	}

	a.logger.Info("object uploaded", "public_id", obj.PublicID, "resource_type", resourceType)
	return obj, nil
}

func (a *azure) Delete(ctx context.Context, publicID string) error {
	if err := ValidateKey(publicID); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, a.container, publicID, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", publicID, err)
	}

	return nil
}

func (a *azure) blobURL(key string) string {
	return a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key).
		URL()
}

// BuildKey returns the public id for a new object: folder/id/filename.
// The filename is reduced to its base name and path-escaped.
func BuildKey(folder string, id uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" || name == ".." {
		name = "file"
	}
	name = url.PathEscape(name)

	folder = strings.Trim(folder, "/")
	if folder == "" {
		return fmt.Sprintf("%s/%s", id, name)
	}
	return fmt.Sprintf("%s/%s/%s", folder, id, name)
}

// ResolveResourceType maps ResourceAuto to a concrete type from the content type.
// Explicit types are returned unchanged.
func ResolveResourceType(requested, contentType string) string {
	if requested != "" && requested != ResourceAuto {
		return requested
	}
	if strings.HasPrefix(contentType, "image/") {
		return ResourceImage
	}
	return ResourceRaw
}

// ValidateKey rejects empty keys and keys containing a path traversal segment.
func ValidateKey(key string) error {
	if key == "" || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
