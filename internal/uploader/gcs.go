package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const publicHost = "https://storage.googleapis.com/"

// GCSUploader stores assets in a Google Cloud Storage bucket with public
// read access.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

// NewGCSUploader creates an uploader backed by the given bucket. If credsPath
// is empty, application default credentials are used.
func NewGCSUploader(ctx context.Context, bucket, credsPath string) (*GCSUploader, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

// Upload decodes the data URI and writes it under folder/<uuid><ext>,
// returning the public URL.
func (u *GCSUploader) Upload(ctx context.Context, dataURI, folder string) (string, error) {
	data, contentType, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extFor(contentType))
	wc := u.client.Bucket(u.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // single-request upload for small files
	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return publicHost + u.bucket + "/" + objectPath, nil
}

// Destroy removes the object behind a previously returned public URL.
// URLs from other hosts or buckets are ignored.
func (u *GCSUploader) Destroy(ctx context.Context, assetURL string) error {
	prefix := publicHost + u.bucket + "/"
	if !strings.HasPrefix(assetURL, prefix) {
		return nil
	}
	objectPath := strings.TrimPrefix(assetURL, prefix)
	if objectPath == "" {
		return nil
	}
	return u.client.Bucket(u.bucket).Object(objectPath).Delete(ctx)
}
