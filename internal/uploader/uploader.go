// Package uploader stores user-submitted images with an external image host
// and serves back public URLs.
package uploader

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

// Uploader stores and removes image assets. Upload accepts a base64 data URI
// and returns the public URL of the stored asset.
type Uploader interface {
	Upload(ctx context.Context, dataURI, folder string) (string, error)
	Destroy(ctx context.Context, assetURL string) error
}

var errInvalidDataURI = errors.New("invalid image data URI")

// decodeDataURI splits a "data:<type>;base64,<payload>" URI into raw bytes
// and content type.
func decodeDataURI(dataURI string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return nil, "", errInvalidDataURI
	}
	meta, payload, ok := strings.Cut(dataURI[len("data:"):], ",")
	if !ok {
		return nil, "", errInvalidDataURI
	}
	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" || contentType == "" {
		return nil, "", errInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errInvalidDataURI
	}
	return data, contentType, nil
}

// extFor maps an image content type to a file extension.
func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
