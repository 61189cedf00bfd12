package uploader

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Uploader for tests. It records destroyed URLs and can
// be forced to fail.
type Fake struct {
	mu        sync.Mutex
	counter   int
	FailWith  error
	Uploaded  []string
	Destroyed []string
}

// NewFake returns an empty fake uploader.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Upload(ctx context.Context, dataURI, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return "", f.FailWith
	}
	if _, _, err := decodeDataURI(dataURI); err != nil {
		return "", err
	}
	f.counter++
	url := fmt.Sprintf("https://img.test/%s/%d", folder, f.counter)
	f.Uploaded = append(f.Uploaded, url)
	return url, nil
}

func (f *Fake) Destroy(ctx context.Context, assetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	f.Destroyed = append(f.Destroyed, assetURL)
	return nil
}
