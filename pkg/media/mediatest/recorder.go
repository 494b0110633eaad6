// Package mediatest provides a recording media.Store for tests.
package mediatest

import (
	"context"
	"fmt"
	"sync"
)

// Recorder is a media.Store that records calls and returns
// https://media.test/images/img<n>.jpg URLs
type Recorder struct {
	mu        sync.Mutex
	Uploads   []string // payloads
	Destroyed []string // storage IDs

	UploadErr  error
	DestroyErr error
}

func (r *Recorder) Upload(_ context.Context, payload string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UploadErr != nil {
		return "", r.UploadErr
	}
	r.Uploads = append(r.Uploads, payload)
	return fmt.Sprintf("https://media.test/images/img%d.jpg", len(r.Uploads)), nil
}

func (r *Recorder) Destroy(_ context.Context, storageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Destroyed = append(r.Destroyed, storageID)
	return r.DestroyErr
}
