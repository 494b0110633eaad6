// Package media talks to the hosted media service that stores post and
// comment images.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Store uploads images and deletes them by storage identifier
type Store interface {
	// Upload stores payload (a data URI or remote URL) and returns its durable URL
	Upload(ctx context.Context, payload string) (string, error)
	// Destroy deletes the asset with the given storage identifier
	Destroy(ctx context.Context, storageID string) error
}

// StorageID derives the storage identifier from a durable URL: the final
// path segment up to its first dot.
// "https://res.example.com/demo/image/upload/v1/abc123.jpg" -> "abc123"
func StorageID(durableURL string) string {
	p := durableURL
	if u, err := url.Parse(durableURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := p[strings.LastIndex(p, "/")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

var errNotDataURI = errors.New("payload is not a base64 data URI")

// decodeDataURI decodes "data:<mime>;base64,<data>" payloads
func decodeDataURI(payload string) ([]byte, error) {
	if !strings.HasPrefix(payload, "data:") {
		return nil, errNotDataURI
	}
	meta, data, ok := strings.Cut(strings.TrimPrefix(payload, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errNotDataURI
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return decoded, nil
}
