// Package loader resolves form schema documents from local files or
// plain URLs, for workflows that do not go through the authenticated
// service (schema previews, fixtures). The remote session flow uses
// pkg/api instead.
package loader

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/formfill/formfill/pkg/schema"
)

const defaultTimeout = 15 * time.Second

// Loader fetches raw schema documents by file path or URL and decodes
// them. YAML and JSON are both accepted; the decoder sniffs the format.
type Loader struct {
	http *http.Client
}

// Option customises the loader.
type Option func(*Loader)

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// New constructs a loader with a timeout-bounded default HTTP client.
func New(options ...Option) *Loader {
	l := &Loader{
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load resolves a source into a decoded, validated form. Sources that
// start with http:// or https:// are fetched; everything else is read
// from disk.
func (l *Loader) Load(ctx context.Context, source string) (schema.Form, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return schema.Form{}, errors.New("loader: source is required")
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = loadHTTP(ctx, l.http, source)
	} else {
		data, err = loadFile(ctx, source)
	}
	if err != nil {
		return schema.Form{}, err
	}

	return schema.Decode(data)
}
