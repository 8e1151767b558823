package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds a single HTTP catalog fetch.
const DefaultFetchTimeout = 15 * time.Second

// maxCatalogBytes caps the size of a catalog document.
const maxCatalogBytes = 16 << 20

// Loader fetches a catalog document, parses it and applies FilterUsable.
// Locations may be http(s) URLs, file:// URLs or plain filesystem paths.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a Loader with a client bounded by DefaultFetchTimeout.
func NewLoader() *Loader {
	return &Loader{Client: &http.Client{Timeout: DefaultFetchTimeout}}
}

// Load fetches and filters the catalog at location.
//
// Errors wrap ErrCatalogUnreachable (transport or read failure, non-2xx status),
// ErrCatalogMalformed (document is not a catalog) or ErrCatalogEmpty (nothing
// survived filtering). Load never retries.
func (l *Loader) Load(ctx context.Context, location string) (*Catalog, error) {
	data, err := l.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	raw, err := Parse(data)
	if err != nil {
		return nil, err
	}

	usable := FilterUsable(raw)
	if usable.Len() == 0 {
		return nil, fmt.Errorf("%w: %d entries, none usable", ErrCatalogEmpty, raw.Len())
	}
	return usable, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrCatalogUnreachable)
	}

	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return l.fetchHTTP(ctx, location)
		case "file":
			return readFile(u.Path)
		}
	}
	return readFile(location)
}

func (l *Loader) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrCatalogUnreachable, location, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrCatalogUnreachable, err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnreachable, err)
	}
	return data, nil
}
