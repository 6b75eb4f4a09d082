package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnexpectedStatus is returned when a remote location answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected status")

// Option configures a source
type Option func(*fetcher)

// WithHTTPClient sets the client used for http(s) locations
func WithHTTPClient(client *http.Client) Option {
	return func(f *fetcher) { f.client = client }
}

// fetcher reads a location that is either a filesystem path or an http(s) URL
type fetcher struct {
	client *http.Client
}

func newFetcher(opts []Option) *fetcher {
	f := &fetcher{client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (f *fetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	if !isRemote(location) {
		path := strings.TrimPrefix(location, "file://")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, location, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", location, err)
	}
	return data, nil
}

// modTime returns the modification time of a local location, so undated
// files get the same createdAt fallback the indexer gives them. Remote
// locations report the zero time.
func (f *fetcher) modTime(location string) time.Time {
	if isRemote(location) {
		return time.Time{}
	}
	info, err := os.Stat(strings.TrimPrefix(location, "file://"))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// join appends path elements to a base location, escaping them for URLs
func join(base string, elem ...string) string {
	if !isRemote(base) {
		return filepath.Join(append([]string{strings.TrimPrefix(base, "file://")}, elem...)...)
	}

	escaped := make([]string, len(elem))
	for i, e := range elem {
		escaped[i] = url.PathEscape(e)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(escaped, "/")
}
