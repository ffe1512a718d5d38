// Package frames acquires encoded still frames for the capture client.
package frames

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrNotReady reports a source that has no usable frame yet, e.g. a snapshot
// file a capture process has not written. The polling loop skips the tick
// instead of treating it as a failure.
var ErrNotReady = errors.New("frame source not ready")

// Source supplies one encoded frame per call.
type Source interface {
	Grab(ctx context.Context) ([]byte, error)
}

// New picks a source for the given reference: HTTP(S) URLs become a snapshot
// source, anything else a file source.
func New(ref string) Source {
	if isURL(ref) {
		return NewURLSource(ref)
	}
	return NewFileSource(ref)
}

// Load fetches the bytes behind a file path or HTTP(S) URL once. Unlike a
// Source, a missing file is a hard error here.
func Load(ctx context.Context, ref string) ([]byte, error) {
	if isURL(ref) {
		return NewURLSource(ref).Grab(ctx)
	}
	return os.ReadFile(ref)
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// URLSource grabs frames from an HTTP snapshot endpoint.
type URLSource struct {
	url    string
	client *http.Client
}

func NewURLSource(url string) *URLSource {
	return &URLSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *URLSource) Grab(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch snapshot: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot data: %w", err)
	}

	return data, nil
}

// FileSource re-reads an image file on every grab, for setups where a capture
// process keeps overwriting one snapshot file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Grab(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotReady
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotReady
	}
	return data, nil
}
