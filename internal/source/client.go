package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "mangotag/1.0"

// Client fetches pages for scraping sources. With a cache directory set,
// raw payloads are stored on disk keyed by request URL and served from
// there on repeat fetches.
type Client struct {
	http     *http.Client
	cacheDir string
}

// NewClient creates a fetching client. cacheDir may be empty to disable
// caching.
func NewClient(cacheDir string, timeout time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		cacheDir: cacheDir,
	}
}

// GetHTML fetches a URL and returns the response body as a string,
// consulting and populating the cache when one is configured.
func (c *Client) GetHTML(rawURL string) (string, error) {
	var cachePath string
	if c.cacheDir != "" {
		cachePath = filepath.Join(c.cacheDir, cacheKey(rawURL))
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}

	if cachePath != "" {
		if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
			return "", fmt.Errorf("creating cache dir: %w", err)
		}
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			return "", fmt.Errorf("writing cache entry: %w", err)
		}
	}

	return string(data), nil
}

// cacheKey flattens a URL into a relative path under the cache
// directory.
func cacheKey(rawURL string) string {
	return filepath.FromSlash(strings.ReplaceAll(rawURL, "://", "/"))
}
