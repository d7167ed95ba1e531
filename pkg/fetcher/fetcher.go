package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UserAgent identifies this tool to the OSM services. Both Nominatim and
// Overpass refuse requests without a descriptive agent string.
const UserAgent = "roadcolors/1.0 (+https://github.com/timfernando/roadcolors)"

type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with a timeout generous enough for large
// Overpass extracts.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 3 * time.Minute},
	}
}

func (f *Fetcher) Get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	return f.do(req)
}

// PostForm sends an application/x-www-form-urlencoded POST. Overpass
// queries go through here so long QL bodies never hit URL length limits.
func (f *Fetcher) PostForm(rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) ([]byte, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", req.URL.Host, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}
