// Package geocoder resolves place queries to OSM areas via Nominatim.
package geocoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/timfernando/roadcolors/models"
	"github.com/timfernando/roadcolors/pkg/caching"
	"github.com/timfernando/roadcolors/pkg/fetcher"
)

// DefaultEndpoint is the public Nominatim search API.
const DefaultEndpoint = "https://nominatim.openstreetmap.org/search"

// maxWhichResult caps the polygon retry loop, matching the search API's
// practical result depth.
const maxWhichResult = 10

var (
	// ErrPlaceNotFound means the query matched nothing at all.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrNoPolygonResult means no candidate within the retry window was a
	// polygon, so there is no area to query roads against.
	ErrNoPolygonResult = errors.New("no polygon result for place")
)

// Result is one Nominatim search candidate.
type Result struct {
	PlaceID     int64    `json:"place_id"`
	OSMType     string   `json:"osm_type"`
	OSMID       int64    `json:"osm_id"`
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	BoundingBox []string `json:"boundingbox"` // min lat, max lat, min lon, max lon
	GeoJSON     struct {
		Type string `json:"type"`
	} `json:"geojson"`
}

// IsPolygon reports whether the candidate outlines an area rather than a
// point or a bare line.
func (r Result) IsPolygon() bool {
	return r.GeoJSON.Type == "Polygon" || r.GeoJSON.Type == "MultiPolygon"
}

// Center parses the candidate's coordinates.
func (r Result) Center() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude %q: %w", r.Lat, err)
	}
	lon, err = strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude %q: %w", r.Lon, err)
	}
	return lat, lon, nil
}

// Client is a Nominatim search client with response caching.
type Client struct {
	fetcher  *fetcher.Fetcher
	cache    *caching.Cache
	endpoint string
}

// NewClient creates a geocoder. cache may be nil to disable caching.
func NewClient(f *fetcher.Fetcher, cache *caching.Cache) *Client {
	return &Client{fetcher: f, cache: cache, endpoint: DefaultEndpoint}
}

// SetEndpoint overrides the search URL, for tests or self-hosted instances.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Search runs a free-text or structured query and returns all candidates.
func (c *Client) Search(query models.PlaceQuery) ([]Result, error) {
	params := url.Values{
		"format":          {"jsonv2"},
		"polygon_geojson": {"1"},
		"limit":           {strconv.Itoa(maxWhichResult)},
	}

	switch query.Type {
	case models.QueryStructured:
		s := query.Structured
		if s.City != "" {
			params.Set("city", s.City)
		}
		if s.County != "" {
			params.Set("county", s.County)
		}
		if s.State != "" {
			params.Set("state", s.State)
		}
		if s.Country != "" {
			params.Set("country", s.Country)
		}
	default:
		params.Set("q", query.Text)
	}

	requestURL := c.endpoint + "?" + params.Encode()

	var body []byte
	if c.cache != nil {
		if cached, ok := c.cache.Get(requestURL); ok {
			body = cached
		}
	}
	if body == nil {
		fetched, err := c.fetcher.Get(requestURL)
		if err != nil {
			return nil, fmt.Errorf("geocoding failed: %w", err)
		}
		body = fetched
		if c.cache != nil {
			_ = c.cache.Set(requestURL, body)
		}
	}

	var results []Result
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlaceNotFound, query.DisplayName())
	}
	return results, nil
}

// ResolveArea finds the first polygon candidate starting at the 1-based
// whichResult index, advancing past point and line matches. Nominatim's
// ranking often puts a monument or a street ahead of the administrative
// boundary, so callers can also skip known-bad leading results.
func (c *Client) ResolveArea(query models.PlaceQuery, whichResult int) (Result, error) {
	if whichResult < 1 {
		whichResult = 1
	}

	results, err := c.Search(query)
	if err != nil {
		return Result{}, err
	}

	for i := whichResult; i <= maxWhichResult; i++ {
		if i > len(results) {
			break
		}
		if results[i-1].IsPolygon() {
			return results[i-1], nil
		}
	}
	return Result{}, fmt.Errorf("%w: %s (tried results %d-%d)",
		ErrNoPolygonResult, query.DisplayName(), whichResult, min(maxWhichResult, len(results)))
}
