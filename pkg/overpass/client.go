package overpass

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/timfernando/roadcolors/pkg/caching"
	"github.com/timfernando/roadcolors/pkg/fetcher"
	"github.com/timfernando/roadcolors/pkg/graph"
)

// DefaultEndpoint is the public Overpass API interpreter.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// ErrEmptyGraph is returned when a query matches no ways at all.
var ErrEmptyGraph = errors.New("overpass returned no ways for this query")

// Client fetches road networks, consulting the response cache first.
type Client struct {
	fetcher  *fetcher.Fetcher
	cache    *caching.Cache
	endpoint string
}

// NewClient creates an Overpass client. cache may be nil to disable caching.
func NewClient(f *fetcher.Fetcher, cache *caching.Cache) *Client {
	return &Client{fetcher: f, cache: cache, endpoint: DefaultEndpoint}
}

// SetEndpoint overrides the interpreter URL. Used by tests and by
// self-hosted Overpass instances.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// WaysInArea fetches the road network inside an Overpass area.
func (c *Client) WaysInArea(areaID int64, network string) (*graph.Graph, error) {
	network, err := normalizeNetwork(network)
	if err != nil {
		return nil, err
	}
	return c.run(areaQuery(areaID, network))
}

// WaysAround fetches the road network within radius meters of a point.
func (c *Client) WaysAround(lat, lon, radius float64, network string) (*graph.Graph, error) {
	network, err := normalizeNetwork(network)
	if err != nil {
		return nil, err
	}
	return c.run(aroundQuery(lat, lon, radius, network))
}

// WaysInBBox fetches the road network inside a bounding box.
func (c *Client) WaysInBBox(b graph.BBox, network string) (*graph.Graph, error) {
	network, err := normalizeNetwork(network)
	if err != nil {
		return nil, err
	}
	return c.run(bboxQuery(b, network))
}

func (c *Client) run(query string) (*graph.Graph, error) {
	cacheKey := c.endpoint + "\n" + query

	var body []byte
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			body = cached
		}
	}

	if body == nil {
		fetched, err := c.fetcher.PostForm(c.endpoint, url.Values{"data": {query}})
		if err != nil {
			return nil, fmt.Errorf("overpass query failed: %w", err)
		}
		body = fetched
		if c.cache != nil {
			// A failed cache write is not worth failing the run over.
			_ = c.cache.Set(cacheKey, body)
		}
	}

	g, err := Decode(body)
	if err != nil {
		return nil, err
	}
	if g.Empty() {
		return nil, ErrEmptyGraph
	}
	return g, nil
}
