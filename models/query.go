// Package models defines data structures for configuration and place queries.
package models

import (
	"fmt"
	"strings"
)

// QueryType discriminates how a place query should be interpreted.
type QueryType string

const (
	// QueryString geocodes a free-text place name.
	QueryString QueryType = "string"
	// QueryStructured geocodes city/county/state/country fields separately.
	QueryStructured QueryType = "structured"
	// QueryPoint skips geocoding and fetches roads around a coordinate.
	QueryPoint QueryType = "point"
)

// ParseQueryType validates a query-type flag value.
func ParseQueryType(s string) (QueryType, error) {
	switch QueryType(strings.ToLower(strings.TrimSpace(s))) {
	case QueryString, "":
		return QueryString, nil
	case QueryStructured:
		return QueryStructured, nil
	case QueryPoint:
		return QueryPoint, nil
	}
	return "", fmt.Errorf("unknown query type %q (want string, structured or point)", s)
}

// StructuredQuery holds the address components Nominatim accepts as
// separate search parameters.
type StructuredQuery struct {
	City    string `yaml:"city,omitempty"`
	County  string `yaml:"county,omitempty"`
	State   string `yaml:"state,omitempty"`
	Country string `yaml:"country,omitempty"`
}

// Values returns the non-empty components in a stable order.
func (q StructuredQuery) Values() []string {
	var vals []string
	for _, v := range []string{q.City, q.County, q.State, q.Country} {
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

// PointQuery identifies a circle around a coordinate.
type PointQuery struct {
	Name   string  `yaml:"name"`
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Radius float64 `yaml:"radius"` // meters
}

// PlaceQuery is the union of the three query shapes. Exactly one of
// Text, Structured or Point is set, according to Type.
type PlaceQuery struct {
	Type       QueryType        `yaml:"query_type"`
	Text       string           `yaml:"place,omitempty"`
	Structured *StructuredQuery `yaml:"structured,omitempty"`
	Point      *PointQuery      `yaml:"point,omitempty"`
}

// DisplayName returns the human-readable place name used for output
// filenames and run records.
func (p PlaceQuery) DisplayName() string {
	switch p.Type {
	case QueryStructured:
		if p.Structured != nil {
			return strings.Join(p.Structured.Values(), " ")
		}
	case QueryPoint:
		if p.Point != nil {
			return p.Point.Name
		}
	}
	return p.Text
}

// Validate checks that the query shape matches its declared type.
func (p PlaceQuery) Validate() error {
	switch p.Type {
	case QueryString:
		if strings.TrimSpace(p.Text) == "" {
			return fmt.Errorf("string query requires a place name")
		}
	case QueryStructured:
		if p.Structured == nil || len(p.Structured.Values()) == 0 {
			return fmt.Errorf("structured query requires at least one address component")
		}
	case QueryPoint:
		if p.Point == nil {
			return fmt.Errorf("point query requires coordinates")
		}
		if p.Point.Radius <= 0 {
			return fmt.Errorf("point query requires a positive radius")
		}
		if p.Point.Lat < -90 || p.Point.Lat > 90 || p.Point.Lon < -180 || p.Point.Lon > 180 {
			return fmt.Errorf("point query coordinates out of range")
		}
	default:
		return fmt.Errorf("unknown query type %q", p.Type)
	}
	return nil
}
