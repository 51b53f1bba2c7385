// Package spatial decides how a map viewport is queried and turns the
// resulting store rows into GeoJSON.
package spatial

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultZoom is used when the zoom parameter is absent or not an integer.
const DefaultZoom = 12

// Endpoint separates cache key spaces of endpoints sharing the viewport parameters.
type Endpoint string

const (
	EndpointCrimes  Endpoint = "crimes"
	EndpointHeatmap Endpoint = "heatmap"
)

// RawParams holds query parameters exactly as received.
type RawParams struct {
	Categories string
	MinLng     string
	MinLat     string
	MaxLng     string
	MaxLat     string
	Zoom       string
}

// BBox is an axis-aligned lng/lat rectangle in SRID 4326.
type BBox struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// ViewportQuery is the normalized form of a map request.
type ViewportQuery struct {
	Categories []string
	// BBox is nil unless all four coordinates were present and numeric.
	BBox *BBox
	Zoom int

	raw RawParams
}

// ParseViewport never fails: malformed input disables a filter or falls back
// to a default instead of rejecting the request.
func ParseViewport(p RawParams) ViewportQuery {
	return ViewportQuery{
		Categories: parseCategories(p.Categories),
		BBox:       parseBBox(p),
		Zoom:       parseZoom(p.Zoom),
		raw:        p,
	}
}

func parseCategories(value string) []string {
	if value == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var categories []string
	for _, c := range strings.Split(value, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	return categories
}

func parseBBox(p RawParams) *BBox {
	var coords [4]float64
	for i, s := range []string{p.MinLng, p.MinLat, p.MaxLng, p.MaxLat} {
		v, ok := parseCoord(s)
		if !ok {
			return nil
		}
		coords[i] = v
	}
	return &BBox{MinLng: coords[0], MinLat: coords[1], MaxLng: coords[2], MaxLat: coords[3]}
}

func parseCoord(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseZoom(s string) int {
	zoom, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultZoom
	}
	return zoom
}

// CacheKey joins the raw parameters in a fixed order. Components are
// query-escaped so the separator can never occur inside one of them.
func (q ViewportQuery) CacheKey(endpoint Endpoint) string {
	parts := []string{
		string(endpoint),
		url.QueryEscape(q.raw.MinLng),
		url.QueryEscape(q.raw.MinLat),
		url.QueryEscape(q.raw.MaxLng),
		url.QueryEscape(q.raw.MaxLat),
		url.QueryEscape(q.raw.Categories),
	}
	if endpoint == EndpointCrimes {
		parts = append(parts, strconv.Itoa(q.Zoom), SelectMode(q.Zoom).String())
	}
	return strings.Join(parts, "|")
}
