package points

import (
	"strings"

	"github.com/grest/greenspace-server/internal/model"
)

// Filter returns the points whose name contains the query, case
// insensitively. An empty or whitespace-only query returns the input
// slice unchanged. Relative order is preserved; no tokenization, no
// fuzzy matching.
func Filter(pts []model.Point, query string) []model.Point {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return pts
	}
	out := make([]model.Point, 0, len(pts))
	for _, p := range pts {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterList is the list-surface variant: matching extends to the
// coordinates and date fields.
func FilterList(pts []model.Point, query string) []model.Point {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return pts
	}
	out := make([]model.Point, 0, len(pts))
	for _, p := range pts {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Coordinates), q) ||
			strings.Contains(strings.ToLower(p.Date), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterMarkers applies the map-surface name filter to normalized markers.
func FilterMarkers(markers []model.MapMarker, query string) []model.MapMarker {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return markers
	}
	out := make([]model.MapMarker, 0, len(markers))
	for _, m := range markers {
		if strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, m)
		}
	}
	return out
}
