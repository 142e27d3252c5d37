// Package list models the scrollable card list: the full collection
// newest-first, filterable over name, coordinates and date, with display
// fallbacks for records the map surfaces would drop.
package list

import (
	"github.com/grest/greenspace-server/internal/geo"
	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/points"
)

// Row is the presentation shape of one card. The list is the only surface
// that renders every record: a row with malformed coordinates still
// appears, with its coordinate display masked to "N/A".
type Row struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
	Date        string `json:"date"`
	Accuration  string `json:"accuration"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	HasPhoto    bool   `json:"hasPhoto"`
}

// Rows derives the rendered list from a collection snapshot.
func Rows(snap []model.Point, query string) []Row {
	visible := points.FilterList(points.SortNewestFirst(snap), query)
	out := make([]Row, len(visible))
	for i, p := range visible {
		out[i] = newRow(p)
	}
	return out
}

func newRow(p model.Point) Row {
	name := p.Name
	if name == "" {
		name = "Unnamed"
	}
	return Row{
		ID:          p.ID,
		Name:        name,
		Coordinates: geo.FormatDisplay(p.Coordinates),
		Date:        orNA(p.Date),
		Accuration:  orNA(p.Accuration),
		PhotoURL:    p.PhotoURL,
		HasPhoto:    p.PhotoURL != "",
	}
}

// EditPrefill builds the edit-form request pre-populated from a stored
// record, the way a row's edit action hands fields to the form.
func EditPrefill(p model.Point) map[string]string {
	return map[string]string{
		"id":          p.ID,
		"name":        p.Name,
		"coordinates": p.Coordinates,
		"date":        p.Date,
		"accuration":  p.Accuration,
		"photoUrl":    p.PhotoURL,
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
