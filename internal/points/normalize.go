// Package points holds the pure derivation pipeline between store
// snapshots and the render surfaces: normalization into map-capable
// markers, substring filtering, and newest-first ordering.
package points

import (
	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/geo"
	"github.com/grest/greenspace-server/internal/model"
)

// Normalize projects raw records into map-capable markers. A record whose
// coordinates do not parse into exactly two finite numbers is dropped
// with a warning; the list surface still shows such records, the map
// surfaces never do. Output order follows input order.
func Normalize(raws []model.Point, log zerolog.Logger) []model.MapMarker {
	out := make([]model.MapMarker, 0, len(raws))
	for _, r := range raws {
		c, err := geo.ParseCoordinates(r.Coordinates)
		if err != nil {
			log.Warn().
				Str("id", r.ID).
				Str("coordinates", r.Coordinates).
				Err(err).
				Msg("dropping point with malformed coordinates")
			continue
		}
		out = append(out, model.MapMarker{
			ID:        r.ID,
			Name:      r.Name,
			Latitude:  c.Lat,
			Longitude: c.Lng,
			Point:     r,
		})
	}
	return out
}
