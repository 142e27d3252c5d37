// Package nativemap models the native map surface: a marker set derived
// from the snapshot stream, a name filter, and the single-selection
// interaction machine that hands markers off to edit, delete, or the
// external navigation app.
package nativemap

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/geo"
	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/points"
)

// ErrNoSelection is returned when an action fires without a selected
// marker.
var ErrNoSelection = fmt.Errorf("no marker selected")

// Surface is safe for use from the snapshot goroutine and the interaction
// path concurrently.
type Surface struct {
	log zerolog.Logger

	mu       sync.Mutex
	markers  []model.MapMarker
	query    string
	selected string // marker id, "" when idle
}

func New(log zerolog.Logger) *Surface {
	return &Surface{log: log}
}

// Run consumes a snapshot subscription until the channel closes or ctx
// ends. Stale renders are never queued: the hub already collapses
// undelivered snapshots to the newest one.
func (s *Surface) Run(ctx context.Context, snapshots <-chan []model.Point) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			s.SetSnapshot(snap)
		}
	}
}

// SetSnapshot replaces the derived marker set from a fresh collection
// snapshot. Malformed records are excluded here; they never reach the map.
func (s *Surface) SetSnapshot(snap []model.Point) {
	markers := points.Normalize(snap, s.log)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = markers
	if s.selected != "" && s.findLocked(s.selected) == nil {
		// selection disappeared with the snapshot
		s.selected = ""
	}
}

// SetQuery updates the name filter.
func (s *Surface) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Markers returns the filtered marker set currently rendered.
func (s *Surface) Markers() []model.MapMarker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return points.FilterMarkers(s.markers, s.query)
}

// Select transitions idle -> selected. Selecting an unknown marker is an
// error and leaves the surface idle.
func (s *Surface) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) == nil {
		s.selected = ""
		return fmt.Errorf("unknown marker %q", id)
	}
	s.selected = id
	return nil
}

// Selected returns the currently selected marker, if any.
func (s *Surface) Selected() (model.MapMarker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.findLocked(s.selected); m != nil {
		return *m, true
	}
	return model.MapMarker{}, false
}

// NavigateExternal builds the deep link for the selected marker and
// returns the surface to idle.
func (s *Surface) NavigateExternal(p geo.Platform) (string, error) {
	m, err := s.take()
	if err != nil {
		return "", err
	}
	return geo.NavLink(p, geo.Coordinates{Lat: m.Latitude, Lng: m.Longitude}, m.Name)
}

// RequestEdit emits the selected marker's id for the edit flow and
// returns to idle.
func (s *Surface) RequestEdit() (string, error) {
	m, err := s.take()
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// RequestDelete emits the selected marker's id and name (for the
// confirmation prompt) and returns to idle. The caller owns confirmation
// and the actual store mutation.
func (s *Surface) RequestDelete() (id, name string, err error) {
	m, err := s.take()
	if err != nil {
		return "", "", err
	}
	return m.ID, m.Name, nil
}

// take consumes the selection, enforcing the one-step interaction
// machine: every action transitions back to idle.
func (s *Surface) take() (model.MapMarker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findLocked(s.selected)
	s.selected = ""
	if m == nil {
		return model.MapMarker{}, ErrNoSelection
	}
	return *m, nil
}

func (s *Surface) findLocked(id string) *model.MapMarker {
	if id == "" {
		return nil
	}
	for i := range s.markers {
		if s.markers[i].ID == id {
			return &s.markers[i]
		}
	}
	return nil
}
