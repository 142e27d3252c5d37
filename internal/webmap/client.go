package webmap

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/geo"
	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/points"
)

// Client is the reference embedded surface. It owns its marker layer,
// rebuilt wholesale from every loadPoints push, performs the local search
// with recentering, and emits edit/delete requests back to the host. The
// CLI watch command and the bridge tests run on it.
type Client struct {
	conn *websocket.Conn
	log  zerolog.Logger

	// onUpdate fires after the marker layer is replaced.
	onUpdate func([]model.MapMarker)

	mu      sync.Mutex
	markers []model.MapMarker
	center  geo.Coordinates
	hasCtr  bool
}

// Dial attaches a new surface to the bridge endpoint (ws:// URL).
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:     conn,
		log:      log,
		onUpdate: func([]model.MapMarker) {},
	}, nil
}

// SetOnUpdate installs a marker-layer change hook. Call before Run.
func (c *Client) SetOnUpdate(f func([]model.MapMarker)) {
	if f != nil {
		c.onUpdate = f
	}
}

// Run processes host pushes until the connection closes or ctx ends.
func (c *Client) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = c.conn.Close()
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if err := msg.Validate(); err != nil {
			c.log.Warn().Err(err).Msg("dropping message with unknown action")
			continue
		}

		switch msg.Action {
		case ActionLoadPoints:
			snap, err := msg.LoadPoints()
			if err != nil {
				c.log.Warn().Err(err).Msg("bad loadPoints payload")
				continue
			}
			c.replaceMarkers(snap)

		case ActionSearch:
			q, err := msg.Search()
			if err != nil {
				c.log.Warn().Err(err).Msg("bad search payload")
				continue
			}
			c.localSearch(q)

		default:
			c.log.Warn().Str("action", string(msg.Action)).Msg("host sent surface-direction message")
		}
	}
}

// Close tears the surface down.
func (c *Client) Close() error { return c.conn.Close() }

// replaceMarkers rebuilds the marker layer from a full snapshot; the
// layer is a disposable copy, never mutated independently.
func (c *Client) replaceMarkers(snap []model.Point) {
	markers := points.Normalize(snap, c.log)

	c.mu.Lock()
	c.markers = markers
	c.mu.Unlock()

	c.onUpdate(markers)
}

// localSearch recenters the map on the first marker whose name matches.
func (c *Client) localSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	matched := points.FilterMarkers(c.markers, query)
	if len(matched) == 0 {
		return
	}
	c.center = geo.Coordinates{Lat: matched[0].Latitude, Lng: matched[0].Longitude}
	c.hasCtr = true
}

// Markers returns the current marker layer.
func (c *Client) Markers() []model.MapMarker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.MapMarker, len(c.markers))
	copy(out, c.markers)
	return out
}

// Center returns the last recenter target, if a search has matched.
func (c *Client) Center() (geo.Coordinates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center, c.hasCtr
}

// RequestEdit asks the host to open the edit flow for a point.
func (c *Client) RequestEdit(id string) error {
	msg, err := NewEdit(id)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// RequestDelete asks the host to delete a point. The name rides along
// for the host's confirmation prompt.
func (c *Client) RequestDelete(id, name string) error {
	msg, err := NewDelete(id, name)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}
