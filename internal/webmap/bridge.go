package webmap

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/services"
	"github.com/grest/greenspace-server/internal/watch"
)

// ConfirmFunc answers the delete confirmation prompt. The bridge, not
// the surface, is the authority for the actual mutation; the default
// policy accepts, standing in for the user confirming the dialog.
type ConfirmFunc func(id, name string) bool

// session serializes writes to one surface connection: the snapshot pump
// and search pushes share the websocket.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) writeJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Bridge is the host side of the message bus. Each websocket connection
// is one mounted embedded surface: it receives a loadPoints snapshot on
// attach and after every store mutation, and may request edit/delete
// actions back. The surface only requests; the bridge owns confirmation
// and the actual store mutation.
type Bridge struct {
	hub     *watch.Hub
	svc     *services.PointService
	log     zerolog.Logger
	confirm ConfirmFunc

	// onEdit routes an edit request into the host's edit flow.
	onEdit func(id string)

	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*session]struct{}
}

func NewBridge(hub *watch.Hub, svc *services.PointService, log zerolog.Logger) *Bridge {
	return &Bridge{
		hub:     hub,
		svc:     svc,
		log:     log,
		confirm: func(string, string) bool { return true },
		onEdit:  func(string) {},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*session]struct{}),
	}
}

// SetConfirm overrides the delete confirmation policy.
func (b *Bridge) SetConfirm(f ConfirmFunc) {
	if f != nil {
		b.confirm = f
	}
}

// SetOnEdit installs the edit-flow hook.
func (b *Bridge) SetOnEdit(f func(id string)) {
	if f != nil {
		b.onEdit = f
	}
}

// ServeHTTP upgrades the request and runs the surface session until the
// peer disconnects. The snapshot subscription is released on teardown so
// no snapshot is pushed at an unmounted surface.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := &session{conn: conn}
	b.mu.Lock()
	b.conns[sess] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.conns, sess)
		b.mu.Unlock()
		_ = conn.Close()
	}()

	ctx := r.Context()
	snapshots, cancel := b.hub.Subscribe(ctx)
	defer cancel()

	// write pump: snapshots become loadPoints pushes
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for snap := range snapshots {
			msg, err := NewLoadPoints(snap)
			if err != nil {
				b.log.Error().Err(err).Msg("encode loadPoints")
				continue
			}
			if err := sess.writeJSON(msg); err != nil {
				return
			}
		}
	}()

	// read loop: surface action requests
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if err := msg.Validate(); err != nil {
			b.log.Warn().Err(err).Msg("dropping message with unknown action")
			continue
		}

		switch msg.Action {
		case ActionEdit:
			req, err := msg.Edit()
			if err != nil {
				b.log.Warn().Err(err).Msg("bad edit payload")
				continue
			}
			b.log.Info().Str("id", req.ID).Msg("surface requested edit")
			b.onEdit(req.ID)

		case ActionDelete:
			req, err := msg.Delete()
			if err != nil {
				b.log.Warn().Err(err).Msg("bad delete payload")
				continue
			}
			if !b.confirm(req.ID, req.Name) {
				b.log.Info().Str("id", req.ID).Msg("delete not confirmed")
				continue
			}
			if err := b.svc.Delete(ctx, req.ID); err != nil {
				b.log.Error().Str("id", req.ID).Err(err).Msg("delete requested by surface failed")
			}
			// the snapshot subscription refreshes the surface's markers

		default:
			// loadPoints and search flow host to surface only
			b.log.Warn().Str("action", string(msg.Action)).Msg("surface sent host-direction message")
		}
	}

	cancel()
	<-writeDone
}

// PushSearch forwards the host's search query to every mounted surface,
// which performs the local match and recenters itself.
func (b *Bridge) PushSearch(query string) error {
	msg, err := NewSearch(query)
	if err != nil {
		return err
	}

	b.mu.Lock()
	sessions := make([]*session, 0, len(b.conns))
	for s := range b.conns {
		sessions = append(sessions, s)
	}
	b.mu.Unlock()

	for _, s := range sessions {
		if err := s.writeJSON(msg); err != nil {
			b.log.Warn().Err(err).Msg("search push failed for one surface")
		}
	}
	return nil
}
