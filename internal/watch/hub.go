// Package watch turns the point store into a snapshot stream: every
// subscriber receives the full current collection immediately and again
// after each successful mutation, matching the hosted store's
// subscribe/callback contract.
package watch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/store"
)

// Hub fans full-collection snapshots out to subscribers. Mutations must be
// routed through the store decorator returned by Store() to be observed.
type Hub struct {
	inner store.Store
	log   zerolog.Logger

	mu     sync.Mutex
	subs   map[int]chan []model.Point
	nextID int
}

func NewHub(s store.Store, log zerolog.Logger) *Hub {
	return &Hub{inner: s, log: log, subs: make(map[int]chan []model.Point)}
}

// Subscribe registers a snapshot consumer. The current collection (or an
// empty one, when the initial load fails) is delivered before Subscribe
// returns a channel. Each subscriber is buffered one snapshot deep; a
// newer snapshot replaces an undelivered one, so a slow consumer always
// observes the latest state and never a stale backlog.
//
// The returned cancel func releases the slot; it is safe to call more
// than once. Cancellation also follows ctx.
func (h *Hub) Subscribe(ctx context.Context) (<-chan []model.Point, func()) {
	ch := make(chan []model.Point, 1)

	initial, err := h.inner.Points().List(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("initial snapshot load failed, delivering empty collection")
		initial = nil
	}
	ch <- snapshotCopy(initial)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
			close(done)
		})
	}

	// follows ctx, but must also exit on explicit cancel so subscribers
	// with a non-cancellable ctx do not pin a goroutine per subscription
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel
}

// Store returns a decorator that publishes a fresh snapshot after every
// successful mutation.
func (h *Hub) Store() store.Store { return &watchedStore{hub: h} }

// Notify loads the current collection and fans it out. Exposed for
// callers that mutate the backing store out of band.
func (h *Hub) Notify(ctx context.Context) {
	snap, err := h.inner.Points().List(ctx)
	if err != nil {
		// subscribers keep their last-known-good snapshot
		h.log.Warn().Err(err).Msg("snapshot load failed, skipping broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		deliverLatest(ch, snapshotCopy(snap))
	}
}

// deliverLatest replaces any undelivered snapshot with the newer one.
// Callers hold h.mu, so there is a single writer per channel.
func deliverLatest(ch chan []model.Point, snap []model.Point) {
	for {
		select {
		case ch <- snap:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func snapshotCopy(points []model.Point) []model.Point {
	out := make([]model.Point, len(points))
	copy(out, points)
	return out
}

type watchedStore struct{ hub *Hub }

func (w *watchedStore) Points() store.Points { return &watchedPoints{hub: w.hub} }

func (w *watchedStore) HealthPing(ctx context.Context) error {
	return w.hub.inner.HealthPing(ctx)
}

func (w *watchedStore) Close() error { return w.hub.inner.Close() }

type watchedPoints struct{ hub *Hub }

func (w *watchedPoints) Create(ctx context.Context, p *model.Point) (*model.Point, error) {
	out, err := w.hub.inner.Points().Create(ctx, p)
	if err != nil {
		return nil, err
	}
	w.hub.Notify(ctx)
	return out, nil
}

func (w *watchedPoints) Get(ctx context.Context, id string) (*model.Point, error) {
	return w.hub.inner.Points().Get(ctx, id)
}

func (w *watchedPoints) List(ctx context.Context) ([]model.Point, error) {
	return w.hub.inner.Points().List(ctx)
}

func (w *watchedPoints) Update(ctx context.Context, id string, patch model.PointPatch) (*model.Point, error) {
	out, err := w.hub.inner.Points().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	w.hub.Notify(ctx)
	return out, nil
}

func (w *watchedPoints) Delete(ctx context.Context, id string) error {
	if err := w.hub.inner.Points().Delete(ctx, id); err != nil {
		return err
	}
	w.hub.Notify(ctx)
	return nil
}
