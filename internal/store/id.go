package store

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewPointID returns a fresh ULID. ULIDs are lexicographically ordered by
// creation time, mirroring the chronologically sortable keys the hosted
// store assigned, and are never reused within a process.
func NewPointID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
