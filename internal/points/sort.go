package points

import (
	"sort"
	"time"

	"github.com/grest/greenspace-server/internal/model"
)

// SortNewestFirst orders points descending by CreatedAt, falling back to
// Date for records that predate timestamping. A record with neither sorts
// as the Unix epoch, which keeps the order stable and pushes it last.
// The input is not modified.
func SortNewestFirst(pts []model.Point) []model.Point {
	out := make([]model.Point, len(pts))
	copy(out, pts)
	sort.SliceStable(out, func(i, j int) bool {
		return sortTime(out[i]).After(sortTime(out[j]))
	})
	return out
}

func sortTime(p model.Point) time.Time {
	if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", p.Date); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, p.Date); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}
