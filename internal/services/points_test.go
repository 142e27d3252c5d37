package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grest/greenspace-server/internal/logger"
	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/store"
	"github.com/grest/greenspace-server/internal/store/sqlite"
)

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, imageBase64, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// countingStore records whether any mutation reached the store.
type countingStore struct {
	store.Store
	mutations int
}

func (c *countingStore) Points() store.Points {
	return &countingPoints{Points: c.Store.Points(), owner: c}
}

type countingPoints struct {
	store.Points
	owner *countingStore
}

func (c *countingPoints) Create(ctx context.Context, p *model.Point) (*model.Point, error) {
	c.owner.mutations++
	return c.Points.Create(ctx, p)
}

func (c *countingPoints) Update(ctx context.Context, id string, patch model.PointPatch) (*model.Point, error) {
	c.owner.mutations++
	return c.Points.Update(ctx, id, patch)
}

func newService(t *testing.T, up *fakeUploader) (*PointService, *countingStore) {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "points.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cs := &countingStore{Store: s}
	svc := NewPointService(cs, up, "-7.7956,110.3695", logger.New("services-test"))
	return svc, cs
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := newService(t, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &SaveRequest{
		Name:        "Taman Kota",
		Coordinates: "-7.7956,110.3695",
		Date:        "2025-11-02",
		Accuration:  "12 m",
		UserID:      "user-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.CreatedAt)

	lst, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, "Taman Kota", lst[0].Name)
	assert.Equal(t, "-7.7956,110.3695", lst[0].Coordinates)
	assert.Equal(t, "12 m", lst[0].Accuration)
	assert.Equal(t, "user-1", lst[0].UserID)
}

func TestCreateValidationSkipsStore(t *testing.T) {
	svc, cs := newService(t, &fakeUploader{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &SaveRequest{Name: "", Coordinates: "-7.79,110.36"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, &SaveRequest{Name: "Park", Coordinates: ""})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, &SaveRequest{Name: "Park", Coordinates: "not,numbers"})
	require.ErrorIs(t, err, model.ErrValidation)

	assert.Equal(t, 0, cs.mutations)
}

func TestUpdateEmptyNameSkipsStore(t *testing.T) {
	svc, cs := newService(t, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &SaveRequest{Name: "Park", Coordinates: "-7.79,110.36"})
	require.NoError(t, err)
	mutationsAfterCreate := cs.mutations

	_, err = svc.Update(ctx, created.ID, &SaveRequest{Name: "   ", Coordinates: "-7.79,110.36"})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, mutationsAfterCreate, cs.mutations)
}

func TestCreateUploadsLocalPhotoFirst(t *testing.T) {
	up := &fakeUploader{url: "https://img.example/photo.jpg"}
	svc, _ := newService(t, up)

	created, err := svc.Create(context.Background(), &SaveRequest{
		Name:        "Park",
		Coordinates: "-7.79,110.36",
		PhotoRef:    "aGVsbG8=",
		PhotoName:   "point_test",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "https://img.example/photo.jpg", created.PhotoURL)
}

func TestCreateKeepsRemotePhotoWithoutUpload(t *testing.T) {
	up := &fakeUploader{}
	svc, _ := newService(t, up)

	created, err := svc.Create(context.Background(), &SaveRequest{
		Name:        "Park",
		Coordinates: "-7.79,110.36",
		PhotoRef:    "https://img.example/already.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, up.calls)
	assert.Equal(t, "https://img.example/already.jpg", created.PhotoURL)
}

func TestUploadFailureAbortsSave(t *testing.T) {
	up := &fakeUploader{err: errors.New("host down")}
	svc, cs := newService(t, up)

	_, err := svc.Create(context.Background(), &SaveRequest{
		Name:        "Park",
		Coordinates: "-7.79,110.36",
		PhotoRef:    "aGVsbG8=",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a hosted photo")
	assert.Equal(t, 0, cs.mutations)
}

func TestUpdateIsFullFieldMerge(t *testing.T) {
	svc, _ := newService(t, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &SaveRequest{
		Name:        "Park",
		Coordinates: "-7.79,110.36",
		Date:        "2025-01-01",
		Accuration:  "5 m",
		PhotoRef:    "https://img.example/a.jpg",
		UserID:      "user-1",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &SaveRequest{
		Name:        "Park Renamed",
		Coordinates: "-7.80,110.40",
		Date:        "2025-02-02",
		Accuration:  "7 m",
	})
	require.NoError(t, err)
	assert.Equal(t, "Park Renamed", updated.Name)
	assert.Equal(t, "-7.80,110.40", updated.Coordinates)
	assert.NotEmpty(t, updated.UpdatedAt)
	// fields outside the form survive the merge
	assert.Equal(t, "https://img.example/a.jpg", updated.PhotoURL)
	assert.Equal(t, "user-1", updated.UserID)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _ := newService(t, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &SaveRequest{Name: "Park", Coordinates: "-7.79,110.36"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))

	lst, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, lst)
}

func TestListSortsNewestFirstAndFilters(t *testing.T) {
	svc, _ := newService(t, &fakeUploader{})
	ctx := context.Background()

	for _, name := range []string{"Taman Kota", "Taman Budaya", "Hutan Kota"} {
		_, err := svc.Create(ctx, &SaveRequest{Name: name, Coordinates: "-7.79,110.36"})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	taman, err := svc.List(ctx, "taman")
	require.NoError(t, err)
	require.Len(t, taman, 2)
	for _, p := range taman {
		assert.Contains(t, p.Name, "Taman")
	}
}

func TestDefaults(t *testing.T) {
	svc, _ := newService(t, &fakeUploader{})
	d := svc.Defaults()
	assert.Equal(t, "N/A", d.Accuration)
	assert.Equal(t, "-7.7956,110.3695", d.DefaultRegion)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, d.Date)
}
