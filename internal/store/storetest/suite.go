// Package storetest holds a compliance suite run against every store driver.
package storetest

import (
	"context"
	"testing"

	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/store"
)

// Run exercises the point-store contract against a store.Store
// implementation. makeStore should return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Create assigns an id and stamps CreatedAt.
	created, err := s.Points().Create(ctx, &model.Point{
		Name:        "Taman Kota",
		Coordinates: "-7.7956,110.3695",
		Date:        "2025-11-02",
		Accuration:  "12 m",
		UserID:      "user-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatalf("Create: missing id or createdAt: %+v", created)
	}

	// Round trip: visible fields survive unchanged.
	got, err := s.Points().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Taman Kota" || got.Coordinates != "-7.7956,110.3695" || got.UserID != "user-1" {
		t.Fatalf("Get: fields changed: %+v", got)
	}

	// Ids are unique and time ordered.
	second, err := s.Points().Create(ctx, &model.Point{Name: "Hutan Kota", Coordinates: "-7.80,110.40"})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("duplicate id %s", second.ID)
	}
	if second.ID < created.ID {
		t.Fatalf("ids not time ordered: %s < %s", second.ID, created.ID)
	}

	if lst, err := s.Points().List(ctx); err != nil || len(lst) != 2 {
		t.Fatalf("List: n=%d err=%v", len(lst), err)
	}

	// Update is a partial merge: omitted fields are retained.
	name := "Taman Budaya"
	upd, err := s.Points().Update(ctx, created.ID, model.PointPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Name != "Taman Budaya" {
		t.Fatalf("Update: name not applied: %+v", upd)
	}
	if upd.Coordinates != "-7.7956,110.3695" || upd.Accuration != "12 m" {
		t.Fatalf("Update: omitted fields lost: %+v", upd)
	}
	if upd.UpdatedAt == "" {
		t.Fatalf("Update: missing updatedAt")
	}

	// Updating a missing id reports ErrNotFound.
	if _, err := s.Points().Update(ctx, "no-such-id", model.PointPatch{Name: &name}); err != model.ErrNotFound {
		t.Fatalf("Update missing: want ErrNotFound, got %v", err)
	}

	// Delete is idempotent.
	if err := s.Points().Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Points().Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	if lst, err := s.Points().List(ctx); err != nil || len(lst) != 1 {
		t.Fatalf("List after delete: n=%d err=%v", len(lst), err)
	}

	if _, err := s.Points().Get(ctx, second.ID); err != model.ErrNotFound {
		t.Fatalf("Get deleted: want ErrNotFound, got %v", err)
	}

	if err := s.HealthPing(ctx); err != nil {
		t.Fatalf("HealthPing: %v", err)
	}
}
