// Package services orchestrates the point edit/create flow between the
// store, the photo host, and the derivation pipeline.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/geo"
	"github.com/grest/greenspace-server/internal/imghost"
	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/points"
	"github.com/grest/greenspace-server/internal/store"
)

// SaveRequest carries the edit/create form fields. PhotoRef is either an
// already-hosted URL (kept as-is) or a base64 payload that must be
// uploaded before the save may proceed.
type SaveRequest struct {
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
	Date        string `json:"date"`
	Accuration  string `json:"accuration"`
	PhotoRef    string `json:"photoRef"`
	PhotoName   string `json:"photoName"`
	UserID      string `json:"userId"`
}

// FormDefaults is the state a create form resets to after a successful
// save.
type FormDefaults struct {
	Date          string `json:"date"`
	Accuration    string `json:"accuration"`
	DefaultRegion string `json:"defaultRegion"`
}

type PointService struct {
	store         store.Store
	uploader      imghost.Uploader
	defaultRegion string
	log           zerolog.Logger
}

// NewPointService wires the flow. The store should be the watch-decorated
// one so every successful mutation reaches subscribed surfaces.
func NewPointService(s store.Store, up imghost.Uploader, defaultRegion string, log zerolog.Logger) *PointService {
	return &PointService{store: s, uploader: up, defaultRegion: defaultRegion, log: log}
}

// validate gates the transition from editing to saving. The store must
// not be touched when validation fails.
func validate(req *SaveRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if strings.TrimSpace(req.Coordinates) == "" {
		return fmt.Errorf("%w: coordinates are required", model.ErrValidation)
	}
	if _, err := geo.ParseCoordinates(req.Coordinates); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return nil
}

// resolvePhoto turns the form's photo reference into a hosted URL. A
// remote URL passes through; a local payload must upload successfully or
// the whole save fails.
func (s *PointService) resolvePhoto(ctx context.Context, req *SaveRequest) (string, error) {
	ref := strings.TrimSpace(req.PhotoRef)
	if ref == "" || imghost.IsRemoteURL(ref) {
		return ref, nil
	}
	url, err := s.uploader.Upload(ctx, ref, req.PhotoName)
	if err != nil {
		return "", fmt.Errorf("cannot save point without a hosted photo: %w", err)
	}
	return url, nil
}

// Create validates the form, resolves the photo, and persists a new
// point. The store assigns the id and CreatedAt stamp.
func (s *PointService) Create(ctx context.Context, req *SaveRequest) (*model.Point, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	photoURL, err := s.resolvePhoto(ctx, req)
	if err != nil {
		return nil, err
	}

	p := &model.Point{
		Name:        strings.TrimSpace(req.Name),
		Coordinates: strings.TrimSpace(req.Coordinates),
		Date:        orDefault(req.Date, time.Now().UTC().Format("2006-01-02")),
		Accuration:  orDefault(req.Accuration, "N/A"),
		PhotoURL:    photoURL,
		UserID:      req.UserID,
	}
	created, err := s.store.Points().Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", created.ID).Str("name", created.Name).Msg("point created")
	return created, nil
}

// Update revalidates the full field set and merges it into the stored
// record; the store stamps UpdatedAt. UserID is owner identity captured
// at creation time and is never rewritten here.
func (s *PointService) Update(ctx context.Context, id string, req *SaveRequest) (*model.Point, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	photoURL, err := s.resolvePhoto(ctx, req)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	coords := strings.TrimSpace(req.Coordinates)
	date := orDefault(req.Date, time.Now().UTC().Format("2006-01-02"))
	accuration := orDefault(req.Accuration, "N/A")

	patch := model.PointPatch{
		Name:        &name,
		Coordinates: &coords,
		Date:        &date,
		Accuration:  &accuration,
	}
	if photoURL != "" {
		patch.PhotoURL = &photoURL
	}

	updated, err := s.store.Points().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", id).Msg("point updated")
	return updated, nil
}

// Delete removes a point. It is idempotent; the confirmation step guards
// it at the transport layer, not here.
func (s *PointService) Delete(ctx context.Context, id string) error {
	if err := s.store.Points().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("point deleted")
	return nil
}

// Get returns a single point, e.g. to pre-populate the edit form.
func (s *PointService) Get(ctx context.Context, id string) (*model.Point, error) {
	return s.store.Points().Get(ctx, id)
}

// List returns the collection newest-first, optionally narrowed with the
// list-variant filter (name, coordinates, date).
func (s *PointService) List(ctx context.Context, query string) ([]model.Point, error) {
	lst, err := s.store.Points().List(ctx)
	if err != nil {
		return nil, err
	}
	return points.FilterList(points.SortNewestFirst(lst), query), nil
}

// Defaults is the create-form reset state.
func (s *PointService) Defaults() FormDefaults {
	return FormDefaults{
		Date:          time.Now().UTC().Format("2006-01-02"),
		Accuration:    "N/A",
		DefaultRegion: s.defaultRegion,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
