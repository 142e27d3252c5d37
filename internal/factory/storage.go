// Package factory assembles configured dependencies for the service.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/grest/greenspace-server/internal/config"
	storepkg "github.com/grest/greenspace-server/internal/store"
	storepg "github.com/grest/greenspace-server/internal/store/postgres"
	storesqlite "github.com/grest/greenspace-server/internal/store/sqlite"
)

// NewStore returns the store.Store for the configured driver.
// The local target uses an embedded sqlite file; the cloud target needs
// a Postgres DSN.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store opened")
		return st, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("GREENSPACE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		st, err := storepg.New(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Info().Msg("postgres store opened")
		return st, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
