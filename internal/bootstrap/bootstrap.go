// Package bootstrap prepares the database before the server takes traffic.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/helper"
	authService "hotel/internal/domains/auth/service"
	"hotel/internal/domains/booking/schema"

	"github.com/rs/zerolog/log"
)

type Bootstrap struct {
	cfg     *config.Config
	schema  schema.Manager
	auth    authService.Auth
	migrate func(*config.Config) error
}

func New(cfg *config.Config, schema schema.Manager, auth authService.Auth) *Bootstrap {
	return &Bootstrap{
		cfg:     cfg,
		schema:  schema,
		auth:    auth,
		migrate: helper.Up,
	}
}

// Run applies the versioned migrations, brings the bookings table to the
// current shape and seeds the admin account, in that order. Migration and
// schema failures are logged and the later steps still run. Only a failed
// admin seed is returned, since nobody could sign in without it.
func (b *Bootstrap) Run(ctx context.Context) error {
	if b.cfg.DB.SQLite.AutoMigrate {
		if err := b.migrate(b.cfg); err != nil {
			log.Error().Err(err).Msg("Versioned migrations failed")
		}
	} else {
		log.Warn().Msg("Automatic migrations disabled, expecting an up-to-date users table")
	}

	if err := b.schema.EnsureSchema(ctx); err != nil {
		var schemaErr *schema.Error
		if errors.As(err, &schemaErr) {
			log.Error().Err(schemaErr.Err).Str("op", schemaErr.Op).Msg("Bookings schema left as is")
		} else {
			log.Error().Err(err).Msg("Bookings schema left as is")
		}
	}

	if err := b.auth.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}

	log.Info().Msg("Database ready")

	return nil
}
