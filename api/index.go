package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler serves every request through one application instance per cold start.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		logger.InitLogger()

		cfg := config.Get()

		logger.SetLogLevel(cfg)

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Error().Err(err).Msg("Failed to load timezone, using UTC")
		}

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
