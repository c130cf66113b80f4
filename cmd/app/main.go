package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

//	@title			Hotel Booking API
//	@version		1.0
//	@description	Room bookings, availability and staff accounts for a small hotel.
//	@BasePath		/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	logger.InitLogger()

	cfg := config.Get()

	if closer := logger.AttachFile(cfg); closer != nil {
		defer closer.Close()
	}

	logger.SetLogLevel(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("Failed to load timezone")
	}

	http := di.InitializeService()
	http.Serve()
}
