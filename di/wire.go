//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/infras/sqlite"
	"hotel/internal/bootstrap"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	authService "hotel/internal/domains/auth/service"
	backupService "hotel/internal/domains/backup/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/schema"
	bookingService "hotel/internal/domains/booking/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"

	authHandler "hotel/internal/handlers/auth"
	backupHandler "hotel/internal/handlers/backup"
	bookingHandler "hotel/internal/handlers/booking"
	roomHandler "hotel/internal/handlers/room"
	systemHandler "hotel/internal/handlers/system"
	userHandler "hotel/internal/handlers/user"
	viewHandler "hotel/internal/handlers/view"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	sqlite.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var backupDomain = wire.NewSet(
	backupService.New,
	wire.Bind(new(schema.Snapshotter), new(backupService.Backup)),
)

var bookingDomain = wire.NewSet(
	schema.New,
	bookingRepository.New,
	bookingService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var domains = wire.NewSet(
	backupDomain,
	bookingDomain,
	roomDomain,
	authDomain,
	bootstrap.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	backupHandler.New,
	bookingHandler.New,
	roomHandler.New,
	systemHandler.New,
	userHandler.New,
	viewHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
