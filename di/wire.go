//go:build wireinject
// +build wireinject

package di

import (
	"vietour/config"
	"vietour/infras/jwt"
	"vietour/infras/kafka"
	"vietour/infras/otel"
	"vietour/infras/postgres"
	"vietour/infras/redis"
	"vietour/permissions"
	"vietour/shared/cache"
	"vietour/transport/http"
	"vietour/transport/http/middleware"
	"vietour/transport/http/router"

	bookingRepository "vietour/internal/domains/booking/repository"
	bookingService "vietour/internal/domains/booking/service"
	currencyRepository "vietour/internal/domains/currency/repository"
	currencyService "vietour/internal/domains/currency/service"
	tourGuideRepository "vietour/internal/domains/tourguide/repository"
	bookingHandler "vietour/internal/handlers/booking"
	currencyHandler "vietour/internal/handlers/currency"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	NewRatesExecutor,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
)

var bookingDomain = wire.NewSet(
	tourGuideRepository.New,
	bookingRepository.New,
	bookingService.New,
)

var currencyDomain = wire.NewSet(
	currencyRepository.New,
	currencyService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	currencyDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	currencyHandler.New,
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
		NewServer,
	)

	return &http.HTTP{}
}
