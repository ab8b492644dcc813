package di

import (
	"context"
	"time"

	"vietour/config"
	"vietour/infras/kafka"
	"vietour/infras/otel"
	"vietour/infras/postgres"
	"vietour/infras/upstream"
	"vietour/transport/http"
	"vietour/transport/http/middleware"
	"vietour/transport/http/router"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const ratesUpstreamName = "exchange-rates"

// NewRatesExecutor calls the exchange rate API with the configured key as bearer token.
func NewRatesExecutor(cfg *config.Config) upstream.Executor {
	rates := cfg.External.Rates

	return upstream.New(upstream.Options{
		Name:        ratesUpstreamName,
		BaseURL:     rates.BaseURL,
		Timeout:     time.Duration(rates.TimeoutSeconds) * time.Second,
		Credentials: upstream.StaticToken(rates.APIKey),
		OnReauth: func(_ context.Context, name string) {
			log.Error().Str("upstream", name).Msg("upstream rejected the API key, rotate EXTERNAL_RATES_API_KEY")
		},
	})
}

// NewServer builds the HTTP server and hands it the resources to release on shutdown.
func NewServer(
	cfg *config.Config,
	r router.Router,
	appMiddleware middleware.AppMiddleware,
	ot otel.Otel,
	events kafka.Client,
	db *postgres.Connection,
	redisClient *goRedis.Client,
) *http.HTTP {
	server := http.New(cfg, r, appMiddleware)

	server.OnShutdown(
		func(context.Context) error { return events.Close() },
		func(context.Context) error { return redisClient.Close() },
		func(context.Context) error { return db.Close() },
		ot.Shutdown,
	)

	return server
}
