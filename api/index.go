package handler

import (
	"net/http"
	"os"
	"sync"

	"vietour/config"
	"vietour/di"
	"vietour/shared/logger"
	"vietour/shared/money"
)

var (
	server http.Handler
	once   sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetOutput(cfg, os.Stdout)

		logger.SetLogLevel(cfg)

		money.SetLocale(cfg.App.Locale)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
