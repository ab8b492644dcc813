package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"vietour/config"
	"vietour/infras/otel"
	"vietour/infras/upstream"
	"vietour/internal/domains/currency/model"
	"vietour/shared/cache"
	"vietour/shared/constant"
	"vietour/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	cacheRateSnapshot = "currency:rates"
	resultSuccess     = "success"
)

// RateSource answers rate lookups. Live lookups always call the rate API; snapshot lookups
// are served from a cached copy that is refreshed once it expires.
type RateSource interface {
	GetRates(ctx context.Context, realTime bool, base string) ([]model.CurrencyRate, error)
	// GetPairRates returns rates that quote from -> to, or to -> from when only the reverse
	// direction is in a snapshot.
	GetPairRates(ctx context.Context, realTime bool, from, to string) ([]model.CurrencyRate, error)
}

type latestRatesResponse struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	BaseCode           string             `json:"base_code"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
}

type rateSourceImpl struct {
	executor upstream.Executor
	cache    cache.Cache
	cfg      *config.Config
	otel     otel.Otel
	group    singleflight.Group
}

func New(executor upstream.Executor, cache cache.Cache, cfg *config.Config, otel otel.Otel) RateSource {
	return &rateSourceImpl{
		executor: executor,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

func (r *rateSourceImpl) GetRates(ctx context.Context, realTime bool, base string) (rates []model.CurrencyRate, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".currency.GetRates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	base = normalize(base)
	scope.SetAttributes(map[string]any{"base": base, "real_time": realTime})

	if realTime {
		return r.fetch(ctx, base)
	}

	return r.snapshot(ctx, base)
}

func (r *rateSourceImpl) GetPairRates(ctx context.Context, realTime bool, from, to string) (rates []model.CurrencyRate, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".currency.GetPairRates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to = normalize(from), normalize(to)
	scope.SetAttributes(map[string]any{"from": from, "to": to, "real_time": realTime})

	if realTime {
		return r.fetch(ctx, from)
	}

	fromRates, fromCached := r.cached(ctx, from)
	if fromCached && quotes(fromRates, from, to) {
		return fromRates, nil
	}

	if toRates, ok := r.cached(ctx, to); ok && quotes(toRates, to, from) {
		log.Debug().Str("from", from).Str("to", to).Msg("serving pair from the reverse snapshot")

		return toRates, nil
	}

	if fromCached {
		return fromRates, nil
	}

	return r.refresh(ctx, from)
}

func (r *rateSourceImpl) snapshot(ctx context.Context, base string) ([]model.CurrencyRate, error) {
	if rates, ok := r.cached(ctx, base); ok {
		return rates, nil
	}

	return r.refresh(ctx, base)
}

// cached reads the snapshot for base without touching the rate API.
func (r *rateSourceImpl) cached(ctx context.Context, base string) ([]model.CurrencyRate, bool) {
	cacheKey := cache.BuildCacheKey(cacheRateSnapshot, base)

	var rates []model.CurrencyRate

	err := r.cache.Get(ctx, cacheKey, &rates)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("rate snapshot unreadable")
	}

	return rates, err == nil && len(rates) > 0
}

func (r *rateSourceImpl) refresh(ctx context.Context, base string) ([]model.CurrencyRate, error) {
	cacheKey := cache.BuildCacheKey(cacheRateSnapshot, base)

	// Concurrent misses for one base share a single upstream call.
	result, err, shared := r.group.Do(base, func() (any, error) {
		c := context.WithoutCancel(ctx)

		fresh, err := r.fetch(c, base)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Save(c, cacheKey, fresh, r.cfg.External.Rates.SnapshotTTLSeconds); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save rate snapshot")
		}

		return fresh, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Debug().Str("base", base).Bool("shared", shared).Msg("rate snapshot refreshed")

	return result.([]model.CurrencyRate), nil //nolint:forcetypeassert
}

func (r *rateSourceImpl) fetch(ctx context.Context, base string) ([]model.CurrencyRate, error) {
	var body latestRatesResponse

	err := r.executor.Do(ctx, upstream.Request{
		Method: http.MethodGet,
		Path:   "latest/" + base,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s rates: %w", base, err)
	}

	if body.Result != resultSuccess {
		message := body.ErrorType
		if message == "" {
			message = "rate API returned an unsuccessful result"
		}

		return nil, failure.New(http.StatusBadGateway, message) //nolint:wrapcheck
	}

	return toRates(body), nil
}

func toRates(body latestRatesResponse) []model.CurrencyRate {
	updated := time.Unix(body.TimeLastUpdateUnix, 0).UTC()
	from := strings.ToUpper(body.BaseCode)

	rates := make([]model.CurrencyRate, 0, len(body.ConversionRates))

	for to, rate := range body.ConversionRates {
		if rate <= 0 {
			continue
		}

		rates = append(rates, model.CurrencyRate{
			FromCurrency: from,
			ToCurrency:   strings.ToUpper(to),
			Rate:         rate,
			LastUpdated:  updated,
		})
	}

	slices.SortFunc(rates, func(a, b model.CurrencyRate) int {
		return strings.Compare(a.ToCurrency, b.ToCurrency)
	})

	return rates
}

func quotes(rates []model.CurrencyRate, from, to string) bool {
	return slices.ContainsFunc(rates, func(rate model.CurrencyRate) bool {
		return rate.FromCurrency == from && rate.ToCurrency == to && rate.Rate > 0
	})
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
