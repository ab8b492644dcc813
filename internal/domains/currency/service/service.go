package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vietour/config"
	"vietour/infras/metrics"
	"vietour/infras/otel"
	"vietour/internal/domains/currency/history"
	"vietour/internal/domains/currency/model"
	"vietour/internal/domains/currency/model/dto"
	"vietour/internal/domains/currency/repository"
	"vietour/shared/cache"
	"vietour/shared/constant"
	"vietour/shared/failure"
	"vietour/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	conversionFailed = "conversion failed"
	cacheHistory     = "currency:history"
)

type Currency interface {
	GetRates(ctx context.Context, realTime bool, base string) (dto.RatesResponse, error)
	Convert(ctx context.Context, req dto.ConvertRequest) (dto.ConvertResponse, error)
	History(ctx context.Context) (dto.HistoryResponse, error)
}

type serviceImpl struct {
	rates repository.RateSource
	cache cache.Cache
	cfg   *config.Config
	otel  otel.Otel

	// mu serializes the read-modify-write of a history entry within this process.
	mu sync.Mutex
}

func New(rates repository.RateSource, cache cache.Cache, cfg *config.Config, otel otel.Otel) Currency {
	return &serviceImpl{
		rates: rates,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) GetRates(ctx context.Context, realTime bool, base string) (res dto.RatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".currency.GetRates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	base = normalize(base)
	if base == constant.Empty {
		base = constant.DefaultValueCurrency
	}

	rates, err := s.rates.GetRates(ctx, realTime, base)
	if err != nil {
		log.Error().Err(err).Str("base", base).Bool("realTime", realTime).Msg("failed to get rates")

		return res, conversionError(err)
	}

	return dto.RatesResponse{Base: base, RealTime: realTime, Rates: rates}, nil
}

// Convert multiplies amount by the rate from req.From to req.To. Identical currencies
// need no lookup; a missing direct rate falls back to the inverse of the reverse rate.
// Only signed-in callers get the conversion added to their history.
func (s *serviceImpl) Convert(ctx context.Context, req dto.ConvertRequest) (res dto.ConvertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".currency.Convert")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			metrics.CurrencyConversionsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		}
	}()

	if req.Amount <= 0 {
		return res, failure.Validation("amount must be positive") //nolint:wrapcheck
	}

	from, to := normalize(req.From), normalize(req.To)

	rate := 1.0

	if from != to {
		rates, err := s.rates.GetPairRates(ctx, req.RealTime, from, to)
		if err != nil {
			log.Error().Err(err).Str("from", from).Str("to", to).Msg("failed to look up conversion rate")

			return res, conversionError(err)
		}

		var found bool

		rate, found = Resolve(rates, from, to)
		if !found {
			log.Warn().Str("from", from).Str("to", to).Msg("no conversion rate available")

			return res, failure.Conversion(conversionFailed) //nolint:wrapcheck
		}
	}

	record := model.ConversionRecord{
		From:      from,
		To:        to,
		Amount:    req.Amount,
		Result:    req.Amount * rate,
		Rate:      rate,
		Timestamp: timezone.Now(),
		RealTime:  req.RealTime,
	}

	if from == to {
		record.Result = req.Amount
	}

	s.remember(ctx, record)
	metrics.CurrencyConversionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	res.FromModel(record)

	return res, nil
}

// History lists the caller's latest conversions, newest first. Anonymous callers have none.
func (s *serviceImpl) History(ctx context.Context) (res dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".currency.History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, ok := historyOwner(ctx)
	if !ok {
		res.FromModels(nil)

		return res, nil
	}

	ring, err := s.loadHistory(ctx, userID)
	if err != nil {
		return res, failure.Persistence(err) //nolint:wrapcheck
	}

	res.FromModels(ring.Records())

	return res, nil
}

// remember pushes record onto the caller's ring and stores it back with a fresh TTL, so
// idle users' histories expire. Failures are logged; the conversion itself already succeeded.
func (s *serviceImpl) remember(ctx context.Context, record model.ConversionRecord) {
	userID, ok := historyOwner(ctx)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ring, err := s.loadHistory(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to load conversion history")

		return
	}

	ring.Push(record)

	cacheKey := cache.BuildCacheKey(cacheHistory, userID)
	if err := s.cache.Save(ctx, cacheKey, ring.Records(), s.cfg.App.Currency.HistoryTTLSeconds); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to save conversion history")
	}
}

func (s *serviceImpl) loadHistory(ctx context.Context, userID string) (*history.Ring, error) {
	var records []model.ConversionRecord

	err := s.cache.Get(ctx, cache.BuildCacheKey(cacheHistory, userID), &records)
	if err != nil && !errors.Is(err, cache.Nil) {
		return nil, err //nolint:wrapcheck
	}

	return history.FromRecords(records), nil
}

// Resolve prefers a rate quoted from -> to and otherwise derives it from a to -> from quote.
func Resolve(rates []model.CurrencyRate, from, to string) (float64, bool) {
	for _, rate := range rates {
		if rate.FromCurrency == from && rate.ToCurrency == to && rate.Rate > 0 {
			return rate.Rate, true
		}
	}

	for _, rate := range rates {
		if rate.FromCurrency == to && rate.ToCurrency == from && rate.Rate > 0 {
			return 1 / rate.Rate, true
		}
	}

	return 0, false
}

func conversionError(err error) error {
	var fail *failure.Failure
	if errors.As(err, &fail) && fail.Message != constant.Empty {
		return failure.Conversion(fail.Message) //nolint:wrapcheck
	}

	return failure.Conversion(conversionFailed) //nolint:wrapcheck
}

func historyOwner(ctx context.Context) (string, bool) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return userID, userID != constant.Empty
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
