package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"vietour/config"
	"vietour/infras/otel/mocks"
	"vietour/infras/upstream"
	upstreamMocks "vietour/infras/upstream/mocks"
	currencyMocks "vietour/internal/domains/currency/mocks"
	"vietour/internal/domains/currency/model"
	"vietour/internal/domains/currency/model/dto"
	"vietour/internal/domains/currency/repository"
	"vietour/internal/domains/currency/service"
	"vietour/shared/cache"
	cacheMocks "vietour/shared/cache/mocks"
	"vietour/shared/constant"
	"vietour/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const historyTTL = 3600

type fixture struct {
	service service.Currency
	rates   *currencyMocks.MockRateSource
	store   *memoryStore
}

// memoryStore backs a MockCache with a map so stored values survive between calls.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]int
}

func newMemoryCache(ctrl *gomock.Controller) (*cacheMocks.MockCache, *memoryStore) {
	store := &memoryStore{entries: map[string][]byte{}, ttls: map[string]int{}}
	mockCache := cacheMocks.NewMockCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any) error {
			store.mu.Lock()
			defer store.mu.Unlock()

			payload, ok := store.entries[key]
			if !ok {
				return fmt.Errorf("failed to get cache value: %w", cache.Nil)
			}

			return json.Unmarshal(payload, value)
		}).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, ttlSeconds int) error {
			payload, err := json.Marshal(value)
			if err != nil {
				return err
			}

			store.mu.Lock()
			defer store.mu.Unlock()

			store.entries[key] = payload
			store.ttls[key] = ttlSeconds

			return nil
		}).AnyTimes()

	return mockCache, store
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}

	return keys
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Currency.HistoryTTLSeconds = historyTTL
	cfg.External.Rates.SnapshotTTLSeconds = 900

	return cfg
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	rates := currencyMocks.NewMockRateSource(ctrl)
	mockCache, store := newMemoryCache(ctrl)

	return &fixture{
		service: service.New(rates, mockCache, newConfig(), mocks.NewOtel()),
		rates:   rates,
		store:   store,
	}
}

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func usdRates() []model.CurrencyRate {
	return []model.CurrencyRate{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: 0.92},
		{FromCurrency: "USD", ToCurrency: "VND", Rate: 24000},
	}
}

func TestConvert_USDToVND(t *testing.T) {
	f := newFixture(t)
	ctx := userContext("user-1")

	f.rates.EXPECT().GetPairRates(gomock.Any(), false, "USD", "VND").Return(usdRates(), nil)

	res, err := f.service.Convert(ctx, dto.ConvertRequest{From: "USD", To: "VND", Amount: 100})

	require.NoError(t, err)
	assert.InDelta(t, 2400000.0, res.Result, 1e-6)
	assert.InDelta(t, 24000.0, res.Rate, 1e-9)
	assert.Contains(t, res.FormattedResult, "2,400,000")

	history, err := f.service.History(ctx)

	require.NoError(t, err)
	require.Len(t, history.Records, 1)
	assert.Equal(t, "USD", history.Records[0].From)
	assert.Equal(t, "VND", history.Records[0].To)
	assert.InDelta(t, 2400000.0, history.Records[0].Result, 1e-6)
	assert.False(t, history.Records[0].RealTime)
	assert.Equal(t, historyTTL, f.store.ttls["currency:history:user-1"])
}

func TestConvert_SameCurrencySkipsLookup(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Convert(context.Background(), dto.ConvertRequest{From: "eur", To: "EUR", Amount: 42.5, RealTime: true})

	require.NoError(t, err)
	assert.Equal(t, 42.5, res.Result)
	assert.Equal(t, 1.0, res.Rate)
	assert.Equal(t, "EUR", res.From)
}

func TestConvert_InverseRate(t *testing.T) {
	f := newFixture(t)

	f.rates.EXPECT().GetPairRates(gomock.Any(), true, "VND", "USD").Return([]model.CurrencyRate{
		{FromCurrency: "USD", ToCurrency: "VND", Rate: 24000},
	}, nil)

	res, err := f.service.Convert(context.Background(), dto.ConvertRequest{From: "VND", To: "USD", Amount: 24000, RealTime: true})

	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Result, 1e-9)
	assert.InDelta(t, 1.0/24000, res.Rate, 1e-12)
}

func TestConvert_Validation(t *testing.T) {
	for _, amount := range []float64{0, -5} {
		t.Run(fmt.Sprintf("amount %v", amount), func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Convert(context.Background(), dto.ConvertRequest{From: "USD", To: "VND", Amount: amount})

			require.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindValidation))
			assert.Equal(t, "amount must be positive", err.Error())
		})
	}
}

func TestConvert_ConversionErrors(t *testing.T) {
	tests := []struct {
		name    string
		rates   []model.CurrencyRate
		err     error
		message string
	}{
		{
			name:    "collaborator message is kept",
			err:     fmt.Errorf("fetch USD rates: %w", failure.New(http.StatusServiceUnavailable, "rates upstream unreachable")),
			message: "rates upstream unreachable",
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			message: "conversion failed",
		},
		{
			name:    "missing pair",
			rates:   usdRates(),
			message: "conversion failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := userContext("user-2")

			f.rates.EXPECT().GetPairRates(gomock.Any(), false, "USD", "JPY").Return(tt.rates, tt.err)

			_, err := f.service.Convert(ctx, dto.ConvertRequest{From: "USD", To: "JPY", Amount: 10})

			require.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindConversion))
			assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
			assert.Equal(t, tt.message, err.Error())

			history, _ := f.service.History(ctx)
			assert.Empty(t, history.Records)
		})
	}
}

func TestHistory_KeepsLatestTenPerUser(t *testing.T) {
	f := newFixture(t)
	alice := userContext("alice")
	bob := userContext("bob")

	for i := 1; i <= 12; i++ {
		_, err := f.service.Convert(alice, dto.ConvertRequest{From: "USD", To: "USD", Amount: float64(i)})
		require.NoError(t, err)
	}

	_, err := f.service.Convert(bob, dto.ConvertRequest{From: "VND", To: "VND", Amount: 7})
	require.NoError(t, err)

	history, err := f.service.History(alice)

	require.NoError(t, err)
	require.Len(t, history.Records, 10)
	assert.Equal(t, 12.0, history.Records[0].Amount)
	assert.Equal(t, 3.0, history.Records[9].Amount)

	history, err = f.service.History(bob)

	require.NoError(t, err)
	require.Len(t, history.Records, 1)
	assert.Equal(t, 7.0, history.Records[0].Amount)
}

func TestHistory_AnonymousCallersAreNotRecorded(t *testing.T) {
	f := newFixture(t)

	f.rates.EXPECT().GetPairRates(gomock.Any(), false, "EUR", "USD").
		Return([]model.CurrencyRate{{FromCurrency: "EUR", ToCurrency: "USD", Rate: 1.08}}, nil)

	_, err := f.service.Convert(context.Background(), dto.ConvertRequest{From: "EUR", To: "USD", Amount: 10})
	require.NoError(t, err)

	_, err = f.service.Convert(context.Background(), dto.ConvertRequest{From: "USD", To: "USD", Amount: 3})
	require.NoError(t, err)

	history, err := f.service.History(context.Background())

	require.NoError(t, err)
	assert.Empty(t, history.Records)
	assert.Empty(t, f.store.keys())
}

func TestHistory_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "currency:history:user-3", gomock.Any()).Return(errors.New("redis down"))

	svc := service.New(currencyMocks.NewMockRateSource(ctrl), mockCache, newConfig(), mocks.NewOtel())

	_, err := svc.History(userContext("user-3"))

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindPersistence))
}

func TestConvert_ReverseSnapshotAvoidsUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache, store := newMemoryCache(ctrl)
	executor := upstreamMocks.NewMockExecutor(ctrl)

	payload, err := json.Marshal([]model.CurrencyRate{{FromCurrency: "USD", ToCurrency: "VND", Rate: 24000}})
	require.NoError(t, err)

	store.entries["currency:rates:USD"] = payload

	executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req upstream.Request, _ any) error {
			t.Errorf("unexpected upstream call %s", req.Path)

			return failure.New(http.StatusServiceUnavailable, "exchange-rates unreachable")
		}).AnyTimes()

	cfg := newConfig()
	source := repository.New(executor, mockCache, cfg, mocks.NewOtel())
	svc := service.New(source, mockCache, cfg, mocks.NewOtel())

	res, err := svc.Convert(userContext("user-4"), dto.ConvertRequest{From: "VND", To: "USD", Amount: 48000})

	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Result, 1e-9)
	assert.InDelta(t, 1.0/24000, res.Rate, 1e-12)
}

func TestGetRates(t *testing.T) {
	t.Run("defaults base", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().GetRates(gomock.Any(), false, "USD").Return(usdRates(), nil)

		res, err := f.service.GetRates(context.Background(), false, " ")

		require.NoError(t, err)
		assert.Equal(t, "USD", res.Base)
		assert.Len(t, res.Rates, 2)
	})

	t.Run("failure becomes conversion error", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().GetRates(gomock.Any(), true, "EUR").Return(nil, failure.New(http.StatusUnauthorized, "invalid-key"))

		_, err := f.service.GetRates(context.Background(), true, "eur")

		require.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindConversion))
		assert.Equal(t, "invalid-key", err.Error())
	})
}

func TestResolve(t *testing.T) {
	rate, ok := service.Resolve(usdRates(), "EUR", "USD")

	assert.True(t, ok)
	assert.InDelta(t, 1/0.92, rate, 1e-12)

	_, ok = service.Resolve(usdRates(), "EUR", "VND")
	assert.False(t, ok)
}
