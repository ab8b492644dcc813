package repository_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"vietour/config"
	"vietour/infras/otel/mocks"
	"vietour/infras/upstream"
	upstreamMocks "vietour/infras/upstream/mocks"
	"vietour/internal/domains/currency/model"
	"vietour/internal/domains/currency/repository"
	"vietour/shared/cache"
	cacheMocks "vietour/shared/cache/mocks"
	"vietour/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const snapshotTTL = 900

func respond(body string) func(context.Context, upstream.Request, any) error {
	return func(_ context.Context, req upstream.Request, out any) error {
		if req.Path != "latest/USD" {
			return fmt.Errorf("unexpected path %s", req.Path)
		}

		return jsonInto(body, out)
	}
}

func newSource(t *testing.T) (repository.RateSource, *upstreamMocks.MockExecutor, *cacheMocks.MockCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	executor := upstreamMocks.NewMockExecutor(ctrl)
	mockCache := cacheMocks.NewMockCache(ctrl)

	cfg := &config.Config{}
	cfg.External.Rates.SnapshotTTLSeconds = snapshotTTL

	return repository.New(executor, mockCache, cfg, mocks.NewOtel()), executor, mockCache
}

const usdRates = `{
	"result": "success",
	"base_code": "USD",
	"time_last_update_unix": 1767225600,
	"conversion_rates": {"USD": 1, "VND": 24000, "EUR": 0.92, "BAD": 0}
}`

func TestGetRates_RealTime(t *testing.T) {
	source, executor, _ := newSource(t)

	executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond(usdRates))

	rates, err := source.GetRates(context.Background(), true, "usd")

	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.Equal(t, "EUR", rates[0].ToCurrency)
	assert.Equal(t, model.CurrencyRate{
		FromCurrency: "USD",
		ToCurrency:   "VND",
		Rate:         24000,
		LastUpdated:  time.Unix(1767225600, 0).UTC(),
	}, rates[2])
}

func TestGetRates_SnapshotHit(t *testing.T) {
	source, _, mockCache := newSource(t)

	mockCache.EXPECT().Get(gomock.Any(), "currency:rates:USD", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			rates, ok := value.(*[]model.CurrencyRate)
			require.True(t, ok)

			*rates = []model.CurrencyRate{{FromCurrency: "USD", ToCurrency: "VND", Rate: 24000}}

			return nil
		})

	rates, err := source.GetRates(context.Background(), false, "USD")

	require.NoError(t, err)
	assert.Len(t, rates, 1)
}

func TestGetRates_SnapshotMissRefreshes(t *testing.T) {
	source, executor, mockCache := newSource(t)

	mockCache.EXPECT().Get(gomock.Any(), "currency:rates:USD", gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
	executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond(usdRates))
	mockCache.EXPECT().Save(gomock.Any(), "currency:rates:USD", gomock.Any(), snapshotTTL).Return(nil)

	rates, err := source.GetRates(context.Background(), false, "USD")

	require.NoError(t, err)
	assert.Len(t, rates, 3)
}

func TestGetRates_ConcurrentMissesShareOneFetch(t *testing.T) {
	const callers = 5

	source, executor, mockCache := newSource(t)

	var arrived sync.WaitGroup

	arrived.Add(callers)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ any) error {
			arrived.Done()
			arrived.Wait()

			return cache.Nil
		}).Times(callers)

	release := make(chan struct{})

	executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req upstream.Request, out any) error {
			<-release

			return respond(usdRates)(ctx, req, out)
		}).Times(1)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var done sync.WaitGroup

	results := make([]int, callers)

	for i := range callers {
		done.Add(1)

		go func() {
			defer done.Done()

			rates, err := source.GetRates(context.Background(), false, "USD")
			if err == nil {
				results[i] = len(rates)
			}
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	done.Wait()

	for _, count := range results {
		assert.Equal(t, 3, count)
	}
}

func TestGetRates_UpstreamFailures(t *testing.T) {
	t.Run("unsuccessful result", func(t *testing.T) {
		source, executor, _ := newSource(t)

		executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(respond(`{"result":"error","error-type":"quota-reached"}`))

		_, err := source.GetRates(context.Background(), true, "USD")

		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
		assert.Equal(t, "quota-reached", err.Error())
	})

	t.Run("transport failure keeps the upstream status", func(t *testing.T) {
		source, executor, _ := newSource(t)

		executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.New(http.StatusUnauthorized, "invalid-key"))

		_, err := source.GetRates(context.Background(), true, "USD")

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func snapshotOf(rates ...model.CurrencyRate) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		out, ok := value.(*[]model.CurrencyRate)
		if !ok {
			return fmt.Errorf("unexpected target %T", value)
		}

		*out = rates

		return nil
	}
}

func TestGetPairRates(t *testing.T) {
	usdToVND := model.CurrencyRate{FromCurrency: "USD", ToCurrency: "VND", Rate: 24000}
	miss := fmt.Errorf("failed to get cache value: %w", cache.Nil)

	t.Run("direct snapshot answers first", func(t *testing.T) {
		source, _, mockCache := newSource(t)

		mockCache.EXPECT().Get(gomock.Any(), "currency:rates:USD", gomock.Any()).DoAndReturn(snapshotOf(usdToVND))

		rates, err := source.GetPairRates(context.Background(), false, "usd", "vnd")

		require.NoError(t, err)
		assert.Equal(t, []model.CurrencyRate{usdToVND}, rates)
	})

	t.Run("reverse snapshot is used before calling upstream", func(t *testing.T) {
		source, _, mockCache := newSource(t)

		mockCache.EXPECT().Get(gomock.Any(), "currency:rates:VND", gomock.Any()).Return(miss)
		mockCache.EXPECT().Get(gomock.Any(), "currency:rates:USD", gomock.Any()).DoAndReturn(snapshotOf(usdToVND))

		rates, err := source.GetPairRates(context.Background(), false, "VND", "USD")

		require.NoError(t, err)
		assert.Equal(t, []model.CurrencyRate{usdToVND}, rates)
	})

	t.Run("reverse snapshot without the pair falls back to refreshing", func(t *testing.T) {
		source, executor, mockCache := newSource(t)

		mockCache.EXPECT().Get(gomock.Any(), "currency:rates:USD", gomock.Any()).Return(miss)
		mockCache.EXPECT().Get(gomock.Any(), "currency:rates:VND", gomock.Any()).
			DoAndReturn(snapshotOf(model.CurrencyRate{FromCurrency: "VND", ToCurrency: "EUR", Rate: 0.00004}))
		executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond(usdRates))
		mockCache.EXPECT().Save(gomock.Any(), "currency:rates:USD", gomock.Any(), snapshotTTL).Return(nil)

		rates, err := source.GetPairRates(context.Background(), false, "USD", "VND")

		require.NoError(t, err)
		assert.Len(t, rates, 3)
	})

	t.Run("real time always calls upstream", func(t *testing.T) {
		source, executor, _ := newSource(t)

		executor.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond(usdRates))

		rates, err := source.GetPairRates(context.Background(), true, "USD", "VND")

		require.NoError(t, err)
		assert.Len(t, rates, 3)
	})
}
