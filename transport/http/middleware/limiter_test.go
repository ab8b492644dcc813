package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"vietour/config"
	"vietour/infras/otel/mocks"
	"vietour/shared/cache"
	cacheMocks "vietour/shared/cache/mocks"
	"vietour/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const limiterKey = "limiter:203.0.113.7:test-agent"

func newLimited(t *testing.T) (http.Handler, *cacheMocks.MockCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache)

	handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	return handler, mockCache
}

func limitedRequest() *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/v1/currency/rates", nil)
	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	request.Header.Set("User-Agent", "test-agent")

	return request
}

func storedCount(count int) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*value.(*int) = count

		return nil
	}
}

func TestRateLimit_FirstRequest(t *testing.T) {
	handler, mockCache := newLimited(t)

	mockCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
	mockCache.EXPECT().Save(gomock.Any(), limiterKey, 1, 60).Return(nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, limitedRequest())

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_Exceeded(t *testing.T) {
	handler, mockCache := newLimited(t)

	mockCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).DoAndReturn(storedCount(2))
	mockCache.EXPECT().Save(gomock.Any(), limiterKey, 3, 60).Return(nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, limitedRequest())

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestRateLimit_CacheDown(t *testing.T) {
	handler, mockCache := newLimited(t)

	mockCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).Return(errors.New("dial tcp: connection refused"))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, limitedRequest())

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Header().Get("X-RateLimit-Limit"))
}
