package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"vietour/infras/upstream"
	"vietour/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratesBody struct {
	Result string `json:"result"`
}

func newExecutor(server *httptest.Server, onReauth upstream.ReauthFunc) upstream.Executor {
	return upstream.New(upstream.Options{
		Name:        "rates",
		BaseURL:     server.URL + "/v6/",
		Timeout:     time.Second,
		Credentials: upstream.StaticToken("api-key"),
		OnReauth:    onReauth,
	})
}

func TestDo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		assert.Equal(t, "x", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	var out ratesBody

	err := newExecutor(server, nil).Do(context.Background(), upstream.Request{
		Path:  "latest/USD",
		Query: url.Values{"q": []string{"x"}},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "success", out.Result)
}

func TestDo_ErrorStatusBecomesFailure(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "json message",
			status:          http.StatusConflict,
			body:            `{"message":"Tour guide is already booked"}`,
			expectedMessage: "Tour guide is already booked",
		},
		{
			name:            "exchange api error type",
			status:          http.StatusNotFound,
			body:            `{"result":"error","error-type":"unsupported-code"}`,
			expectedMessage: "unsupported-code",
		},
		{
			name:            "plain text body",
			status:          http.StatusInternalServerError,
			body:            "database is down",
			expectedMessage: "database is down",
		},
		{
			name:            "empty body",
			status:          http.StatusBadRequest,
			body:            "",
			expectedMessage: "Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newExecutor(server, nil).Do(context.Background(), upstream.Request{Path: "x"}, nil)

			var fail *failure.Failure
			require.True(t, errors.As(err, &fail))
			assert.Equal(t, tt.status, fail.Code)
			assert.Equal(t, tt.expectedMessage, fail.Message)
		})
	}
}

func TestDo_UnauthorizedTriggersReauth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer server.Close()

	calls := 0
	executor := newExecutor(server, func(_ context.Context, name string) {
		calls++

		assert.Equal(t, "rates", name)
	})

	err := executor.Do(context.Background(), upstream.Request{Path: "x"}, nil)

	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	assert.Equal(t, "token expired", err.Error())
	assert.Equal(t, 1, calls)
}

func TestDo_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	err := newExecutor(server, nil).Do(context.Background(), upstream.Request{Path: "x"}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestDo_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	var out ratesBody

	err := newExecutor(server, nil).Do(context.Background(), upstream.Request{Path: "x"}, &out)

	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
}
