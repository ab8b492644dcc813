package upstream

//go:generate go run go.uber.org/mock/mockgen -source=./upstream.go -destination=./mocks/upstream_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vietour/infras/metrics"
	"vietour/shared/constant"
	"vietour/shared/failure"

	"github.com/rs/zerolog/log"
)

const maxErrorBodyBytes = 4 << 10

// Credentials supplies the bearer token attached to every upstream call.
type Credentials interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed API key used as a bearer token.
type StaticToken string

func (s StaticToken) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// ReauthFunc is invoked once per 401 answer. The failed request is not retried.
type ReauthFunc func(ctx context.Context, name string)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type Executor interface {
	Do(ctx context.Context, req Request, out any) error
}

type Options struct {
	Name        string
	BaseURL     string
	Timeout     time.Duration
	Credentials Credentials
	OnReauth    ReauthFunc
	Client      *http.Client
}

type executorImpl struct {
	name        string
	baseURL     string
	client      *http.Client
	credentials Credentials
	onReauth    ReauthFunc
}

func New(opts Options) Executor {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &executorImpl{
		name:        opts.Name,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		client:      client,
		credentials: opts.Credentials,
		onReauth:    opts.OnReauth,
	}
}

// Do sends req and decodes a 2xx JSON answer into out. Any other status becomes a
// *failure.Failure carrying the upstream status code and message.
func (e *executorImpl) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := e.newRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()

	resp, err := e.client.Do(httpReq)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(e.name, "error").Observe(time.Since(start).Seconds())
		log.Error().Err(err).Str("upstream", e.name).Str("path", req.Path).Msg("Upstream request failed")

		return failure.New(http.StatusServiceUnavailable, fmt.Sprintf("%s unreachable: %v", e.name, err))
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestDuration.WithLabelValues(e.name, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if resp.StatusCode == http.StatusUnauthorized && e.onReauth != nil {
			e.onReauth(ctx, e.name)
		}

		return failure.New(resp.StatusCode, readErrorMessage(resp))
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		log.Error().Err(err).Str("upstream", e.name).Str("path", req.Path).Msg("Failed to decode upstream response")

		return failure.New(http.StatusBadGateway, fmt.Sprintf("invalid response from %s", e.name))
	}

	return nil
}

func (e *executorImpl) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := e.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal upstream request body: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if body != nil {
		httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if e.credentials != nil {
		token, err := e.credentials.Token(ctx)
		if err != nil {
			return nil, failure.Unauthorized(fmt.Sprintf("%s credentials unavailable: %v", e.name, err))
		}

		if token != "" {
			httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
		}
	}

	return httpReq, nil
}

// readErrorMessage picks the first non-empty message field of a JSON error body, or the
// trimmed body itself, or the status text.
func readErrorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var body struct {
		Message   string `json:"message"`
		Error     string `json:"error"`
		ErrorType string `json:"error-type"`
	}

	if json.Unmarshal(raw, &body) == nil {
		for _, msg := range []string{body.Message, body.Error, body.ErrorType} {
			if msg != "" {
				return msg
			}
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}

	return http.StatusText(resp.StatusCode)
}
