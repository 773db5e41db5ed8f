package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httputil"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/parleychat/parley-go/pkg/parley/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceAttributeMethod string = "http-method"
	TraceAttributePath   string = "request-path"
)

var tracer = otel.Tracer("parley-transport")

func Token(token string) func(*httpTransport) {
	return func(t *httpTransport) {
		t.token = token
	}
}

func Debug(enabled string) func(*httpTransport) {
	return func(t *httpTransport) {
		t.debug = (enabled == "true")
	}
}

func Logger(logger zerolog.Logger) func(*httpTransport) {
	return func(t *httpTransport) {
		t.log = logger
	}
}

// Retries sets the maximum number of attempts per request. Zero keeps the
// default, it does not disable the bound.
func Retries(maxTries uint) func(*httpTransport) {
	return func(t *httpTransport) {
		if maxTries > 0 {
			t.maxTries = maxTries
		}
	}
}

// New returns a Transport speaking JSON over HTTP against the given API base
// URL. Server errors and rate limiting are retried with exponential backoff;
// every other failure is terminal.
func New(baseURL string, options ...func(*httpTransport)) Transport {
	t := &httpTransport{
		baseURL:  baseURL,
		maxTries: 3,
		log:      zerolog.Nop(),
		client: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache: map[string]cacheEntry{},
	}

	for _, option := range options {
		option(t)
	}

	return t
}

type cacheEntry struct {
	payload Payload
	expires time.Time
}

type httpTransport struct {
	baseURL  string
	token    string
	debug    bool
	maxTries uint
	log      zerolog.Logger
	client   http.Client

	cacheMu sync.Mutex
	cache   map[string]cacheEntry
}

func (t *httpTransport) Get(ctx context.Context, path string, opts ...RequestOption) (Payload, error) {
	ro := NewRequestOptions(opts)

	if ro.CacheTTL > 0 {
		if cached, ok := t.fromCache(path); ok {
			return cached, nil
		}
	}

	payload, err := t.roundTrip(ctx, http.MethodGet, path, nil, ro)
	if err != nil {
		return nil, err
	}

	if ro.CacheTTL > 0 {
		t.storeInCache(path, payload, ro.CacheTTL)
	}

	return payload, nil
}

func (t *httpTransport) Post(ctx context.Context, path string, body Payload, opts ...RequestOption) (Payload, error) {
	return t.roundTrip(ctx, http.MethodPost, path, body, NewRequestOptions(opts))
}

func (t *httpTransport) Put(ctx context.Context, path string, body Payload, opts ...RequestOption) (Payload, error) {
	return t.roundTrip(ctx, http.MethodPut, path, body, NewRequestOptions(opts))
}

func (t *httpTransport) Patch(ctx context.Context, path string, body Payload, opts ...RequestOption) (Payload, error) {
	return t.roundTrip(ctx, http.MethodPatch, path, body, NewRequestOptions(opts))
}

func (t *httpTransport) Delete(ctx context.Context, path string, opts ...RequestOption) (Payload, error) {
	return t.roundTrip(ctx, http.MethodDelete, path, nil, NewRequestOptions(opts))
}

func (t *httpTransport) SendFile(ctx context.Context, path, filepath, filename string, opts ...FileOption) (Payload, error) {
	var err error

	ctx, span := tracer.Start(ctx, "send-file",
		trace.WithAttributes(attribute.String(TraceAttributePath, path)),
	)
	defer func() { recordAnyErrorAndEndSpan(err, span) }()

	fo := &FileOptions{}
	for _, opt := range opts {
		opt(fo)
	}

	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath, err)
	}
	defer file.Close()

	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(part, file); err != nil {
		return nil, err
	}

	if fo.Content != "" {
		form.WriteField("content", fo.Content)
	}
	if fo.TTS {
		form.WriteField("tts", "true")
	}

	if err = form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/"+path, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())
	t.decorate(req, nil)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.NewTransportError(resp.StatusCode, respBody)
		return nil, err
	}

	return decodeBody(respBody)
}

func (t *httpTransport) roundTrip(ctx context.Context, method, path string, body Payload, ro *RequestOptions) (Payload, error) {
	var err error

	ctx, span := tracer.Start(ctx, "call-remote",
		trace.WithAttributes(attribute.String(TraceAttributeMethod, method)),
		trace.WithAttributes(attribute.String(TraceAttributePath, path)),
	)
	defer func() { recordAnyErrorAndEndSpan(err, span) }()

	var encoded []byte
	if body != nil {
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	operation := func() ([]byte, error) {
		var reader io.Reader
		if encoded != nil {
			reader = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, t.baseURL+"/"+path, reader)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		if encoded != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		t.decorate(req, ro.Headers)

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, errors.NewTransportError(resp.StatusCode, respBody)
		}

		if resp.StatusCode >= http.StatusBadRequest {
			if t.debug {
				reqbytes, _ := httputil.DumpRequest(req, false)
				respbytes, _ := httputil.DumpResponse(resp, false)
				t.log.Error().Str("request", string(reqbytes)).Str("response", string(respbytes)).Msg("request failed")
			}

			return nil, backoff.Permanent(errors.NewTransportError(resp.StatusCode, respBody))
		}

		return respBody, nil
	}

	respBody, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(t.maxTries),
	)
	if err != nil {
		return nil, err
	}

	return decodeBody(respBody)
}

func (t *httpTransport) decorate(req *http.Request, headers map[string][]string) {
	req.Header.Set("X-Request-Id", uuid.NewString())
	if t.token != "" {
		req.Header.Set("Authorization", "Bot "+t.token)
	}

	for header, headerValue := range headers {
		for _, val := range headerValue {
			req.Header.Add(header, val)
		}
	}
}

func (t *httpTransport) fromCache(path string) (Payload, bool) {
	t.cacheMu.Lock()
	defer t.cacheMu.Unlock()

	entry, ok := t.cache[path]
	if !ok || time.Now().After(entry.expires) {
		delete(t.cache, path)
		return nil, false
	}

	return entry.payload, true
}

func (t *httpTransport) storeInCache(path string, payload Payload, ttl time.Duration) {
	t.cacheMu.Lock()
	defer t.cacheMu.Unlock()

	t.cache[path] = cacheEntry{payload: payload, expires: time.Now().Add(ttl)}
}

// ItemsKey is where a JSON array response ends up in the returned Payload,
// since Payload itself is always an object.
const ItemsKey = "items"

func decodeBody(body []byte) (Payload, error) {
	if len(body) == 0 {
		return Payload{}, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	switch v := decoded.(type) {
	case map[string]any:
		return Payload(v), nil
	case []any:
		return Payload{ItemsKey: v}, nil
	default:
		return Payload{"value": v}, nil
	}
}

// Items unwraps an array response into one Payload per element.
func Items(p Payload) []Payload {
	arr, ok := p[ItemsKey].([]any)
	if !ok {
		return nil
	}

	items := make([]Payload, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			items = append(items, Payload(obj))
		}
	}
	return items
}

func recordAnyErrorAndEndSpan(err error, span trace.Span) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
