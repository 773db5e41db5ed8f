package transport

import (
	"context"
	"strings"
	"time"
)

// Payload is the decoded JSON body of a request or response.
type Payload map[string]any

//go:generate moq -rm -out ../test/transport_mock.go -pkg test . Transport

// Transport performs the remote calls that the object model delegates to.
// Implementations own retry and rate-limit policy; callers treat every failure
// as terminal.
type Transport interface {
	Get(ctx context.Context, path string, opts ...RequestOption) (Payload, error)
	Post(ctx context.Context, path string, body Payload, opts ...RequestOption) (Payload, error)
	Put(ctx context.Context, path string, body Payload, opts ...RequestOption) (Payload, error)
	Patch(ctx context.Context, path string, body Payload, opts ...RequestOption) (Payload, error)
	Delete(ctx context.Context, path string, opts ...RequestOption) (Payload, error)

	SendFile(ctx context.Context, path, filepath, filename string, opts ...FileOption) (Payload, error)
}

type RequestOptions struct {
	Headers  map[string][]string
	CacheTTL time.Duration
}

type RequestOption func(*RequestOptions)

func WithHeader(name, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = map[string][]string{}
		}
		o.Headers[name] = append(o.Headers[name], value)
	}
}

// WithCacheTTL lets a GET be answered from the transport's response cache for
// the given duration. Zero disables caching for the request.
func WithCacheTTL(ttl time.Duration) RequestOption {
	return func(o *RequestOptions) {
		o.CacheTTL = ttl
	}
}

func NewRequestOptions(opts []RequestOption) *RequestOptions {
	ro := &RequestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}

type FileOptions struct {
	Content string
	TTS     bool
}

type FileOption func(*FileOptions)

// WithContent attaches a text body alongside the uploaded file.
func WithContent(content string) FileOption {
	return func(o *FileOptions) {
		o.Content = content
	}
}

func WithTTS() FileOption {
	return func(o *FileOptions) {
		o.TTS = true
	}
}

// ExpandPath substitutes {name} placeholders in a REST-style path template from
// the supplied values. Unknown placeholders are left untouched so that a bad
// template shows up verbatim in logs.
func ExpandPath(template string, values map[string]string) string {
	expanded := template
	for name, value := range values {
		expanded = strings.ReplaceAll(expanded, "{"+name+"}", value)
	}
	return expanded
}
