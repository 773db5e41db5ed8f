// Package httpmock provides mock remote services for transport level tests,
// either as a single endpoint with request expectations or as a routed fake API.
package httpmock

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

type MockService struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func (s *MockService) URL() string {
	return s.server.URL
}

func (s *MockService) Close() {
	s.server.Close()
}

func (s *MockService) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *MockService) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]RecordedRequest, len(s.requests))
	copy(requests, s.requests)
	return requests
}

func (s *MockService) record(r *http.Request, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
	})
}

type RequestExpectation func(*is.I, *http.Request, []byte)

type expectations struct {
	is    *is.I
	check []RequestExpectation
}

func Expects(is *is.I, check ...RequestExpectation) expectations {
	return expectations{is: is, check: check}
}

func AnyInput() RequestExpectation {
	return func(*is.I, *http.Request, []byte) {}
}

func RequestMethod(method string) RequestExpectation {
	return func(is *is.I, r *http.Request, _ []byte) {
		is.Equal(r.Method, method) // request method should match
	}
}

func RequestPath(path string) RequestExpectation {
	return func(is *is.I, r *http.Request, _ []byte) {
		is.Equal(r.URL.Path, path) // request path should match
	}
}

func RequestBody(body string) RequestExpectation {
	return func(is *is.I, _ *http.Request, b []byte) {
		is.Equal(string(b), body) // request body should match
	}
}

func QueryParam(name, value string) RequestExpectation {
	return func(is *is.I, r *http.Request, _ []byte) {
		is.Equal(r.URL.Query().Get(name), value) // query parameter should match
	}
}

type canned struct {
	status  int
	headers map[string]string
	body    []byte
}

type ResponseDecorator func(*canned)

type response struct {
	decorate []ResponseDecorator
}

func Returns(decorate ...ResponseDecorator) response {
	return response{decorate: decorate}
}

func Code(status int) ResponseDecorator {
	return func(c *canned) { c.status = status }
}

func ContentType(contentType string) ResponseDecorator {
	return func(c *canned) { c.headers["Content-Type"] = contentType }
}

func Body(body []byte) ResponseDecorator {
	return func(c *canned) { c.body = body }
}

func (r response) write(w http.ResponseWriter) {
	c := &canned{status: http.StatusOK, headers: map[string]string{}}
	for _, decorate := range r.decorate {
		decorate(c)
	}

	for name, value := range c.headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(c.status)
	w.Write(c.body)
}

// NewMockServiceThat serves every request from the same expectation set and
// canned response.
func NewMockServiceThat(expects expectations, returns response) *MockService {
	s := &MockService{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.record(r, body)

		for _, check := range expects.check {
			check(expects.is, r, body)
		}

		returns.write(w)
	}))
	return s
}

type Route struct {
	Method  string
	Pattern string
	Returns response
}

// NewRoutedService serves a fake API with one canned response per route.
// Unmatched requests get a 404 so that a wrong path fails loudly in tests.
func NewRoutedService(routes ...Route) *MockService {
	s := &MockService{}

	router := chi.NewRouter()
	for _, route := range routes {
		returns := route.Returns
		router.MethodFunc(route.Method, route.Pattern, func(w http.ResponseWriter, r *http.Request) {
			returns.write(w)
		})
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.record(r, body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		router.ServeHTTP(w, r)
	}))

	return s
}
