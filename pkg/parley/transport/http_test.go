package transport

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	parleyerrors "github.com/parleychat/parley-go/pkg/parley/errors"
	testutils "github.com/parleychat/parley-go/pkg/test/httpmock"

	"github.com/matryer/is"
	ispkg "github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = testutils.AnyInput
var method = testutils.RequestMethod
var reqpath = testutils.RequestPath
var reqbody = testutils.RequestBody

func TestGetDecodesObjectResponse(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodGet),
			reqpath("/channels/81384788765712384"),
		),
		Returns(
			testutils.ContentType("application/json"),
			testutils.Code(http.StatusOK),
			testutils.Body([]byte(`{"id":"81384788765712384","name":"general"}`)),
		),
	)
	defer s.Close()

	tr := New(s.URL())

	payload, err := tr.Get(context.Background(), "channels/81384788765712384")

	is.NoErr(err)
	is.Equal(payload["name"], "general")
}

func TestArrayResponsesAreWrappedAsItems(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			testutils.Code(http.StatusOK),
			testutils.Body([]byte(`[{"id":"1"},{"id":"2"}]`)),
		),
	)
	defer s.Close()

	tr := New(s.URL())

	payload, err := tr.Get(context.Background(), "channels/1/messages")

	is.NoErr(err)
	items := Items(payload)
	is.Equal(len(items), 2)
	is.Equal(items[1]["id"], "2")
}

func TestPostSendsTokenAndBody(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodPost),
			reqbody(`{"content":"hello"}`),
			func(is *ispkg.I, r *http.Request, _ []byte) {
				is.Equal(r.Header.Get("Authorization"), "Bot s3cr3t")
				is.True(r.Header.Get("X-Request-Id") != "")
			},
		),
		Returns(testutils.Code(http.StatusOK), testutils.Body([]byte(`{"id":"99"}`))),
	)
	defer s.Close()

	tr := New(s.URL(), Token("s3cr3t"))

	payload, err := tr.Post(context.Background(), "channels/1/messages", Payload{"content": "hello"})

	is.NoErr(err)
	is.Equal(payload["id"], "99")
}

func TestClientErrorsAreTerminal(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			testutils.Code(http.StatusForbidden),
			testutils.Body([]byte(`{"code":50013,"message":"Missing Permissions"}`)),
		),
	)
	defer s.Close()

	tr := New(s.URL(), Retries(3))

	_, err := tr.Get(context.Background(), "channels/1")

	is.True(errors.Is(err, parleyerrors.ErrTransport))
	is.Equal(s.RequestCount(), 1) // 4xx must not be retried
}

func TestServerErrorsAreRetried(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(testutils.Code(http.StatusBadGateway)),
	)
	defer s.Close()

	tr := New(s.URL(), Retries(2))

	_, err := tr.Get(context.Background(), "channels/1")

	is.True(errors.Is(err, parleyerrors.ErrTransport))
	is.Equal(s.RequestCount(), 2)
}

func TestCachedGetOnlyHitsRemoteOnce(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(testutils.Code(http.StatusOK), testutils.Body([]byte(`{"id":"1"}`))),
	)
	defer s.Close()

	tr := New(s.URL())

	_, err := tr.Get(context.Background(), "channels/1", WithCacheTTL(time.Minute))
	is.NoErr(err)

	payload, err := tr.Get(context.Background(), "channels/1", WithCacheTTL(time.Minute))
	is.NoErr(err)
	is.Equal(payload["id"], "1")
	is.Equal(s.RequestCount(), 1)
}

func TestSendFileUploadsMultipart(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	filepath := path.Join(dir, "upload.txt")
	is.NoErr(os.WriteFile(filepath, []byte("file-contents"), 0600))

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodPost),
			func(is *ispkg.I, r *http.Request, body []byte) {
				is.True(strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
				is.True(strings.Contains(string(body), "file-contents"))
				is.True(strings.Contains(string(body), `filename="upload.txt"`))
				is.True(strings.Contains(string(body), "a caption"))
			},
		),
		Returns(testutils.Code(http.StatusOK), testutils.Body([]byte(`{"id":"42"}`))),
	)
	defer s.Close()

	tr := New(s.URL())

	payload, err := tr.SendFile(context.Background(), "channels/1/messages", filepath, "upload.txt", WithContent("a caption"))

	is.NoErr(err)
	is.Equal(payload["id"], "42")
}

func TestExpandPath(t *testing.T) {
	is := is.New(t)

	expanded := ExpandPath("channels/{id}/permissions/{target}", map[string]string{
		"id":     "123",
		"target": "456",
	})

	is.Equal(expanded, "channels/123/permissions/456")
}
