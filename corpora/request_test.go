package corpora

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(baseURL, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestQueryArrayEncoding(t *testing.T) {
	client := newTestClient(t, "http://localhost:7272/v1")

	req, err := client.encode(context.Background(), request{
		method: http.MethodGet,
		path:   "documents",
		query: url.Values{
			"ids":   {"doc-a", "doc-b"},
			"limit": {"10"},
		},
	})
	require.NoError(t, err)

	rawQuery := req.URL.RawQuery
	// Arrays must serialize as repeated key=value pairs, never comma-joined.
	assert.Equal(t, 2, strings.Count(rawQuery, "ids="))
	assert.Contains(t, rawQuery, "ids=doc-a")
	assert.Contains(t, rawQuery, "ids=doc-b")
	assert.NotContains(t, rawQuery, "doc-a,doc-b")
	assert.NotContains(t, rawQuery, "doc-a%2Cdoc-b")
}

func TestQueryPercentEncoding(t *testing.T) {
	client := newTestClient(t, "http://localhost:7272/v1")

	req, err := client.encode(context.Background(), request{
		method: http.MethodGet,
		path:   "documents",
		query:  url.Values{"title": {"a b&c"}},
	})
	require.NoError(t, err)
	assert.Contains(t, req.URL.RawQuery, "title=a+b%26c")
}

func TestBodyEncodingJSON(t *testing.T) {
	client := newTestClient(t, "http://localhost:7272/v1")

	req, err := client.encode(context.Background(), request{
		method: http.MethodPost,
		path:   "collections",
		body:   map[string]string{"name": "notes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	body, _ := io.ReadAll(req.Body)
	assert.JSONEq(t, `{"name":"notes"}`, string(body))
}

func TestBodyEncodingRawString(t *testing.T) {
	client := newTestClient(t, "http://localhost:7272/v1")

	req, err := client.encode(context.Background(), request{
		method: http.MethodPost,
		path:   "refresh_token",
		body:   "opaque%2Ftoken",
	})
	require.NoError(t, err)

	// Pre-serialized strings pass through untouched, with no forced
	// Content-Type.
	assert.Empty(t, req.Header.Get("Content-Type"))
	body, _ := io.ReadAll(req.Body)
	assert.Equal(t, "opaque%2Ftoken", string(body))
}

func TestBodyEncodingForm(t *testing.T) {
	client := newTestClient(t, "http://localhost:7272/v1")

	req, err := client.encode(context.Background(), request{
		method:  http.MethodPost,
		path:    "login",
		body:    url.Values{"username": {"user@example.com"}, "password": {"p&ss"}},
		headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	body, _ := io.ReadAll(req.Body)
	assert.Contains(t, string(body), "username=user%40example.com")
	assert.Contains(t, string(body), "password=p%26ss")
}

func TestBodyEncodingMultipart(t *testing.T) {
	client := newTestClient(t, "http://localhost:7272/v1")

	m := NewMultipart()
	m.AddFileBytes("file", "doc.txt", []byte("hello"))
	m.AddField("metadata", map[string]any{"k": "v"})

	req, err := client.encode(context.Background(), request{
		method: http.MethodPost,
		path:   "documents",
		body:   m,
	})
	require.NoError(t, err)

	contentType := req.Header.Get("Content-Type")
	// The multipart writer owns the Content-Type so the boundary survives;
	// it must never be application/json.
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"), contentType)
	assert.Contains(t, contentType, "boundary=")
	assert.NotContains(t, contentType, "application/json")
}

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		token      string
		wantBearer bool
	}{
		{
			name:       "protected path with token",
			path:       "documents",
			token:      "tok-123",
			wantBearer: true,
		},
		{
			name:  "protected path without token",
			path:  "documents",
			token: "",
		},
		{
			name:  "login never carries a token",
			path:  "login",
			token: "tok-123",
		},
		{
			name:  "register never carries a token",
			path:  "register",
			token: "tok-123",
		},
		{
			name:  "verify_email never carries a token",
			path:  "verify_email",
			token: "tok-123",
		},
		{
			name:  "health never carries a token",
			path:  "health",
			token: "tok-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "http://localhost:7272/v1")
			client.setTokens(tt.token, "")

			req, err := client.encode(context.Background(), request{
				method: http.MethodGet,
				path:   tt.path,
			})
			require.NoError(t, err)

			if tt.wantBearer {
				assert.Equal(t, "Bearer "+tt.token, req.Header.Get("Authorization"))
			} else {
				assert.Empty(t, req.Header.Get("Authorization"))
			}
		})
	}
}

func TestProtectedCallWithoutToken(t *testing.T) {
	// The client never rejects a tokenless call locally; the failure is the
	// server's clean 401, normalized like any other remote error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"not authenticated"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Me(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Status 401: not authenticated", apiErr.Error())
}

func TestTelemetrySinkFiresOncePerDispatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Write([]byte(`{"results":{"message":"ok"}}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"forbidden"}`))
	}))
	defer server.Close()

	sink := &recordingSink{}
	client := newTestClient(t, server.URL, WithTelemetrySink(sink))

	_, err := client.Health(context.Background())
	require.NoError(t, err)

	_, err = client.Me(context.Background())
	require.Error(t, err)

	require.Len(t, sink.records, 2)
	assert.Equal(t, "system.health", sink.records[0].op)
	assert.NoError(t, sink.records[0].err)
	assert.Equal(t, "users.me", sink.records[1].op)
	assert.Error(t, sink.records[1].err)
}

type recordingSink struct {
	records []struct {
		op  string
		err error
	}
}

func (s *recordingSink) Record(op string, err error) {
	s.records = append(s.records, struct {
		op  string
		err error
	}{op, err})
}
