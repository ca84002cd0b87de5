package corpora

import (
	"io"
	"net/http"
)

// Stream is a live byte stream of an incrementally generated response. It is
// handed back as soon as response headers arrive; the status is always 2xx
// because error statuses are converted to *APIError before a Stream exists.
//
// The caller owns the stream: read until io.EOF or Close early to release
// the underlying connection. The client does not buffer it.
type Stream struct {
	body   io.ReadCloser
	header http.Header
	status int
}

func newStream(resp *http.Response) *Stream {
	return &Stream{
		body:   resp.Body,
		header: resp.Header,
		status: resp.StatusCode,
	}
}

// Read implements io.Reader. It blocks until the next chunk is available or
// the stream ends.
func (s *Stream) Read(p []byte) (int, error) {
	return s.body.Read(p)
}

// Close releases the underlying connection. Abandoning a stream without
// closing leaks the connection until the transport reclaims it.
func (s *Stream) Close() error {
	return s.body.Close()
}

// Header returns the response headers that accompanied the stream.
func (s *Stream) Header() http.Header {
	return s.header
}

// StatusCode returns the HTTP status of the streamed response.
func (s *Stream) StatusCode() int {
	return s.status
}
