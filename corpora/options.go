package corpora

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	telemetry  TelemetrySink
}

// WithTimeout sets the HTTP client timeout for buffered calls. Streamed
// calls use a client without a deadline so long generations are not cut off.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient supplies a custom *http.Client, overriding the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithTelemetrySink registers a sink invoked once after every dispatch,
// on success and on failure alike.
func WithTelemetrySink(sink TelemetrySink) Option {
	return func(o *clientOptions) {
		if sink != nil {
			o.telemetry = sink
		}
	}
}
