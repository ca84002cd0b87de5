package corpora

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is the HTTP timeout applied to buffered calls unless
// overridden via WithTimeout or WithHTTPClient.
const DefaultTimeout = 30 * time.Second

const defaultUserAgent = "corpora-go"

// Client talks to a Corpora server. All resource methods funnel through the
// same request pipeline: encoding, token injection, dispatch, and error
// normalization.
//
// The access/refresh token pair is the only mutable shared state. It is
// written by Login, Refresh, Logout, and LoginWithToken; concurrent
// auth-mutating calls are last-write-wins with no coordination beyond
// memory safety. Callers that need ordering must serialize those calls.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	logger       zerolog.Logger
	userAgent    string
	telemetry    TelemetrySink

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewClient creates a new Corpora client. The base URL should include any
// API version prefix (e.g. "https://corpora.example.com/v1"). No network
// traffic happens until the first call.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: server URL is required", ErrInvalidConfig)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	options := clientOptions{
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
		telemetry: NopSink{},
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		streamClient: &http.Client{Transport: httpClient.Transport},
		logger:       logger,
		userAgent:    options.userAgent,
		telemetry:    options.telemetry,
	}, nil
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Tokens returns the current access/refresh token pair. Either may be empty.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// setTokens overwrites the credential pair. Last write wins.
func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()
}

// clearTokens drops the credential pair, returning to the
// unauthenticated state.
func (c *Client) clearTokens() {
	c.setTokens("", "")
}
