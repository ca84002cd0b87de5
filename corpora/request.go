package corpora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// unauthenticated is the fixed set of endpoints that never carry a bearer
// token, even when one is held.
var unauthenticated = map[string]bool{
	"register":     true,
	"login":        true,
	"verify_email": true,
	"health":       true,
}

// request describes one logical API call before transport encoding. It is
// built fresh per invocation and never mutated after construction.
type request struct {
	op      string            // operation name reported to the telemetry sink
	method  string            // GET, POST, PUT, PATCH, DELETE
	path    string            // path relative to the base URL, no leading slash
	query   url.Values        // array values serialize as repeated key=value pairs
	body    any               // nil | *Multipart | string (raw) | url.Values (form) | JSON-marshalable
	headers map[string]string // extra headers; a form Content-Type switches body encoding
}

// encode turns a logical request into a transport-ready *http.Request,
// choosing the body encoding and attaching the bearer token unless the path
// is in the unauthenticated set.
func (c *Client) encode(ctx context.Context, r request) (*http.Request, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	body, contentType, err := c.encodeBody(r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	if access, _ := c.Tokens(); access != "" && !unauthenticated[r.path] {
		req.Header.Set(headerAuthorization, "Bearer "+access)
	}

	return req, nil
}

// encodeBody selects the body encoding. The cases are mutually exclusive and
// checked in precedence order: multipart descriptor, explicitly requested
// url-encoded form, raw string pass-through, JSON.
func (c *Client) encodeBody(r request) (io.Reader, string, error) {
	if m, ok := r.body.(*Multipart); ok {
		// The multipart writer supplies the Content-Type including the
		// boundary; it must not be overridden with application/json.
		return m.encode()
	}

	if r.headers[headerContentType] == contentTypeForm {
		form, err := formValues(r.body)
		if err != nil {
			return nil, "", err
		}
		return strings.NewReader(form.Encode()), contentTypeForm, nil
	}

	switch b := r.body.(type) {
	case nil:
		return nil, "", nil
	case string:
		// Pre-serialized payload, passed through unmodified.
		return strings.NewReader(b), "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request body: %w", err)
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	}
}

// formValues coerces a form body into url.Values.
func formValues(body any) (url.Values, error) {
	switch b := body.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return b, nil
	case map[string]string:
		form := url.Values{}
		for k, v := range b {
			form.Set(k, v)
		}
		return form, nil
	default:
		return nil, fmt.Errorf("unsupported form body type %T", body)
	}
}

// roundTrip executes an encoded request and normalizes error-status
// responses. The telemetry sink is notified exactly once per call, success
// or failure. On success the caller owns the response body.
func (c *Client) roundTrip(ctx context.Context, r request, streaming bool) (resp *http.Response, err error) {
	defer func() {
		c.telemetry.Record(r.op, err)
	}()

	req, err := c.encode(ctx, r)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("url", req.URL.String()).
		Msg("Making Corpora API request")

	client := c.httpClient
	if streaming {
		// No overall deadline on streamed responses.
		client = c.streamClient
	}

	resp, err = client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = nil
		}
		return nil, newAPIError(resp.StatusCode, body)
	}

	return resp, nil
}

// do dispatches a buffered request and decodes the JSON response into out.
// A nil out discards the response body.
func (c *Client) do(ctx context.Context, r request, out any) error {
	resp, err := c.roundTrip(ctx, r, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// doBytes dispatches a buffered request and returns the raw response body,
// for binary downloads.
func (c *Client) doBytes(ctx context.Context, r request) ([]byte, error) {
	resp, err := c.roundTrip(ctx, r, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// doText dispatches a buffered request and returns the response body as
// text.
func (c *Client) doText(ctx context.Context, r request) (string, error) {
	body, err := c.doBytes(ctx, r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// doStream dispatches a request in stream mode: it returns as soon as
// response headers are available. Error statuses are detected here, before
// the stream is handed back, so callers never receive a stream for a failed
// request. The caller owns the returned stream and must drain or close it.
func (c *Client) doStream(ctx context.Context, r request) (*Stream, error) {
	resp, err := c.roundTrip(ctx, r, true)
	if err != nil {
		return nil, err
	}
	return newStream(resp), nil
}
