package corpora

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// tokenPayload is one token inside the auth envelope.
type tokenPayload struct {
	Token string `json:"token"`
}

// loginResults is the token pair the server returns on login and refresh.
type loginResults struct {
	AccessToken  tokenPayload `json:"access_token"`
	RefreshToken tokenPayload `json:"refresh_token"`
}

// Login authenticates with email and password. The credentials are sent as
// a url-encoded form with a "username" field, matching the server's login
// endpoint. On success both tokens are stored on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := url.Values{
		"username": {email},
		"password": {password},
	}

	var resp envelope[loginResults]
	err := c.do(ctx, request{
		op:      "users.login",
		method:  http.MethodPost,
		path:    "login",
		body:    body,
		headers: map[string]string{headerContentType: contentTypeForm},
	}, &resp)
	if err != nil {
		return err
	}

	c.setTokens(resp.Results.AccessToken.Token, resp.Results.RefreshToken.Token)
	c.logger.Debug().Msg("Logged in to Corpora")
	return nil
}

// Refresh exchanges the stored refresh token for a new token pair. It fails
// fast with ErrNoRefreshToken, without issuing a network request, when no
// refresh token is held. Concurrent refreshes are last-write-wins.
func (c *Client) Refresh(ctx context.Context) error {
	_, refresh := c.Tokens()
	if refresh == "" {
		return ErrNoRefreshToken
	}

	// The endpoint takes the bare refresh token, url-encoded, as the body.
	var resp envelope[loginResults]
	err := c.do(ctx, request{
		op:     "users.refresh",
		method: http.MethodPost,
		path:   "refresh_token",
		body:   url.QueryEscape(refresh),
	}, &resp)
	if err != nil {
		return err
	}

	c.setTokens(resp.Results.AccessToken.Token, resp.Results.RefreshToken.Token)
	return nil
}

// Logout ends the server-side session. The local token pair is cleared
// unconditionally, whether or not the logout call itself succeeded.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{
		op:     "users.logout",
		method: http.MethodPost,
		path:   "logout",
	}, nil)
	c.clearTokens()
	return err
}

// LoginWithToken adopts an externally supplied access token. The token is
// validated with a probe against the authenticated users/me endpoint; on
// failure the credential state is cleared and the error returned. No
// refresh token is held afterwards, so Refresh is unavailable until a full
// Login.
func (c *Client) LoginWithToken(ctx context.Context, accessToken string) (*User, error) {
	c.setTokens(accessToken, "")

	user, err := c.Me(ctx)
	if err != nil {
		c.clearTokens()
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	return user, nil
}

// Register creates a new user account. This endpoint is unauthenticated.
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	var resp envelope[User]
	err := c.do(ctx, request{
		op:     "users.register",
		method: http.MethodPost,
		path:   "register",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// VerifyEmail confirms a registration with the code mailed to the user.
// This endpoint is unauthenticated.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	return c.do(ctx, request{
		op:     "users.verify_email",
		method: http.MethodPost,
		path:   "verify_email",
		body: map[string]string{
			"email":             email,
			"verification_code": code,
		},
	}, nil)
}

// Health checks server availability. This endpoint is unauthenticated.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var resp envelope[HealthStatus]
	err := c.do(ctx, request{
		op:     "system.health",
		method: http.MethodGet,
		path:   "health",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}
