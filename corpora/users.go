package corpora

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Me returns the account the current access token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp envelope[User]
	err := c.do(ctx, request{
		op:     "users.me",
		method: http.MethodGet,
		path:   "users/me",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// GetUser retrieves a user by ID.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var resp envelope[User]
	err := c.do(ctx, request{
		op:     "users.retrieve",
		method: http.MethodGet,
		path:   "users/" + id.String(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// ListUsers lists accounts. Requires a superuser token.
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) ([]User, error) {
	query := url.Values{}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[User]
	err := c.do(ctx, request{
		op:     "users.list",
		method: http.MethodGet,
		path:   "users",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}
