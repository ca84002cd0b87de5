package corpora

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// CreateConversation starts a new named conversation.
func (c *Client) CreateConversation(ctx context.Context, name string) (*Conversation, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}

	var resp envelope[Conversation]
	err := c.do(ctx, request{
		op:     "conversations.create",
		method: http.MethodPost,
		path:   "conversations",
		body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// ListConversations lists stored conversations.
func (c *Client) ListConversations(ctx context.Context, opts ListOptions) ([]Conversation, error) {
	query := url.Values{}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[Conversation]
	err := c.do(ctx, request{
		op:     "conversations.list",
		method: http.MethodGet,
		path:   "conversations",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetConversation retrieves the message history of a conversation.
func (c *Client) GetConversation(ctx context.Context, id uuid.UUID) ([]Message, error) {
	var resp listEnvelope[Message]
	err := c.do(ctx, request{
		op:     "conversations.retrieve",
		method: http.MethodGet,
		path:   "conversations/" + id.String(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{
		op:     "conversations.delete",
		method: http.MethodDelete,
		path:   "conversations/" + id.String(),
	}, nil)
}

// AddMessage appends a message to a conversation.
func (c *Client) AddMessage(ctx context.Context, conversationID uuid.UUID, message Message) (*Message, error) {
	var resp envelope[Message]
	err := c.do(ctx, request{
		op:     "conversations.add_message",
		method: http.MethodPost,
		path:   "conversations/" + conversationID.String() + "/messages",
		body:   message,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}
