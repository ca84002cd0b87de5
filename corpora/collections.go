package corpora

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// ListOptions paginates list endpoints.
type ListOptions struct {
	Offset int
	Limit  int
}

// CreateCollection creates a named document collection.
func (c *Client) CreateCollection(ctx context.Context, name, description string) (*Collection, error) {
	var resp envelope[Collection]
	err := c.do(ctx, request{
		op:     "collections.create",
		method: http.MethodPost,
		path:   "collections",
		body: map[string]string{
			"name":        name,
			"description": description,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// ListCollections lists collections visible to the current user.
func (c *Client) ListCollections(ctx context.Context, opts ListOptions) ([]Collection, error) {
	query := url.Values{}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[Collection]
	err := c.do(ctx, request{
		op:     "collections.list",
		method: http.MethodGet,
		path:   "collections",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetCollection retrieves a collection by ID.
func (c *Client) GetCollection(ctx context.Context, id uuid.UUID) (*Collection, error) {
	var resp envelope[Collection]
	err := c.do(ctx, request{
		op:     "collections.retrieve",
		method: http.MethodGet,
		path:   "collections/" + id.String(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// UpdateCollection changes a collection's name and/or description. Empty
// fields are left unchanged.
func (c *Client) UpdateCollection(ctx context.Context, id uuid.UUID, name, description string) (*Collection, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	if description != "" {
		body["description"] = description
	}

	var resp envelope[Collection]
	err := c.do(ctx, request{
		op:     "collections.update",
		method: http.MethodPatch,
		path:   "collections/" + id.String(),
		body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// DeleteCollection removes a collection. Documents remain and only lose
// their membership.
func (c *Client) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{
		op:     "collections.delete",
		method: http.MethodDelete,
		path:   "collections/" + id.String(),
	}, nil)
}

// AddDocumentToCollection adds an existing document to a collection.
func (c *Client) AddDocumentToCollection(ctx context.Context, collectionID, documentID uuid.UUID) error {
	return c.do(ctx, request{
		op:     "collections.add_document",
		method: http.MethodPost,
		path:   "collections/" + collectionID.String() + "/documents/" + documentID.String(),
	}, nil)
}

// RemoveDocumentFromCollection removes a document from a collection.
func (c *Client) RemoveDocumentFromCollection(ctx context.Context, collectionID, documentID uuid.UUID) error {
	return c.do(ctx, request{
		op:     "collections.remove_document",
		method: http.MethodDelete,
		path:   "collections/" + collectionID.String() + "/documents/" + documentID.String(),
	}, nil)
}

// ListCollectionDocuments lists the documents in a collection.
func (c *Client) ListCollectionDocuments(ctx context.Context, collectionID uuid.UUID, opts ListOptions) (*DocumentPage, error) {
	query := url.Values{}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[Document]
	err := c.do(ctx, request{
		op:     "collections.list_documents",
		method: http.MethodGet,
		path:   "collections/" + collectionID.String() + "/documents",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &DocumentPage{Documents: resp.Results, TotalEntries: resp.TotalEntries}, nil
}
