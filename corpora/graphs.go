package corpora

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// GetGraph reports the build status of a collection's knowledge graph.
func (c *Client) GetGraph(ctx context.Context, collectionID uuid.UUID) (*GraphStatus, error) {
	var resp envelope[GraphStatus]
	err := c.do(ctx, request{
		op:     "graphs.retrieve",
		method: http.MethodGet,
		path:   "graphs/" + collectionID.String(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// BuildGraph triggers (re)construction of a collection's knowledge graph.
// Construction runs asynchronously server-side.
func (c *Client) BuildGraph(ctx context.Context, collectionID uuid.UUID) error {
	return c.do(ctx, request{
		op:     "graphs.build",
		method: http.MethodPost,
		path:   "graphs/" + collectionID.String() + "/pull",
	}, nil)
}

// ListEntities lists the entities extracted into a collection's graph.
func (c *Client) ListEntities(ctx context.Context, collectionID uuid.UUID, opts ListOptions) ([]Entity, error) {
	query := url.Values{}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[Entity]
	err := c.do(ctx, request{
		op:     "graphs.list_entities",
		method: http.MethodGet,
		path:   "graphs/" + collectionID.String() + "/entities",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListRelationships lists the relationships in a collection's graph.
func (c *Client) ListRelationships(ctx context.Context, collectionID uuid.UUID, opts ListOptions) ([]Relationship, error) {
	query := url.Values{}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[Relationship]
	err := c.do(ctx, request{
		op:     "graphs.list_relationships",
		method: http.MethodGet,
		path:   "graphs/" + collectionID.String() + "/relationships",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}
