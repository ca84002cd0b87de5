package corpora

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SearchOptions tunes a retrieval query. The zero value asks for the
// server's defaults.
type SearchOptions struct {
	Limit         int
	UseHybrid     bool
	CollectionIDs []uuid.UUID
	Filters       map[string]any
}

// RAGOptions tunes retrieval-augmented generation.
type RAGOptions struct {
	Search      SearchOptions
	Model       string
	Temperature float64
}

func (o SearchOptions) settings() map[string]any {
	settings := map[string]any{}
	if o.Limit > 0 {
		settings["limit"] = o.Limit
	}
	if o.UseHybrid {
		settings["use_hybrid_search"] = true
	}
	filters := map[string]any{}
	for k, v := range o.Filters {
		filters[k] = v
	}
	if len(o.CollectionIDs) > 0 {
		filters["collection_ids"] = o.CollectionIDs
	}
	if len(filters) > 0 {
		settings["filters"] = filters
	}
	return settings
}

func (o RAGOptions) body(query string, stream bool) map[string]any {
	body := map[string]any{
		"query":           query,
		"search_settings": o.Search.settings(),
	}
	generation := map[string]any{}
	if o.Model != "" {
		generation["model"] = o.Model
	}
	if o.Temperature > 0 {
		generation["temperature"] = o.Temperature
	}
	if stream {
		generation["stream"] = true
	}
	if len(generation) > 0 {
		body["rag_generation_config"] = generation
	}
	return body
}

// Search runs a retrieval query and returns the ranked hits.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResults, error) {
	var resp envelope[SearchResults]
	err := c.do(ctx, request{
		op:     "retrieval.search",
		method: http.MethodPost,
		path:   "retrieval/search",
		body: map[string]any{
			"query":           query,
			"search_settings": opts.settings(),
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// RAG runs retrieval-augmented generation and waits for the complete
// answer.
func (c *Client) RAG(ctx context.Context, query string, opts RAGOptions) (*RAGResponse, error) {
	var resp envelope[RAGResponse]
	err := c.do(ctx, request{
		op:     "retrieval.rag",
		method: http.MethodPost,
		path:   "retrieval/rag",
		body:   opts.body(query, false),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// RAGStream runs retrieval-augmented generation and returns the answer as
// a live byte stream, available as soon as response headers arrive. The
// caller owns the stream.
func (c *Client) RAGStream(ctx context.Context, query string, opts RAGOptions) (*Stream, error) {
	return c.doStream(ctx, request{
		op:     "retrieval.rag_stream",
		method: http.MethodPost,
		path:   "retrieval/rag",
		body:   opts.body(query, true),
	})
}

// Agent runs a multi-turn agentic retrieval conversation to completion.
func (c *Client) Agent(ctx context.Context, messages []Message, opts RAGOptions) (*RAGResponse, error) {
	var resp envelope[RAGResponse]
	err := c.do(ctx, request{
		op:     "retrieval.agent",
		method: http.MethodPost,
		path:   "retrieval/agent",
		body:   agentBody(messages, opts, false),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// AgentStream is Agent with a streamed response.
func (c *Client) AgentStream(ctx context.Context, messages []Message, opts RAGOptions) (*Stream, error) {
	return c.doStream(ctx, request{
		op:     "retrieval.agent_stream",
		method: http.MethodPost,
		path:   "retrieval/agent",
		body:   agentBody(messages, opts, true),
	})
}

func agentBody(messages []Message, opts RAGOptions, stream bool) map[string]any {
	body := opts.body("", stream)
	delete(body, "query")
	body["messages"] = messages
	return body
}
