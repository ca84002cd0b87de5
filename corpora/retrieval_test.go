package corpora

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/retrieval/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "meaning of life", body["query"])
		settings := body["search_settings"].(map[string]any)
		assert.Equal(t, float64(5), settings["limit"])
		assert.Equal(t, true, settings["use_hybrid_search"])

		w.Write([]byte(`{"results":{"chunk_search_results":[
			{"id":"8e2cbb61-0b57-4b47-b305-59516f8d0e15",
			 "document_id":"4e0a9f11-ffa1-49a4-8f1d-9a34a09e1b30",
			 "score":0.92,"text":"the answer is 42"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.setTokens("tok", "")

	results, err := client.Search(context.Background(), "meaning of life", SearchOptions{
		Limit:     5,
		UseHybrid: true,
	})
	require.NoError(t, err)
	require.Len(t, results.ChunkSearchResults, 1)
	assert.InDelta(t, 0.92, results.ChunkSearchResults[0].Score, 1e-9)
	assert.Equal(t, "the answer is 42", results.ChunkSearchResults[0].Text)
}

func TestRAG(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasGeneration := body["rag_generation_config"]
		assert.False(t, hasGeneration, "default options should not send a generation config")

		w.Write([]byte(`{"results":{"generated_answer":"42","search_results":{"chunk_search_results":[]}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.setTokens("tok", "")

	resp, err := client.RAG(context.Background(), "meaning of life", RAGOptions{})
	require.NoError(t, err)
	assert.Equal(t, "42", resp.GeneratedAnswer)
}

func TestRAGStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		generation := body["rag_generation_config"].(map[string]any)
		assert.Equal(t, true, generation["stream"])

		flusher := w.(http.Flusher)
		for _, chunk := range []string{"The ", "answer ", "is ", "42."} {
			io.WriteString(w, chunk)
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.setTokens("tok", "")

	stream, err := client.RAGStream(context.Background(), "meaning of life", RAGOptions{})
	require.NoError(t, err)
	defer stream.Close()

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "The answer is 42.", string(got))
}

func TestAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/retrieval/agent", r.URL.Path)

		var body struct {
			Messages []Message `json:"messages"`
			Query    *string   `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Nil(t, body.Query, "agent requests carry messages, not a query")
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "user", body.Messages[1].Role)

		w.Write([]byte(`{"results":{"generated_answer":"hello"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.setTokens("tok", "")

	resp, err := client.Agent(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	}, RAGOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.GeneratedAnswer)
}
