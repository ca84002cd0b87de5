// Package corpora provides a client for the Corpora document retrieval API.
//
// Corpora is a self-hosted document ingestion, search, and RAG server. This
// package implements the shared request pipeline every endpoint goes through
// (session tokens, request encoding, buffered and streamed dispatch, error
// normalization) plus thin typed wrappers for the individual resources.
//
// # Usage
//
// Create a client, authenticate, and call resource methods:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := corpora.NewClient("https://corpora.example.com/v1", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.Login(ctx, "user@example.com", "secret"); err != nil {
//		log.Fatal(err)
//	}
//
//	docs, err := client.ListDocuments(ctx, corpora.ListDocumentsOptions{Limit: 50})
//
// # Error Handling
//
// Remote failures are always surfaced as *APIError whose message has the
// fixed form "Status <code>: <message>"; existing callers match on that
// prefix. Local validation failures (missing refresh token, directory used
// as a file part) are sentinel errors raised before any network I/O.
//
// # Streaming
//
// Endpoints that emit incrementally generated text (RAG, agent) have *Stream
// variants that return as soon as response headers arrive. The caller owns
// the stream and must drain or close it; a non-2xx status is converted to an
// error before any stream is handed back.
package corpora
