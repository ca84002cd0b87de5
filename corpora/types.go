package corpora

import (
	"time"

	"github.com/google/uuid"
)

// envelope is the standard wrapper the server puts around a single result.
type envelope[T any] struct {
	Results T `json:"results"`
}

// listEnvelope wraps paginated list results.
type listEnvelope[T any] struct {
	Results      []T `json:"results"`
	TotalEntries int `json:"total_entries"`
}

// HealthStatus is the health endpoint response.
type HealthStatus struct {
	Message string `json:"message"`
}

// User is a Corpora account.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// Document is an ingested document and its processing state.
type Document struct {
	ID               uuid.UUID      `json:"id"`
	CollectionIDs    []uuid.UUID    `json:"collection_ids"`
	Title            string         `json:"title"`
	DocumentType     string         `json:"document_type"`
	Metadata         map[string]any `json:"metadata"`
	IngestionStatus  string         `json:"ingestion_status"`
	ExtractionStatus string         `json:"extraction_status"`
	SizeInBytes      int64          `json:"size_in_bytes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IngestionResult acknowledges an accepted document upload. Ingestion
// continues asynchronously server-side.
type IngestionResult struct {
	DocumentID uuid.UUID `json:"document_id"`
	Message    string    `json:"message"`
	TaskID     string    `json:"task_id,omitempty"`
}

// Collection groups documents for shared access and graph construction.
type Collection struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DocumentCount int       `json:"document_count"`
	UserCount     int       `json:"user_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Conversation is a stored chat session.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one turn in a conversation.
type Message struct {
	ID       uuid.UUID      `json:"id,omitempty"`
	Role     string         `json:"role"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ChunkResult is a single vector-search hit.
type ChunkResult struct {
	ID            uuid.UUID      `json:"id"`
	DocumentID    uuid.UUID      `json:"document_id"`
	CollectionIDs []uuid.UUID    `json:"collection_ids"`
	Score         float64        `json:"score"`
	Text          string         `json:"text"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// GraphResult is a single knowledge-graph hit.
type GraphResult struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Score       float64   `json:"score"`
}

// SearchResults aggregates the hit lists of one retrieval query.
type SearchResults struct {
	ChunkSearchResults []ChunkResult `json:"chunk_search_results"`
	GraphSearchResults []GraphResult `json:"graph_search_results,omitempty"`
}

// RAGResponse is a completed retrieval-augmented generation.
type RAGResponse struct {
	GeneratedAnswer string        `json:"generated_answer"`
	SearchResults   SearchResults `json:"search_results"`
}

// Entity is a knowledge-graph node.
type Entity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Relationship is a knowledge-graph edge.
type Relationship struct {
	ID          uuid.UUID `json:"id"`
	Subject     string    `json:"subject"`
	Predicate   string    `json:"predicate"`
	Object      string    `json:"object"`
	Description string    `json:"description,omitempty"`
}

// GraphStatus reports the build state of a collection's graph.
type GraphStatus struct {
	CollectionID      uuid.UUID `json:"collection_id"`
	Status            string    `json:"status"`
	EntityCount       int       `json:"entity_count"`
	RelationshipCount int       `json:"relationship_count"`
	UpdatedAt         time.Time `json:"updated_at"`
}
