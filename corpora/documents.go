package corpora

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultUploadConcurrency bounds concurrent uploads in CreateDocuments.
const DefaultUploadConcurrency = 4

// DocumentUpload describes one document to ingest. Exactly one content
// source must be set: FilePath (read from the filesystem) or Content with
// Filename (in-memory).
type DocumentUpload struct {
	FilePath string
	Filename string
	Content  []byte

	Metadata      map[string]any
	IngestionMode string
	CollectionIDs []uuid.UUID
}

// DocumentPage is one page of a document listing.
type DocumentPage struct {
	Documents    []Document
	TotalEntries int
}

// ListDocumentsOptions filters and paginates ListDocuments.
type ListDocumentsOptions struct {
	IDs    []uuid.UUID
	Offset int
	Limit  int
}

// CreateDocument uploads a document for ingestion as multipart/form-data.
func (c *Client) CreateDocument(ctx context.Context, upload DocumentUpload) (*IngestionResult, error) {
	body, err := upload.multipart()
	if err != nil {
		return nil, err
	}

	var resp envelope[IngestionResult]
	err = c.do(ctx, request{
		op:     "documents.create",
		method: http.MethodPost,
		path:   "documents",
		body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// CreateDocuments uploads several documents concurrently. A concurrency of
// zero or less falls back to DefaultUploadConcurrency. The first failure
// cancels the remaining uploads; results for completed uploads are returned
// alongside the error.
func (c *Client) CreateDocuments(ctx context.Context, uploads []DocumentUpload, concurrency int) ([]IngestionResult, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var results []IngestionResult

	for _, upload := range uploads {
		g.Go(func() error {
			result, err := c.CreateDocument(ctx, upload)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", upload.displayName(), err)
			}
			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// GetDocument retrieves a document's metadata and processing state.
func (c *Client) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var resp envelope[Document]
	err := c.do(ctx, request{
		op:     "documents.retrieve",
		method: http.MethodGet,
		path:   "documents/" + id.String(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// ListDocuments lists documents. ID filters serialize as repeated ids=
// query parameters.
func (c *Client) ListDocuments(ctx context.Context, opts ListDocumentsOptions) (*DocumentPage, error) {
	query := url.Values{}
	for _, id := range opts.IDs {
		query.Add("ids", id.String())
	}
	addPagination(query, opts.Offset, opts.Limit)

	var resp listEnvelope[Document]
	err := c.do(ctx, request{
		op:     "documents.list",
		method: http.MethodGet,
		path:   "documents",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &DocumentPage{Documents: resp.Results, TotalEntries: resp.TotalEntries}, nil
}

// DeleteDocument removes a document and its derived chunks.
func (c *Client) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{
		op:     "documents.delete",
		method: http.MethodDelete,
		path:   "documents/" + id.String(),
	}, nil)
}

// DownloadDocument fetches the original file content as a binary blob.
func (c *Client) DownloadDocument(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return c.doBytes(ctx, request{
		op:     "documents.download",
		method: http.MethodGet,
		path:   "documents/" + id.String() + "/download",
	})
}

// multipart builds the upload descriptor, validating the content source.
func (u DocumentUpload) multipart() (*Multipart, error) {
	m := NewMultipart()

	switch {
	case u.FilePath != "" && len(u.Content) > 0:
		return nil, errors.New("document upload has both a file path and in-memory content")
	case u.FilePath != "":
		m.AddFilePath("file", u.FilePath)
	case len(u.Content) > 0:
		if u.Filename == "" {
			return nil, errors.New("in-memory document upload requires a filename")
		}
		m.AddFileBytes("file", u.Filename, u.Content)
	default:
		return nil, errors.New("document upload has no content source")
	}

	if len(u.Metadata) > 0 {
		m.AddField("metadata", u.Metadata)
	}
	if u.IngestionMode != "" {
		m.AddField("ingestion_mode", u.IngestionMode)
	}
	if len(u.CollectionIDs) > 0 {
		m.AddField("collection_ids", u.CollectionIDs)
	}
	return m, nil
}

func (u DocumentUpload) displayName() string {
	if u.FilePath != "" {
		return u.FilePath
	}
	return u.Filename
}

// addPagination appends offset/limit query parameters when set.
func addPagination(query url.Values, offset, limit int) {
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
}
