package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kjess/corpora/corpora"
	"github.com/kjess/corpora/filter"
)

var (
	listFilter   string
	listLimit    int
	listOffset   int
	uploadMeta   []string
	downloadDest string
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage documents on the server",
}

var documentsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List documents, optionally filtered by an expression",
	PreRunE: initializeApp,
	RunE:    runDocumentsList,
}

var documentsUploadCmd = &cobra.Command{
	Use:     "upload <file>...",
	Short:   "Upload one or more documents for ingestion",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runDocumentsUpload,
}

var documentsGetCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show a document's metadata and ingestion state",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDocumentsGet,
}

var documentsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a document and its derived chunks",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDocumentsDelete,
}

var documentsDownloadCmd = &cobra.Command{
	Use:     "download <id>",
	Short:   "Download a document's original file",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDocumentsDownload,
}

func init() {
	documentsListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter expression, e.g. 'contains(Document.Title, \"report\")'")
	documentsListCmd.Flags().IntVar(&listLimit, "limit", 100, "maximum documents per page")
	documentsListCmd.Flags().IntVar(&listOffset, "offset", 0, "pagination offset")
	documentsUploadCmd.Flags().StringArrayVarP(&uploadMeta, "metadata", "m", nil, "metadata field as key=value (repeatable)")
	documentsDownloadCmd.Flags().StringVarP(&downloadDest, "output", "o", "", "output path (default: document title)")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsUploadCmd)
	documentsCmd.AddCommand(documentsGetCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsDownloadCmd)
}

func runDocumentsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	var docFilter *filter.Filter
	if listFilter != "" {
		var err error
		docFilter, err = filter.Compile(listFilter)
		if err != nil {
			return err
		}
	}

	page, err := client.ListDocuments(ctx, corpora.ListDocumentsOptions{
		Offset: listOffset,
		Limit:  listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	shown := 0
	fmt.Println(strings.Repeat("━", 100))
	fmt.Printf("%-38s %-36s %-12s %s\n", "ID", "TITLE", "STATUS", "TYPE")
	fmt.Println(strings.Repeat("━", 100))
	for _, doc := range page.Documents {
		if docFilter != nil {
			matched, err := docFilter.Matches(doc)
			if err != nil {
				return err
			}
			if !matched {
				continue
			}
		}

		title := doc.Title
		if len(title) > 34 {
			title = title[:31] + "..."
		}
		fmt.Printf("%-38s %-36s %-12s %s\n", doc.ID, title, doc.IngestionStatus, doc.DocumentType)
		shown++
	}
	fmt.Println(strings.Repeat("━", 100))
	fmt.Printf("%d of %d documents\n", shown, page.TotalEntries)
	return nil
}

func runDocumentsUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	metadata, err := parseMetadata(uploadMeta)
	if err != nil {
		return err
	}

	uploads := make([]corpora.DocumentUpload, 0, len(args))
	for _, path := range args {
		uploads = append(uploads, corpora.DocumentUpload{
			FilePath:      path,
			Metadata:      metadata,
			IngestionMode: cfg.Upload.IngestionMode,
		})
	}

	results, err := client.CreateDocuments(ctx, uploads, cfg.Upload.Concurrency)
	for _, result := range results {
		fmt.Printf("✓ %s: %s\n", result.DocumentID, result.Message)
	}
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fileText := "file"
	if len(results) != 1 {
		fileText = "files"
	}
	fmt.Printf("Uploaded %d %s\n", len(results), fileText)
	return nil
}

func runDocumentsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid document ID %q: %w", args[0], err)
	}

	doc, err := client.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	fmt.Printf("ID:         %s\n", doc.ID)
	fmt.Printf("Title:      %s\n", doc.Title)
	fmt.Printf("Type:       %s\n", doc.DocumentType)
	fmt.Printf("Ingestion:  %s\n", doc.IngestionStatus)
	fmt.Printf("Extraction: %s\n", doc.ExtractionStatus)
	fmt.Printf("Size:       %d bytes\n", doc.SizeInBytes)
	fmt.Printf("Created:    %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	for k, v := range doc.Metadata {
		fmt.Printf("  %s: %v\n", k, v)
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid document ID %q: %w", args[0], err)
	}

	if err := client.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	fmt.Printf("✓ Deleted %s\n", id)
	return nil
}

func runDocumentsDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid document ID %q: %w", args[0], err)
	}

	dest := downloadDest
	if dest == "" {
		doc, err := client.GetDocument(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		dest = doc.Title
		if dest == "" {
			dest = id.String()
		}
	}

	data, err := client.DownloadDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to download document: %w", err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Printf("✓ Wrote %d bytes to %s\n", len(data), dest)
	return nil
}

// parseMetadata converts repeated key=value flags into a metadata map.
func parseMetadata(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata %q: expected key=value", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}
