package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kjess/corpora/corpora"
)

var (
	searchLimit  int
	searchHybrid bool
	ragModel     string
	ragStream    bool
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Run a retrieval query and show the ranked hits",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

var ragCmd = &cobra.Command{
	Use:     "rag <query>",
	Short:   "Ask a question answered with retrieval-augmented generation",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runRAG,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of hits")
	searchCmd.Flags().BoolVar(&searchHybrid, "hybrid", false, "use hybrid (vector + keyword) search")
	ragCmd.Flags().StringVar(&ragModel, "model", "", "generation model override")
	ragCmd.Flags().BoolVar(&ragStream, "stream", false, "stream the answer as it is generated")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results, err := client.Search(ctx, query, corpora.SearchOptions{
		Limit:     searchLimit,
		UseHybrid: searchHybrid,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results.ChunkSearchResults) == 0 && len(results.GraphSearchResults) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, hit := range results.ChunkSearchResults {
		text := strings.TrimSpace(hit.Text)
		if len(text) > 200 {
			text = text[:197] + "..."
		}
		fmt.Printf("%2d. [%.3f] %s\n    %s\n", i+1, hit.Score, hit.DocumentID, text)
	}
	for _, hit := range results.GraphSearchResults {
		fmt.Printf("  ◆ [%.3f] %s: %s\n", hit.Score, hit.Name, hit.Description)
	}
	return nil
}

func runRAG(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	query := strings.Join(args, " ")
	opts := corpora.RAGOptions{
		Model:  ragModel,
		Search: corpora.SearchOptions{Limit: searchLimit},
	}

	if ragStream {
		stream, err := client.RAGStream(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("rag failed: %w", err)
		}
		defer stream.Close()

		if _, err := io.Copy(os.Stdout, stream); err != nil {
			return fmt.Errorf("stream interrupted: %w", err)
		}
		fmt.Println()
		return nil
	}

	resp, err := client.RAG(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("rag failed: %w", err)
	}

	fmt.Println(resp.GeneratedAnswer)
	if len(resp.SearchResults.ChunkSearchResults) > 0 {
		fmt.Printf("\n(%d source chunks)\n", len(resp.SearchResults.ChunkSearchResults))
	}
	return nil
}
