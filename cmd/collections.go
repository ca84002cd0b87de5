package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kjess/corpora/corpora"
)

var collectionDescription string

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage document collections",
}

var collectionsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List collections",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		collections, err := client.ListCollections(ctx, corpora.ListOptions{Limit: 100})
		if err != nil {
			return fmt.Errorf("failed to list collections: %w", err)
		}

		fmt.Println(strings.Repeat("━", 90))
		fmt.Printf("%-38s %-30s %s\n", "ID", "NAME", "DOCUMENTS")
		fmt.Println(strings.Repeat("━", 90))
		for _, coll := range collections {
			fmt.Printf("%-38s %-30s %d\n", coll.ID, coll.Name, coll.DocumentCount)
		}
		fmt.Println(strings.Repeat("━", 90))
		return nil
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a collection",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		coll, err := client.CreateCollection(ctx, args[0], collectionDescription)
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		fmt.Printf("✓ Created collection %s (%s)\n", coll.Name, coll.ID)
		return nil
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a collection",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid collection ID %q: %w", args[0], err)
		}
		if err := client.DeleteCollection(ctx, id); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		fmt.Printf("✓ Deleted %s\n", id)
		return nil
	},
}

var collectionsAddDocCmd = &cobra.Command{
	Use:     "add-document <collection-id> <document-id>",
	Short:   "Add a document to a collection",
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		collID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid collection ID %q: %w", args[0], err)
		}
		docID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid document ID %q: %w", args[1], err)
		}

		if err := client.AddDocumentToCollection(ctx, collID, docID); err != nil {
			return fmt.Errorf("failed to add document: %w", err)
		}
		fmt.Printf("✓ Added %s to %s\n", docID, collID)
		return nil
	},
}

var collectionsGraphCmd = &cobra.Command{
	Use:     "graph <collection-id>",
	Short:   "Show the knowledge graph status of a collection",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid collection ID %q: %w", args[0], err)
		}

		graph, err := client.GetGraph(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get graph: %w", err)
		}
		fmt.Printf("Status:        %s\n", graph.Status)
		fmt.Printf("Entities:      %d\n", graph.EntityCount)
		fmt.Printf("Relationships: %d\n", graph.RelationshipCount)
		return nil
	},
}

func init() {
	collectionsCreateCmd.Flags().StringVar(&collectionDescription, "description", "", "collection description")

	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	collectionsCmd.AddCommand(collectionsAddDocCmd)
	collectionsCmd.AddCommand(collectionsGraphCmd)
}
