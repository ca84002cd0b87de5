package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kjess/corpora/corpora"
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "Manage stored conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List conversations",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		conversations, err := client.ListConversations(ctx, corpora.ListOptions{Limit: 100})
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		for _, conv := range conversations {
			name := conv.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%s  %s  %s\n", conv.ID, conv.CreatedAt.Format("2006-01-02 15:04"), name)
		}
		return nil
	},
}

var conversationsShowCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show a conversation's messages",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid conversation ID %q: %w", args[0], err)
		}

		messages, err := client.GetConversation(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get conversation: %w", err)
		}

		for _, msg := range messages {
			fmt.Printf("[%s]\n%s\n\n", strings.ToUpper(msg.Role), msg.Content)
		}
		return nil
	},
}

var conversationsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a conversation",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid conversation ID %q: %w", args[0], err)
		}
		if err := client.DeleteConversation(ctx, id); err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
		fmt.Printf("✓ Deleted %s\n", id)
		return nil
	},
}

func init() {
	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
}
