package cmd

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "kjess/corpora"

// selfupdateCmd replaces the running binary with the latest release.
var selfupdateCmd = &cobra.Command{
	Use:   "selfupdate",
	Short: "Update corpora to the latest release",
	RunE:  runSelfupdate,
}

func runSelfupdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepo)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("Already up to date (version %s)\n", current)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	fmt.Printf("Updating %s → %s...\n", current, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Printf("✓ Updated to version %s\n", latest.Version())
	return nil
}
