package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"dirsync/feature/dirsync"

	"github.com/spf13/cobra"
)

var (
	// Flags for the sync command
	dryRunSync      bool
	noDeleteSync    bool
	concurrencySync int
)

// errSyncFailed makes the process exit non-zero after a failed run.
var errSyncFailed = errors.New("sync failed")

// syncCmd runs one sync and prints its envelope.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync",
	Long: `Reads the directory and the shared contacts, then creates, updates and
deletes contacts until the contacts mirror the directory.

The result envelope is printed as JSON. The exit code is 1 when the run failed.

Examples:
  # Regular run
  dirsync sync

  # Show what would change
  dirsync sync --dry-run

  # Never delete contacts in this run
  dirsync sync --no-delete --concurrency 4`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute the plan without writing contacts")
	syncCmd.Flags().BoolVar(&noDeleteSync, "no-delete", false, "Keep contacts missing from the directory")
	syncCmd.Flags().IntVar(&concurrencySync, "concurrency", 0, "In-flight contact writes per phase (overrides SYNC_CONCURRENCY)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	if cmd.Flags().Changed("concurrency") {
		cfg.Sync.Concurrency = concurrencySync
	}

	svc, err := newService(cfg, l)
	if err != nil {
		return err
	}

	resp := svc.Run(cmd.Context(), dirsync.Event{DryRun: dryRunSync, KeepRemoved: noDeleteSync})

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if !resp.OK() {
		return errSyncFailed
	}
	return nil
}
