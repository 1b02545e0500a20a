package main

import (
	"fmt"
	"time"

	"github.com/postpulse/postpulse/internal/history"
	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/postpulse/postpulse/internal/spinner"
	"github.com/spf13/cobra"
)

var snapshotDir string

func newSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage offline engagement snapshots",
		Long: `Manage the offline snapshot store.

Snapshots keep fetched months of engagement data on disk so recommendations
still work when the analytics backend is unreachable. The serve and recommend
commands refresh snapshots automatically on every successful fetch.`,
	}

	cmd.PersistentFlags().StringVar(&snapshotDir, "dir", "",
		"Snapshot directory (default: from config)")

	cmd.AddCommand(newSnapshotListCommand())
	cmd.AddCommand(newSnapshotFetchCommand())
	cmd.AddCommand(newSnapshotClearCommand())

	return cmd
}

func newSnapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored months",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := snapshotStore()
			if err != nil {
				return err
			}

			months, err := store.List()
			if err != nil {
				return fmt.Errorf("listing snapshots: %w", err)
			}
			if len(months) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots stored.") //nolint:errcheck
				return nil
			}
			for _, m := range months {
				fmt.Fprintln(cmd.OutOrStdout(), m) //nolint:errcheck
			}
			return nil
		},
	}
}

func newSnapshotFetchCommand() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a month from the backend and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonth(monthFlag, time.Now)
			if err != nil {
				return err
			}

			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			store, err := snapshotStore()
			if err != nil {
				return err
			}

			stopSpinner := spinner.MaybeStart(cmd.ErrOrStderr(), "Fetching engagement data...")
			days, err := buildSource(cfg).HistoricalDays(cmd.Context(), year, month)
			stopSpinner()
			if err != nil {
				return &BackendError{Message: fmt.Sprintf("fetching %d-%02d: %v", year, int(month), err)}
			}
			if err := store.Save(year, int(month), days); err != nil {
				return fmt.Errorf("saving snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d day(s) for %d-%02d\n", len(days), year, int(month)) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "Month to fetch as YYYY-MM (default: current month)")

	return cmd
}

func newSnapshotClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := snapshotStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clearing snapshots: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshots cleared.") //nolint:errcheck
			return nil
		},
	}
}

// snapshotStore resolves the snapshot directory from the flag or config.
func snapshotStore() (*history.Store, error) {
	dir := snapshotDir
	if dir == "" {
		cfg, err := projectconfig.Load(".")
		if err != nil {
			return nil, err
		}
		dir = cfg.Snapshot.Dir
	}
	if dir == "" {
		return nil, fmt.Errorf("snapshots are disabled: no directory configured")
	}
	return history.NewStore(dir), nil
}
