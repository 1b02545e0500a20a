package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/postpulse/postpulse/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .postpulse.yaml project config",
		Long: `Write a .postpulse.yaml with the default settings.

Use --interactive to run a guided wizard that asks about your analytics
backend, dashboard port, and snapshot directory.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided setup wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfg := projectconfig.New()
	if interactive {
		spec, err := wizard.RunProjectWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
		cfg = spec.ToConfig()
	}

	if err := projectconfig.Save(dir, cfg); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Initialized project:")                          //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", filepath.Join(dir, ".postpulse.yaml")) //nolint:errcheck

	return nil
}
