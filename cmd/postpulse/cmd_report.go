package main

import (
	"fmt"
	"os"
	"time"

	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var monthFlag string
	var outPath string
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a posting plan for a month",
		Long: `Render the month's recommendations as a posting-plan document.

The default output is markdown on stdout. Use --html for HTML and --out to
write to a file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonth(monthFlag, time.Now)
			if err != nil {
				return err
			}

			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			svc, _ := buildService(cfg)

			var out []byte
			if asHTML {
				out, err = svc.Report(cmd.Context(), year, month)
				if err != nil {
					return fmt.Errorf("rendering report: %w", err)
				}
			} else {
				md, err := svc.ReportMarkdown(cmd.Context(), year, month)
				if err != nil {
					return fmt.Errorf("rendering report: %w", err)
				}
				out = []byte(md)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, out, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath) //nolint:errcheck
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out)) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "Month to render as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of markdown")

	return cmd
}
