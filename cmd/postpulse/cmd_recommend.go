package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/postpulse/postpulse/internal/spinner"
	"github.com/postpulse/postpulse/internal/webapi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// calendarCellWidth fits "28 ▪100" plus padding.
const calendarCellWidth = 9

func newRecommendCommand() *cobra.Command {
	var monthFlag string
	var seed int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show the best days to post for a month",
		Long: `Score every day of a month and print a posting calendar.

Past days are scored from what actually happened; today and future days get
predictions blended from your channel's history and its weekly rhythm.

Predicted scores include a small random variation. Pass --seed to make the
output reproducible.`,
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
			stopSpinner := spinner.MaybeStart(cmd.ErrOrStderr(), "Scoring days...")
			resp, err := svc.Month(cmd.Context(), year, month, seed)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("generating recommendations: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			printCalendar(out, year, month, resp)
			printBestDays(out, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "Month to score as YYYY-MM (default: current month)")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Seed for reproducible predictions (negative: random)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")

	return cmd
}

// printCalendar renders the month as a week grid. Narrow terminals get a
// plain list instead.
func printCalendar(w io.Writer, year int, month time.Month, resp *webapi.MonthResponse) {
	fmt.Fprintf(w, "\n%s %d\n\n", month, year) //nolint:errcheck

	if terminalWidth() < calendarCellWidth*7 {
		for _, d := range resp.Days {
			marker := " "
			if d.Status == "today" {
				marker = "*"
			}
			fmt.Fprintf(w, "%s%2d %-9s %3.0f\n", marker, d.Date, d.Weekday, d.Score) //nolint:errcheck
		}
		return
	}

	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		fmt.Fprint(w, padRight(name, calendarCellWidth)) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck

	// Blank cells up to the weekday of the 1st.
	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	fmt.Fprint(w, strings.Repeat(" ", offset*calendarCellWidth)) //nolint:errcheck

	col := offset
	for _, d := range resp.Days {
		cell := fmt.Sprintf("%2d %3.0f", d.Date, d.Score)
		if d.Status == "today" {
			cell = fmt.Sprintf("%2d*%3.0f", d.Date, d.Score)
		}
		fmt.Fprint(w, padRight(cell, calendarCellWidth)) //nolint:errcheck
		col++
		if col == 7 {
			col = 0
			fmt.Fprintln(w) //nolint:errcheck
		}
	}
	if col != 0 {
		fmt.Fprintln(w) //nolint:errcheck
	}
}

// printBestDays lists the top upcoming days with their times and reasoning.
func printBestDays(w io.Writer, resp *webapi.MonthResponse) {
	fmt.Fprintln(w, "\nBest upcoming days:") //nolint:errcheck

	printed := 0
	for _, d := range bestUpcomingDays(resp.Days) {
		fmt.Fprintf(w, "  %-9s %2d  score %3.0f (confidence %.0f%%)  post at %s\n", //nolint:errcheck
			d.Weekday, d.Date, d.Score, d.Confidence, strings.Join(d.Times, ", "))
		fmt.Fprintf(w, "            %s\n", d.Reasoning) //nolint:errcheck
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(w, "  (no upcoming days in this month)") //nolint:errcheck
	}
}

// bestUpcomingDays returns up to three non-past days, highest score first.
// Ties keep calendar order.
func bestUpcomingDays(days []webapi.DayResponse) []webapi.DayResponse {
	var upcoming []webapi.DayResponse
	for _, d := range days {
		if d.Status != "past" {
			upcoming = append(upcoming, d)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Score > upcoming[j].Score
	})
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}
	return upcoming
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
