package main

import (
	"log/slog"
	"time"

	"github.com/postpulse/postpulse/internal/datasource"
	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/postpulse/postpulse/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int
	var noBrowser bool
	var allowCORS bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		Long: `Start the HTTP server backing the analytics dashboard.

Serves the recommendation API under /api/ and opens the dashboard in your
browser. The server binds to loopback only.

Endpoints:
  GET /api/health                          Backend reachability
  GET /api/recommendations/{year}/{month}  Daily recommendations (?seed= for reproducible output)
  GET /api/summary/{year}/{month}          Month KPIs for the dashboard
  GET /api/reports/{year}/{month}          Posting plan as HTML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			cors := allowCORS
			if !cmd.Flags().Changed("cors") && cfg.Server.AllowCORS != nil {
				cors = *cfg.Server.AllowCORS
			}

			svc, src := buildService(cfg)
			srv, err := webserver.New(webserver.Config{
				Port:      cfg.Server.Port,
				Store:     svc,
				AllowCORS: cors,
				NoBrowser: noBrowser,
			})
			if err != nil {
				return err
			}

			// Prefetch the current month so the first dashboard load is warm.
			if cached, ok := src.(*datasource.CachedSource); ok {
				go func() {
					y, m, _ := time.Now().Date()
					if err := cached.Warm(cmd.Context(), y, []time.Month{m}); err != nil {
						slog.Warn("cache warmup failed", "error", err)
					}
				}()
			}

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default: from config)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the dashboard in a browser")
	cmd.Flags().BoolVar(&allowCORS, "cors", false, "Allow cross-origin requests (for a separate dashboard dev server)")

	return cmd
}
