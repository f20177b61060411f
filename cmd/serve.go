package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/moodmixer/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP API and web page.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the moodmixer HTTP server",
	Long: `Serve the JSON API under /api/v1, a recommendation page at /,
Prometheus metrics at /metrics and a health check at /healthz.

Each client keeps its own mood, keyed by the "session" query parameter or
the X-Session-ID header.

Examples:
  moodmixer serve --addr :9000
  moodmixer serve --rate-limit 60 --cors-origins https://example.com`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		srv, err := web.NewServer(cfg, storeManager)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, cfg.ListenAddr)
	},
}
