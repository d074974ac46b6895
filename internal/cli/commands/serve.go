package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Jayk56/dslyrics/internal/history"
	"github.com/Jayk56/dslyrics/internal/service"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr      string
	NoHistory bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer as an HTTP API",
		Long: `Start a local HTTP server exposing the analysis pipeline.

Endpoints:
- POST /api/v1/analyze       analyze a sheet posted as {"name", "lyrics"}
- GET  /api/v1/rules         lint rule catalog
- GET  /api/v1/reports       past analyses (when history is enabled)
- GET  /api/v1/reports/{id}  one stored report
- GET  /healthz              liveness probe

Analyses are persisted to the history store unless --no-history is set.`,
		Example: `  # Serve on the default address
  dslyrics serve

  # Custom listen address
  dslyrics serve --addr 127.0.0.1:9090

  # Without persisting analyses
  dslyrics serve --no-history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default: :8080)")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Don't persist analyses to the history store")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// CLI flags override config file
	addr := cmdCtx.Cfg.Serve.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	pipe, err := cmdCtx.newPipeline()
	if err != nil {
		return err
	}

	// A broken history database should not keep the API down; analyses
	// simply stop persisting.
	var store *history.Store
	if !opts.NoHistory {
		store, err = cmdCtx.openHistory(cmd.Context())
		if err != nil {
			cmdCtx.Logger.Error("history store unavailable", "error", err)
			r.Warning(fmt.Sprintf("History disabled: %v", err))
			store = nil
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	srv := service.NewServer(service.Config{
		Addr:     addr,
		Pipeline: pipe,
		Store:    store,
		Logger:   cmdCtx.Logger,
	})

	r.Printf("Starting API server on http://%s\n", displayAddr(addr))
	r.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}

// displayAddr turns a listen address like ":8080" into something a
// browser accepts.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
