package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blockfill/pkg/api"
	"github.com/matzehuels/blockfill/pkg/session"
)

const (
	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 5 * time.Second

	// readHeaderTimeout bounds how long a client may take to send headers.
	readHeaderTimeout = 10 * time.Second
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve game sessions over HTTP",
		Long: `Serve game sessions as a JSON HTTP API.

Each POST /api/sessions creates an independent session; idle sessions expire
after server.session_ttl. See the api package documentation for all routes.`,
		Example: `  blockfill serve
  blockfill serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			defaults, err := cfg.GameOptions()
			if err != nil {
				return err
			}
			defaults.Logger = c.Logger

			ttl := cfg.Server.SessionTTL.Duration
			store := session.NewMemoryStore(ttl, cfg.Server.MaxSessions)
			srv := api.New(store, defaults, c.Logger)

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			printInfo("Listening on %s", StyleHighlight.Render(addr))
			printDetail("session ttl %s · max %d sessions", ttl, cfg.Server.MaxSessions)
			return runServer(cmd.Context(), httpSrv, srv, janitorInterval(ttl))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully. The
// session clock and janitor run alongside and stop with the server.
func runServer(ctx context.Context, httpSrv *http.Server, srv *api.Server, janitor time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		srv.RunClock(gctx, time.Second)
		return nil
	})
	g.Go(func() error {
		srv.RunJanitor(gctx, janitor)
		return nil
	})

	return g.Wait()
}

// janitorInterval sweeps expired sessions a few times per TTL.
func janitorInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}
