package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"layoutkit/internal/ipc"
	"layoutkit/internal/logging"
	"layoutkit/internal/preflight"
	"layoutkit/internal/propstore"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local property database over a Unix socket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(ctx.loggerValue(), "serve")

			if failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg)); len(failed) > 0 {
				details := make([]string, 0, len(failed))
				for _, r := range failed {
					details = append(details, fmt.Sprintf("%s: %s", r.Name, r.Detail))
				}
				return errors.New("preflight failed: " + strings.Join(details, "; "))
			}

			store, err := propstore.Open(cfg)
			if err != nil {
				return fmt.Errorf("open property store: %w", err)
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := ipc.NewServer(runCtx, cfg.SocketPath(), ipc.StoreBackend{DB: store}, logger)
			if err != nil {
				return err
			}
			srv.Serve()
			defer srv.Close()

			logger.Info("property server started",
				logging.String("socket", srv.Path()),
				logging.String("store", store.Path()))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", store.Path(), srv.Path())

			<-runCtx.Done()
			logger.Info("property server stopping")
			return nil
		},
	}
}
