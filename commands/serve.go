package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leasedesk/config"
	"leasedesk/jobs"
	"leasedesk/routes"
	"leasedesk/services/notification"

	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Chạy HTTP API, websocket và cron jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			router, m, c := config.InitApp(a.cfg)
			j := jobs.New(a.registry.Contracts, a.registry.Stats, notification.NewMelodyService(m), a.log)
			routes.SetupRoutes(router, a.registry, routes.Options{UploadDir: a.localUploads, Broadcaster: j, WebSocket: m})

			if err := jobs.InitCronJobs(c, j); err != nil {
				return err
			}
			defer c.Stop()

			srv := &http.Server{Addr: ":" + a.cfg.Port, Handler: router}
			errCh := make(chan error, 1)
			go func() {
				a.log.Info("Server starting on port %s...", a.cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			m.Close()
			return srv.Shutdown(shutdownCtx)
		},
	}
	return cmd
}
