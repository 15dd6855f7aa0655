package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		handler := api.NewPlannerHandler(api.PlannerHandlerConfig{
			RebuildPlan:         app.Container.RebuildPlanHandler,
			UpdateSessionStatus: app.Container.UpdateSessionStatusHandler,
			GetLatestPlan:       app.Container.GetLatestPlanHandler,
			GetMetrics:          app.Container.GetMetricsHandler,
			ExportICS:           app.Container.ExportICSHandler,
			CalDAVExporter:      app.Container.CalDAVExporter,
			Owner:               app.OwnerID,
			Logger:              app.Container.Logger,
			Metrics:             app.Container.Metrics,
		})

		cfg := api.DefaultServerConfig()
		cfg.Addr = app.Container.Config.HTTPAddr
		server := api.NewServer(cfg, handler, app.Container.Health, app.Container.Logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
