// File: /cli/serve.go
package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"carservice-api/database"
	"carservice-api/jobs"
	"carservice-api/routes"
	"carservice-api/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder check job",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newReminderService wires the mailer and, when a broker is configured, the
// MQTT publisher. The returned func releases the publisher.
func newReminderService(db *gorm.DB) (*services.ReminderService, func(), error) {
	mailer := services.NewEmailService(cfg)

	var publisher services.ReminderPublisher
	closePublisher := func() {}
	if cfg.MQTTBrokerURL != "" {
		mqttPublisher, err := services.NewMQTTPublisher(cfg)
		if err != nil {
			return nil, nil, err
		}
		publisher = mqttPublisher
		closePublisher = mqttPublisher.Close
	}

	reminders := services.NewReminderService(db, mailer, publisher, services.SystemClock{}, services.ReminderOptions{
		UpcomingWindow: cfg.UpcomingWindow,
		NotifyThrottle: cfg.NotifyThrottle,
		FrontendURL:    cfg.FrontendURL,
	})
	return reminders, closePublisher, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := database.SeedData(db); err != nil {
		log.WithError(err).Warn("Failed to seed database")
	}

	reminders, closePublisher, err := newReminderService(db)
	if err != nil {
		return err
	}
	defer closePublisher()

	if cfg.ReminderCheckEnabled {
		job := jobs.NewReminderCheckJob(reminders, cfg.ReminderCheckInterval)
		job.Start(ctx)
		defer job.Stop()
	}

	gin.SetMode(cfg.GinMode)
	router := routes.NewRouter(db, cfg, routes.Dependencies{
		Mailer:    services.NewEmailService(cfg),
		Reminders: reminders,
		Clock:     services.SystemClock{},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("Starting car service API")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
