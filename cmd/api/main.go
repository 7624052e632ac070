package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/config"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	appHTTP "github.com/cmlabs-hris/clockin-console/internal/handler/http"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/database"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/hrclient"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/ticker"
	"github.com/cmlabs-hris/clockin-console/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/clockin-console/internal/service/attendance"
	settingsService "github.com/cmlabs-hris/clockin-console/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgresql.EnsureSettingsSchema(ctx, db); err != nil {
		fmt.Println("Error preparing schema:", err)
		os.Exit(1)
	}

	defaults := settings.UpdateClockWindowRequest{
		MorningStart:   cfg.ClockWindow.MorningStart,
		MorningEnd:     cfg.ClockWindow.MorningEnd,
		AfternoonStart: cfg.ClockWindow.AfternoonStart,
		AfternoonEnd:   cfg.ClockWindow.AfternoonEnd,
	}
	if err := defaults.Validate(); err != nil {
		fmt.Println("Invalid CLOCK_* defaults:", err)
		os.Exit(1)
	}

	settingsRepo := postgresql.NewSettingsRepository(db)
	settingsSvc := settingsService.NewSettingsService(db, settingsRepo, defaults.ToConfig(), cfg.App.SettingsCacheTTL)

	hrClient := hrclient.NewClient(cfg.HRAPI)
	attendanceSvc := attendanceService.NewAttendanceService(hrClient, settingsSvc, cfg.Location(), time.Now)

	clock := ticker.New(cfg.App.TickInterval)
	clock.Start()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, clock)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(cfg.App, attendanceHandler, settingsHandler)

	// No write timeout: countdown streams stay open
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("Shutting down", "signal", sig.String())

	// Closing tick channels ends every open stream before Shutdown waits on them
	clock.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
