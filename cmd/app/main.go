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

	"paperround/cmd"
	"paperround/internal/adapters/out/postgres"
	"paperround/internal/adapters/out/sqlite/sessionstore"
	"paperround/internal/platform/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "paperround"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	location, err := configs.Location()
	if err != nil {
		log.Fatalf("Error loading time zone: %v", err)
	}

	shutdownTracing, err := otel.Setup(ctx, otel.Options{
		ServiceName: serviceName,
		Endpoint:    configs.OTelEndpoint,
		Enabled:     configs.OTelEnabled,
	})
	if err != nil {
		log.Fatalf("Error setting up tracing: %v", err)
	}

	gormDB := openDatabase(configs)

	sessions, err := sessionstore.Open(ctx, configs.SessionDBPath)
	if err != nil {
		log.Fatalf("Error opening session store: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, sessions, location, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Recover())
	if err = app.CreateServer().Register(ctx, e); err != nil {
		log.Fatalf("Error registering routes: %v", err)
	}

	go func() {
		logger.Info("HTTP server starting", "port", configs.HTTPPort, "time_zone", location.String())
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", startErr)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
	jobManager.StopAll()
	if err = sessions.Close(); err != nil {
		logger.Error("Session store close", "error", err)
	}
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracing shutdown", "error", err)
	}
}

func openDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpg.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}
