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

	"ordering/cmd"
	"ordering/internal/adapters/in/http/apidocs"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if _, err = apidocs.Load(context.Background()); err != nil {
		return fmt.Errorf("invalid API document: %w", err)
	}

	gormDB, err := openDatabase(configs, logger)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := newPublisher(configs, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, prometheus.DefaultRegisterer, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	return startWebServer(app, configs.HTTPPort, logger)
}

// openDatabase returns nil for in-memory storage.
func openDatabase(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	if configs.Storage == cmd.StorageMemory {
		logger.Warn("Using in-memory storage; orders are lost on restart")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = orderrepo.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	if configs.KafkaBrokers == "" {
		logger.Info("KAFKA_BROKERS is empty; domain events are logged only")
		return kafka.NewLogEventPublisher(logger), func() {}, nil
	}

	writer, err := kafka.NewWriter(configs.KafkaBrokers, configs.KafkaOrderEventsTopic)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure kafka: %w", err)
	}

	publisher := kafka.NewKafkaEventPublisher(writer, kafka.NewPublisherMetrics(prometheus.DefaultRegisterer))
	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("Failed to close kafka writer", "error", closeErr)
		}
	}, nil
}

func startWebServer(app cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))

	app.CreateHTTPServer().Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
