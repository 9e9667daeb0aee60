package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	fulfillmenthttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  configs.LogLevel,
		Format: configs.LogFormat,
		Output: configs.LogOutput,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, log); err != nil {
		log.Error("Service stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, log *zap.Logger) error {
	db, err := openDatabase(configs, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	var redisClient redis.UniversalClient
	if configs.HasChannel("redis") {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
			DB:       configs.RedisDB,
		})
		defer func() {
			_ = redisClient.Close()
		}()
	}

	app, err := cmd.NewCompositionRoot(configs, db, redisClient, log)
	if err != nil {
		return err
	}

	if err = ensureSystemActor(ctx, app, configs); err != nil {
		return fmt.Errorf("provision system actor: %w", err)
	}

	jobManager := jobs.NewJobManager(jobs.Schedules{
		Replenishment:  configs.ReplenishmentSchedule,
		OverdueRefresh: configs.OverdueRefreshSchedule,
	}, app.CreateCheckAndGenerateDraftOrdersCommandHandler(), app.CreateRefreshOverdueInvoicesCommandHandler(), log)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	server := fulfillmenthttp.NewServer(log)
	server.AddCheck("database", sqlDB.PingContext)
	if redisClient != nil {
		server.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	return startWebServer(ctx, server, configs.HTTPPort, log)
}

func openDatabase(configs cmd.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(log.Named("sql"), logger.GormLevel(configs.SQLLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(configs.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(configs.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(configs.DBConnMaxLifetime)

	return db, nil
}

func ensureSystemActor(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config) error {
	actorID, err := configs.SystemActor()
	if err != nil {
		return err
	}
	command, err := commands.NewEnsureSystemActorCommand(actorID, configs.SystemActorName, configs.SystemActorEmail)
	if err != nil {
		return err
	}
	return app.CreateEnsureSystemActorCommandHandler().Handle(ctx, command)
}

func startWebServer(ctx context.Context, server *fulfillmenthttp.Server, port string, log *zap.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	server.Register(e)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", port))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
