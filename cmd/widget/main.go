package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/class_widget/internal/app"
	"github.com/Freeeeeet/class_widget/internal/booking"
	"github.com/Freeeeeet/class_widget/internal/config"
	"github.com/Freeeeeet/class_widget/internal/controller"
	"github.com/Freeeeeet/class_widget/internal/locale"
	"github.com/Freeeeeet/class_widget/internal/source"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if err := cfg.RequireTelegram(); err != nil {
		logger.Fatal("Telegram is not configured", zap.Error(err))
	}

	logger.Info("Starting class widget",
		zap.String("environment", cfg.Environment),
		zap.String("locale", cfg.Locale),
		zap.Bool("env_file", cfg.EnvFileLoaded),
		zap.Int("token_length", len(cfg.TelegramToken)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open catalog source", zap.Error(err))
	}
	defer closeSource()

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	api := booking.NewClient(cfg.APIBaseURL, nil)
	botController := controller.NewBotController(ctx, botInstance, src, api, locale.For(cfg.Locale), cfg.Visitor, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// меню команд не обязательно для работы
		logger.Warn("Continuing without commands menu", zap.Error(err))
	}

	refresher := app.NewRefresher(src, botController.Sessions(), cfg.RefreshInterval, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		refresher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return botController.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Class widget stopped with error", zap.Error(err))
		return
	}
	logger.Info("Class widget stopped")
}

// openSource выбирает источник каталога: Postgres, если задан DB_DSN, иначе JSON-файл
func openSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (source.Source, func(), error) {
	dsn := cfg.GetDBDSN()
	if dsn == "" {
		logger.Info("Using file catalog", zap.String("path", cfg.CatalogFile))
		return source.NewFile(cfg.CatalogFile), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("Connected to database")

	if cfg.Migrations {
		migrator, err := app.NewMigrator(pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := migrator.Run(ctx); err != nil {
			migrator.Close()
			pool.Close()
			return nil, nil, err
		}
		migrator.Close()
	}

	return source.NewPostgres(pool), pool.Close, nil
}
