package main

import (
	"context"
	"log"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/alert"
	"github.com/fastygo/todo/internal/config"
	"github.com/fastygo/todo/internal/countdown"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/todo/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/todo/internal/infrastructure/redis"
	"github.com/fastygo/todo/internal/middleware"
	"github.com/fastygo/todo/internal/router"
	"github.com/fastygo/todo/internal/services/notify"
	"github.com/fastygo/todo/internal/services/lifecycle"
	"github.com/fastygo/todo/internal/theme"
	"github.com/fastygo/todo/pkg/httpcontext"
	"github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository"
	boltRepo "github.com/fastygo/todo/repository/bolt"
	pgRepo "github.com/fastygo/todo/repository/postgres"
	redisRepo "github.com/fastygo/todo/repository/redis"
	"github.com/fastygo/todo/usecase"
	taskUC "github.com/fastygo/todo/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		zapLogger.Fatal("invalid timezone", zap.Error(err))
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hooks := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	hooks.Listen(appCtx, cancel)

	var redisClient *goRedis.Client
	if cfg.Store.Driver == config.DriverRedis || cfg.Notify.RedisChannel != "" {
		redisClient, err = redisInfra.NewClient(appCtx, cfg.Redis, zapLogger)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		hooks.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	store, err := openStore(appCtx, cfg, redisClient, hooks, zapLogger)
	if err != nil {
		zapLogger.Fatal("task store unavailable", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	mon := monitor.New(store, cfg.Store.Driver, cfg.Store.HealthInterval, zapLogger)
	mon.Start()
	hooks.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	feed := notify.NewFeed(cfg.Notify.FeedSize)
	sinks := notify.Fanout{feed, notify.NewLogNotifier(zapLogger)}
	if redisClient != nil && cfg.Notify.RedisChannel != "" {
		sinks = append(sinks, notify.NewRedisPublisher(redisClient, cfg.Notify.RedisChannel, zapLogger))
	}
	var notifier usecase.Notifier = sinks

	manager := taskUC.New(store, notifier, zapLogger, taskUC.Options{
		Location:              loc,
		Selection:             cfg.Features.Selection,
		Toasts:                cfg.Features.Toasts,
		BulkDeleteConcurrency: cfg.Store.BulkDeleteConcurrency,
	})

	alerts := alert.New(notifier, alert.Config{
		WindowDays: cfg.Alert.WindowDays,
		Location:   loc,
	}, zapLogger)
	manager.OnChange(func(tasks []domain.Task) { alerts.Observe(tasks) })

	if err := manager.Load(appCtx); err != nil {
		zapLogger.Error("initial load failed", zap.Error(err))
	}

	engine := countdown.NewEngine(manager, countdown.EngineConfig{
		Interval: cfg.Countdown.TickInterval,
		Location: loc,
	}, zapLogger)
	engine.Start()
	hooks.Register("countdown", func(ctx context.Context) error {
		engine.Stop(ctx)
		return nil
	})

	palette, ok := theme.Lookup(cfg.UI.Theme)
	if !ok {
		zapLogger.Warn("unknown theme, using default", zap.String("theme", cfg.UI.Theme))
		palette, _ = theme.Lookup(theme.DefaultName)
	}

	ctxAdapter := httpcontext.NewAdapter(appCtx, cfg.Context.RequestTimeout)
	presenter := apiHandler.Presenter{
		Manager:    manager,
		Engine:     engine,
		Palette:    palette,
		WindowDays: cfg.Alert.WindowDays,
	}
	settings := transport.SettingsView{
		Theme:  palette,
		Themes: theme.Names(),
		Features: map[string]bool{
			"selection": cfg.Features.Selection,
			"toasts":    cfg.Features.Toasts,
		},
		WindowDays: cfg.Alert.WindowDays,
		Tick:       cfg.Countdown.TickInterval.String(),
		Timezone:   loc.String(),
		Driver:     cfg.Store.Driver,
	}

	handlers := router.Handlers{
		Task:         apiHandler.NewTaskHandler(presenter, ctxAdapter, zapLogger),
		Selection:    apiHandler.NewSelectionHandler(manager, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(feed, ctxAdapter, zapLogger),
		Settings:     apiHandler.NewSettingsHandler(settings, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(mon, engine, manager, ctxAdapter, zapLogger),
	}

	server := &fasthttp.Server{
		Handler:      router.New(handlers, middleware.Recover(zapLogger), middleware.AccessLog(zapLogger)),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("store", cfg.Store.Driver))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	hooks.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := hooks.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// openStore connects the configured task store backend and registers its teardown.
func openStore(ctx context.Context, cfg *config.Config, redisClient *goRedis.Client, hooks *lifecycle.Manager, zapLogger *zap.Logger) (repository.TaskStore, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, zapLogger); err != nil {
			return nil, err
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
		if err != nil {
			return nil, err
		}
		hooks.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		return pgRepo.NewTaskStore(pool), nil

	case config.DriverRedis:
		return redisRepo.NewTaskStore(redisClient, cfg.Redis.Namespace), nil

	default:
		store, err := boltRepo.Open(cfg.Bolt.Path, cfg.Bolt.Bucket)
		if err != nil {
			return nil, err
		}
		hooks.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		return store, nil
	}
}
