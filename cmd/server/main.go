package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mongorepo "github.com/ogurasousui/onboarding-tracker/internal/adapters/repository/mongodb"
	"github.com/ogurasousui/onboarding-tracker/internal/adapters/repository/postgres"
	redisfeed "github.com/ogurasousui/onboarding-tracker/internal/adapters/redis"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"github.com/ogurasousui/onboarding-tracker/internal/core/notify"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/config"
	mongodb "github.com/ogurasousui/onboarding-tracker/internal/platform/db/mongodb"
	pg "github.com/ogurasousui/onboarding-tracker/internal/platform/db/postgres"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/dispatch"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/logger"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath        = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		bootstrapEmail    = flag.String("bootstrap-operator", "", "register an operator with this email before serving")
		bootstrapName     = flag.String("bootstrap-name", "Administrator", "display name of the bootstrap operator")
		bootstrapPassword = flag.String("bootstrap-password", "", "password of the bootstrap operator (defaults to BOOTSTRAP_PASSWORD env)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "onboarding-tracker")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(ctx, cfg, zl, bootstrap{
		email:    *bootstrapEmail,
		name:     *bootstrapName,
		password: firstNonEmpty(*bootstrapPassword, os.Getenv("BOOTSTRAP_PASSWORD")),
	}); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}

type bootstrap struct {
	email    string
	name     string
	password string
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger, boot bootstrap) error {
	dbPool, err := pg.NewPool(ctx, cfg.Database, zl)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool, zl)

	var (
		repo       worker.Repository
		workerOpts []worker.Option
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo, zl)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		mongoRepo := mongorepo.NewWorkerRepository(mongodb.Collection(client, cfg.Mongo))
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		repo = mongoRepo
	default:
		repo = postgres.NewWorkerRepository(dbPool)
		workerOpts = append(workerOpts, worker.WithTransactionManager(txManager))
	}

	center := notify.NewCenter(cfg.Notify.Limit)
	unsubscribe := center.Subscribe(func(state notify.State) {
		if len(state.Toasts) == 0 || !state.Toasts[0].Open {
			return
		}
		t := state.Toasts[0]
		zl.Debug("notification", zap.String("toast_id", t.ID), zap.String("title", t.Title), zap.String("variant", string(t.Variant)))
	})
	defer unsubscribe()

	dispatcher := dispatch.New(dispatch.Options{
		QueueSize: cfg.Dispatch.QueueSize,
		Workers:   cfg.Dispatch.Workers,
		Timeout:   cfg.Dispatch.Timeout,
		Logger:    zl.Named("dispatch"),
	})

	hub := worker.NewHub(repo, nil, zl.Named("hub"))
	sinks := []worker.EventSink{notify.NewWorkerSink(center), hub}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Redis.Enabled() {
		redisClient, err := redisfeed.NewClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		feed := redisfeed.NewChangeFeed(redisClient, cfg.Redis.Channel, zl)
		sinks = append(sinks, feed)
		g.Go(func() error { return feed.Run(gctx, hub) })
	}

	workerOpts = append(workerOpts, worker.WithEventSinks(sinks...), worker.WithLogger(zl.Named("worker")))
	workerSvc := worker.NewService(repo, dispatcher, nil, workerOpts...)

	authSvc := auth.NewService(postgres.NewOperatorRepository(dbPool), nil, auth.Config{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	})

	if boot.email != "" {
		if err := registerOperator(ctx, authSvc, boot, zl); err != nil {
			return err
		}
	}

	grpcServer := server.New(cfg.Server.ListenAddr, server.Dependencies{
		Workers: workerSvc,
		Watcher: hub,
		Auth:    authSvc,
		Logger:  zl.Named("grpc"),
	})

	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return grpcServer.Run(gctx) })

	err = g.Wait()

	completed, failed := dispatcher.Stats()
	zl.Info("shutdown complete", zap.Int64("writes_completed", completed), zap.Int64("writes_failed", failed))
	return err
}

func registerOperator(ctx context.Context, svc *auth.Service, boot bootstrap, zl *zap.Logger) error {
	op, err := svc.Register(ctx, auth.RegisterInput{Email: boot.email, Name: boot.name, Password: boot.password})
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		zl.Info("bootstrap operator already exists", zap.String("email", boot.email))
		return nil
	case err != nil:
		return err
	}
	zl.Info("bootstrap operator registered", zap.String("operator_id", op.ID), zap.String("email", op.Email))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
