package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/onboarding-tracker/internal/adapters/export/xlsx"
	mongorepo "github.com/ogurasousui/onboarding-tracker/internal/adapters/repository/mongodb"
	"github.com/ogurasousui/onboarding-tracker/internal/adapters/repository/postgres"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/config"
	mongodb "github.com/ogurasousui/onboarding-tracker/internal/platform/db/mongodb"
	pg "github.com/ogurasousui/onboarding-tracker/internal/platform/db/postgres"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/logger"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		outPath    = flag.String("out", "onboarding.xlsx", "output workbook path")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "onboarding-export")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	n, err := export(ctx, cfg, zl, *outPath)
	if err != nil {
		zl.Fatal("export failed", zap.Error(err))
	}
	zl.Info("export written", zap.String("path", *outPath), zap.Int("workers", n))
}

func export(ctx context.Context, cfg *config.Config, zl *zap.Logger, outPath string) (int, error) {
	var (
		repo worker.Repository
		opts []worker.Option
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo, zl)
		if err != nil {
			return 0, err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		repo = mongorepo.NewWorkerRepository(mongodb.Collection(client, cfg.Mongo))
	default:
		pool, err := pg.NewPool(ctx, cfg.Database, zl)
		if err != nil {
			return 0, err
		}
		defer pool.Close()
		repo = postgres.NewWorkerRepository(pool)
		opts = append(opts, worker.WithTransactionManager(pg.NewTransactionManager(pool, zl)))
	}

	svc := worker.NewService(repo, nil, nil, append(opts, worker.WithLogger(zl))...)
	workers, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}

	if err := writeFile(outPath, func(w io.Writer) error {
		return xlsx.WriteWorkers(w, workers)
	}); err != nil {
		return 0, err
	}
	return len(workers), nil
}

// writeFile は write の出力を path に保存します。失敗した場合は書きかけのファイルを残しません。
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
