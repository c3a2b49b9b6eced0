//go:generate swag init -d ../../internal/api,../../internal/auth,../../internal/grid,../../internal/models -g router.go -o ../../docs
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/in-nis/academy-grid/internal/api"
	"github.com/in-nis/academy-grid/internal/cache"
	"github.com/in-nis/academy-grid/internal/config"
	"github.com/in-nis/academy-grid/internal/cron"
	"github.com/in-nis/academy-grid/internal/db"
	"github.com/in-nis/academy-grid/internal/grid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using system env")
	}

	cfg := config.Load()

	db.InitDB(cfg.DBUrl)

	policy, err := grid.ParseRemovalPolicy(cfg.RowRemovalPolicy)
	if err != nil {
		slog.Error("invalid row removal policy", "error", err)
		os.Exit(1)
	}

	opts := []grid.Option{grid.WithRemovalPolicy(policy)}
	if rdb := cache.Connect(context.Background(), cfg.RedisAddr); rdb != nil {
		defer rdb.Close()
		opts = append(opts, grid.WithCache(cache.NewRedisCache(rdb, cfg.GridCacheTTL)))
	}
	svc := grid.NewService(db.NewGridStore(db.DB), opts...)

	r := api.SetupRouter(cfg, svc, db.PingDB)

	// Start cron jobs
	jobs, err := cron.StartJobs(cfg, svc)
	if err != nil {
		slog.Error("failed to start cron jobs", "error", err)
		os.Exit(1)
	}
	if jobs != nil {
		defer jobs.Stop()
	}

	slog.Info("server running", "port", cfg.Port, "row_removal_policy", svc.RemovalPolicy())
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
