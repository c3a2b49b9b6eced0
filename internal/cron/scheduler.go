package cron

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"github.com/in-nis/academy-grid/internal/config"
	"github.com/in-nis/academy-grid/internal/excel"
	"github.com/in-nis/academy-grid/internal/grid"
)

// StartJobs schedules the grid export when EXPORT_CRON is set. It returns a
// nil scheduler when exports are disabled.
func StartJobs(cfg *config.Config, svc *grid.Service) (*cron.Cron, error) {
	if cfg.ExportCron == "" || len(cfg.ExportAcademies) == 0 {
		slog.Info("grid export job disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.ExportCron, func() {
		slog.Info("running grid export job", "academies", cfg.ExportAcademies)
		n := ExportAll(context.Background(), svc, cfg.ExportAcademies, cfg.ExportDir)
		slog.Info("grid export job finished", "files", n)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule export %q: %w", cfg.ExportCron, err)
	}

	c.Start()
	return c, nil
}

// ExportAll writes one workbook per academy and table into dir and returns
// how many were written. A failing scope is logged and skipped.
func ExportAll(ctx context.Context, svc *grid.Service, academies []string, dir string) int {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("failed to create export dir", "dir", dir, "error", err)
		return 0
	}

	written := 0
	for _, academy := range academies {
		for _, shape := range grid.Shapes {
			scope := grid.NewScope(academy, shape)
			path := filepath.Join(dir, academy+"-"+shape.Name+".xlsx")
			if err := exportScope(ctx, svc, scope, path); err != nil {
				slog.Error("grid export failed", "scope", scope.String(), "error", err)
				continue
			}
			written++
		}
	}
	return written
}

func exportScope(ctx context.Context, svc *grid.Service, scope grid.Scope, path string) error {
	g, err := svc.Grid(ctx, scope)
	if err != nil {
		return err
	}
	f, err := excel.WriteGrid(g)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
