package db

import (
	"fmt"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/in-nis/academy-grid/internal/grid"
	"github.com/in-nis/academy-grid/internal/models"
)

var DB *gorm.DB

func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(slog.Default()),
	})
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(DB); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database connected and migrated")
}

// Migrate creates the cell and time tables of every grid shape.
// Index names carry the table name because several tables share one model.
func Migrate(db *gorm.DB) error {
	for _, shape := range grid.Shapes {
		if err := db.Table(shape.CellTable).AutoMigrate(&models.Cell{}); err != nil {
			return fmt.Errorf("migrate %s: %w", shape.CellTable, err)
		}
		if err := db.Table(shape.TimeTable).AutoMigrate(&models.TimeRow{}); err != nil {
			return fmt.Errorf("migrate %s: %w", shape.TimeTable, err)
		}

		stmts := []string{
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_key ON %s (academy_id, \"time\", day, category)", shape.CellTable, shape.CellTable),
			fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_scope_time ON %s (academy_id, \"time\")", shape.TimeTable, shape.TimeTable),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index %s: %w", shape.Name, err)
			}
		}
	}
	return nil
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
