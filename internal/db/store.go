package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/in-nis/academy-grid/internal/grid"
	"github.com/in-nis/academy-grid/internal/models"
)

// GridStore keeps grid cells and time rows in one table pair per shape.
type GridStore struct {
	db *gorm.DB
}

func NewGridStore(db *gorm.DB) *GridStore {
	return &GridStore{db: db}
}

func (s *GridStore) ListTimes(ctx context.Context, scope grid.Scope) ([]string, error) {
	var rowTimes, cellTimes []string
	if err := s.db.WithContext(ctx).Table(scope.Shape.TimeTable).
		Where("academy_id = ?", scope.AcademyID).
		Distinct().Pluck("time", &rowTimes).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", scope.Shape.TimeTable, err)
	}
	if err := s.db.WithContext(ctx).Table(scope.Shape.CellTable).
		Where("academy_id = ?", scope.AcademyID).
		Distinct().Pluck("time", &cellTimes).Error; err != nil {
		return nil, fmt.Errorf("list %s times: %w", scope.Shape.CellTable, err)
	}
	return append(rowTimes, cellTimes...), nil
}

func (s *GridStore) AddTime(ctx context.Context, scope grid.Scope, label string) error {
	row := models.TimeRow{AcademyID: scope.AcademyID, Time: label}
	return s.db.WithContext(ctx).Table(scope.Shape.TimeTable).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (s *GridStore) RemoveTime(ctx context.Context, scope grid.Scope, label string, cascade bool) error {
	where := map[string]interface{}{"academy_id": scope.AcademyID, "time": label}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(scope.Shape.TimeTable).Where(where).Delete(&models.TimeRow{}).Error; err != nil {
			return fmt.Errorf("delete time row: %w", err)
		}
		if !cascade {
			return nil
		}
		if err := tx.Table(scope.Shape.CellTable).Where(where).Delete(&models.Cell{}).Error; err != nil {
			return fmt.Errorf("delete cells at %s: %w", label, err)
		}
		return nil
	})
}

func (s *GridStore) ListCells(ctx context.Context, scope grid.Scope) ([]models.Cell, error) {
	var cells []models.Cell
	if err := s.db.WithContext(ctx).Table(scope.Shape.CellTable).
		Where("academy_id = ?", scope.AcademyID).
		Order("created_at, id").
		Find(&cells).Error; err != nil {
		return nil, err
	}
	return cells, nil
}

func (s *GridStore) FindCell(ctx context.Context, scope grid.Scope, key grid.Key) (*models.Cell, error) {
	var cell models.Cell
	err := s.db.WithContext(ctx).Table(scope.Shape.CellTable).
		Where(keyConditions(scope, key)).
		Order("created_at").
		First(&cell).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cell, nil
}

func (s *GridStore) InsertCell(ctx context.Context, scope grid.Scope, cell *models.Cell) error {
	return s.db.WithContext(ctx).Table(scope.Shape.CellTable).Create(cell).Error
}

func (s *GridStore) UpdateCell(ctx context.Context, scope grid.Scope, id, content, actorID string) error {
	res := s.db.WithContext(ctx).Table(scope.Shape.CellTable).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_by": actorID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cell %s no longer exists", id)
	}
	return nil
}

func (s *GridStore) DeleteCells(ctx context.Context, scope grid.Scope, key grid.Key) (int64, error) {
	res := s.db.WithContext(ctx).Table(scope.Shape.CellTable).
		Where(keyConditions(scope, key)).
		Delete(&models.Cell{})
	return res.RowsAffected, res.Error
}

// keyConditions leaves out the category for shapes that have none.
func keyConditions(scope grid.Scope, key grid.Key) map[string]interface{} {
	cond := map[string]interface{}{
		"academy_id": scope.AcademyID,
		"time":       key.Time,
		"day":        key.Day,
	}
	if scope.Shape.HasCategory() {
		cond["category"] = key.Category
	}
	return cond
}
