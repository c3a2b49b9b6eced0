package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cell is one piece of grid content keyed by academy + time + day (+ category).
// The same struct backs every grid table; the table name is chosen per scope.
type Cell struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AcademyID string    `gorm:"not null;size:64" json:"academy_id"`
	Time      string    `gorm:"not null;size:5" json:"time"`
	Day       int       `gorm:"not null" json:"day"` // 0=Mon .. 4=Fri
	Category  string    `gorm:"not null;default:'';size:8" json:"category,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedBy string    `gorm:"size:128" json:"created_by"`
	UpdatedBy string    `gorm:"size:128" json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cell) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TimeRow registers a grid row so it shows up before any cell is written.
type TimeRow struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	AcademyID string    `gorm:"not null;size:64" json:"academy_id"`
	Time      string    `gorm:"not null;size:5" json:"time"`
	CreatedAt time.Time `json:"created_at"`
}
