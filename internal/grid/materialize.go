package grid

import (
	"github.com/in-nis/academy-grid/internal/models"
)

// MergeSeparator joins the contents of cells that landed on the same slot.
const MergeSeparator = ", "

// Row is one time label of a grid. Slots is indexed [day][category].
type Row struct {
	Time  string     `json:"time"`
	Slots [][]string `json:"slots"`
}

// Grid is the dense weekly view of a scope. It is derived on every read.
type Grid struct {
	Table      string   `json:"table"`
	AcademyID  string   `json:"academy_id"`
	Days       int      `json:"days"`
	Categories []string `json:"categories,omitempty"`
	Rows       []Row    `json:"rows"`
}

// At returns the content of one slot, or "" when the slot does not exist.
func (g Grid) At(label string, day int, category string) string {
	idx := 0
	if len(g.Categories) > 0 {
		idx = -1
		for i, c := range g.Categories {
			if c == category {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ""
		}
	}
	for _, r := range g.Rows {
		if r.Time != label {
			continue
		}
		if day < 0 || day >= len(r.Slots) {
			return ""
		}
		return r.Slots[day][idx]
	}
	return ""
}

// Materialize joins ordered labels against raw cells. Exactly one row is
// produced per label, in the given order. Cells sharing a slot are
// concatenated with MergeSeparator rather than overwritten; cells that do not
// fit the shape (unknown label, day or category) are ignored.
func Materialize(shape Shape, labels []string, cells []models.Cell) Grid {
	slots := shape.slots()

	rows := make([]Row, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		days := make([][]string, DayCount)
		for d := range days {
			days[d] = make([]string, len(slots))
		}
		rows[i] = Row{Time: label, Slots: days}
		index[label] = i
	}

	for _, c := range cells {
		ri, ok := index[c.Time]
		if !ok || c.Day < 0 || c.Day >= DayCount {
			continue
		}
		si := shape.slotIndex(c.Category)
		if si < 0 || c.Content == "" {
			continue
		}
		slot := &rows[ri].Slots[c.Day][si]
		if *slot == "" {
			*slot = c.Content
		} else {
			*slot += MergeSeparator + c.Content
		}
	}

	return Grid{
		Table:      shape.Name,
		Days:       DayCount,
		Categories: shape.Categories,
		Rows:       rows,
	}
}
