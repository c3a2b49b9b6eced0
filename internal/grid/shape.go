package grid

// Categories used by the class and temporary schedules.
const (
	CategoryMain       = "D"
	CategorySupplement = "S"
)

// DayCount is the number of weekday columns (0=Mon .. 4=Fri) in every grid.
const DayCount = 5

// Shape describes the compound key of one grid table. Shapes without
// categories store every cell under a single implicit empty category.
type Shape struct {
	Name       string
	CellTable  string
	TimeTable  string
	Categories []string
}

var (
	ClassSchedule = Shape{
		Name:       "schedule",
		CellTable:  "schedule_cells",
		TimeTable:  "schedule_times",
		Categories: []string{CategoryMain, CategorySupplement},
	}
	TempSchedule = Shape{
		Name:       "temp-schedule",
		CellTable:  "temp_schedule_cells",
		TimeTable:  "temp_schedule_times",
		Categories: []string{CategoryMain, CategorySupplement},
	}
	Pickup = Shape{
		Name:      "pickup",
		CellTable: "pickup_cells",
		TimeTable: "pickup_times",
	}
)

// Shapes lists every grid table served by the engine.
var Shapes = []Shape{ClassSchedule, TempSchedule, Pickup}

// ShapeByName resolves the table name used in URLs and config.
func ShapeByName(name string) (Shape, bool) {
	for _, s := range Shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

func (s Shape) HasCategory() bool {
	return len(s.Categories) > 0
}

// slots returns the per-day slot names; a single "" for shapes without categories.
func (s Shape) slots() []string {
	if !s.HasCategory() {
		return []string{""}
	}
	return s.Categories
}

func (s Shape) slotIndex(category string) int {
	if !s.HasCategory() {
		return 0
	}
	for i, c := range s.Categories {
		if c == category {
			return i
		}
	}
	return -1
}

// Scope identifies one independent grid: an academy and a table.
type Scope struct {
	AcademyID string `validate:"required,max=64"`
	Shape     Shape  `validate:"-"`
}

func NewScope(academyID string, shape Shape) Scope {
	return Scope{AcademyID: academyID, Shape: shape}
}

func (s Scope) String() string {
	return s.Shape.Name + "/" + s.AcademyID
}

// Key addresses a single cell within a scope.
type Key struct {
	Time     string `json:"time" validate:"required,timelabel"`
	Day      int    `json:"day" validate:"min=0,max=4"`
	Category string `json:"category,omitempty"`
}
