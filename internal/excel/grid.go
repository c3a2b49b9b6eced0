package excel

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/in-nis/academy-grid/internal/grid"
)

const sheetName = "Grid"

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// Entry is one non-empty cell read from a spreadsheet.
type Entry struct {
	Time     string
	Day      int
	Category string
	Content  string
}

// Sheet is the parsed content of an imported grid.
type Sheet struct {
	Labels  []string
	Entries []Entry
}

// -------------------- EXPORT --------------------

// WriteGrid renders g as a workbook with one row per time label and one
// column per day (and category).
func WriteGrid(g grid.Grid) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	head := []interface{}{"Time"}
	for _, name := range columnNames(g.Categories) {
		head = append(head, name)
	}
	if err := f.SetSheetRow(sheetName, "A1", &head); err != nil {
		return nil, err
	}

	for i, row := range g.Rows {
		values := []interface{}{row.Time}
		for _, slots := range row.Slots {
			for _, content := range slots {
				values = append(values, content)
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, axis, &values); err != nil {
			return nil, fmt.Errorf("write row %s: %w", row.Time, err)
		}
	}

	return f, nil
}

func columnNames(categories []string) []string {
	var names []string
	for _, day := range dayNames {
		if len(categories) == 0 {
			names = append(names, day)
			continue
		}
		for _, c := range categories {
			names = append(names, day+" "+c)
		}
	}
	return names
}

// -------------------- IMPORT --------------------

// ReadGrid parses a workbook written by WriteGrid (or laid out the same way)
// for the given shape. Rows with a malformed time label are skipped.
func ReadGrid(r io.Reader, shape grid.Shape) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	type column struct {
		day      int
		category string
	}
	cols := make(map[int]column)
	for colIndex, name := range rows[0] {
		if colIndex == 0 {
			continue
		}
		day, category, ok := parseHeader(name, shape)
		if !ok {
			slog.Warn("skipping unknown grid column", "column", colIndex+1, "header", name)
			continue
		}
		cols[colIndex] = column{day: day, category: category}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("sheet %q has no day columns for %s", sheet, shape.Name)
	}

	out := &Sheet{}
	for rowIndex, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		label, err := grid.NormalizeLabel(row[0])
		if err != nil {
			slog.Warn("skipping row with invalid time", "row", rowIndex+2, "value", row[0])
			continue
		}
		out.Labels = append(out.Labels, label)

		for colIndex, value := range row {
			col, ok := cols[colIndex]
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			out.Entries = append(out.Entries, Entry{
				Time:     label,
				Day:      col.day,
				Category: col.category,
				Content:  value,
			})
		}
	}

	return out, nil
}

func parseHeader(name string, shape grid.Shape) (day int, category string, ok bool) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return 0, "", false
	}

	day = -1
	for i, d := range dayNames {
		if strings.EqualFold(fields[0], d) {
			day = i
			break
		}
	}
	if day < 0 {
		return 0, "", false
	}

	if !shape.HasCategory() {
		return day, "", len(fields) == 1
	}
	if len(fields) != 2 {
		return 0, "", false
	}
	for _, c := range shape.Categories {
		if strings.EqualFold(fields[1], c) {
			return day, c, true
		}
	}
	return 0, "", false
}
