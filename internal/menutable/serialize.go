package menutable

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// Header reconstructs the header row: fixed columns with their attribute
// columns in the original order.
func (t *MenuTable) Header() []string {
	header := []string{ColWeekNumber, ColWeekDay}
	header = append(header, t.columns.Day...)
	header = append(header, ColMainCourse)
	header = append(header, t.columns.MainCourse...)
	header = append(header, ColSecondCourse)
	header = append(header, t.columns.SecondCourse...)
	header = append(header, ColSide)
	header = append(header, t.columns.Side...)
	header = append(header, ColFruit)
	header = append(header, t.columns.Fruit...)
	return header
}

// Rows re-serializes every entry back to cells in header order.
// Missing attribute values become empty cells.
func (t *MenuTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.entries))
	for i := range t.entries {
		e := &t.entries[i]
		row := []string{strconv.Itoa(e.Week), strconv.Itoa(e.Day)}
		row = appendAttrCells(row, e.DayAttrs, t.columns.Day)
		row = append(row, e.MainCourse.Value)
		row = appendAttrCells(row, e.MainCourse.Attrs, t.columns.MainCourse)
		row = append(row, e.SecondCourse.Value)
		row = appendAttrCells(row, e.SecondCourse.Attrs, t.columns.SecondCourse)
		row = append(row, e.Side.Value)
		row = appendAttrCells(row, e.Side.Attrs, t.columns.Side)
		row = append(row, e.Fruit.Value)
		row = appendAttrCells(row, e.Fruit.Attrs, t.columns.Fruit)
		rows = append(rows, row)
	}
	return rows
}

// CSV renders the full table back to delimited text, used to pre-fill
// the edit-menu form and the configuration dump.
func (t *MenuTable) CSV() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(t.Header())
	for _, row := range t.Rows() {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.String()
}

func appendAttrCells(row []string, attrs *AttrMap, names []string) []string {
	for _, name := range names {
		v, _ := attrs.Get(name)
		row = append(row, v)
	}
	return row
}
