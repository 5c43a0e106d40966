package menutable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse turns raw comma-delimited text into a MenuTable.
//
// The header must contain the six fixed columns in this relative order:
// week_number, week_day, main_course, second_course, side, fruit.
// Every header column strictly between two consecutive fixed columns is
// an attribute column for the preceding slot (columns between week_day
// and main_course are day attributes; columns after fruit are fruit
// attributes). Empty attribute cells are omitted from the maps.
func Parse(raw string) (*MenuTable, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &MalformedTableError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, &MalformedTableError{Reason: err.Error()}
	}

	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	fixed, err := locateFixedColumns(header)
	if err != nil {
		return nil, err
	}
	columns := Columns{
		Day:          header[fixed.weekDay+1 : fixed.mainCourse],
		MainCourse:   header[fixed.mainCourse+1 : fixed.secondCourse],
		SecondCourse: header[fixed.secondCourse+1 : fixed.side],
		Side:         header[fixed.side+1 : fixed.fruit],
		Fruit:        header[fixed.fruit+1:],
	}

	table := &MenuTable{
		index:   make(map[entryKey]int),
		columns: columns,
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedTableError{Row: line, Reason: err.Error()}
		}
		if blankRow(row) {
			continue
		}
		if len(row) != len(header) {
			return nil, &MalformedTableError{
				Row:    line,
				Reason: fmt.Sprintf("has %d columns, header has %d", len(row), len(header)),
			}
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}

		entry, err := buildEntry(row, fixed, columns, line)
		if err != nil {
			return nil, err
		}

		key := entryKey{entry.Week, entry.Day}
		if _, dup := table.index[key]; dup {
			return nil, &MalformedTableError{
				Row:    line,
				Reason: fmt.Sprintf("duplicate entry for week %d day %d", entry.Week, entry.Day),
			}
		}
		table.index[key] = len(table.entries)
		table.entries = append(table.entries, *entry)
		if entry.Week > table.totalWeeks {
			table.totalWeeks = entry.Week
		}
	}

	if len(table.entries) == 0 {
		return nil, ErrEmptyTable
	}
	return table, nil
}

type fixedColumns struct {
	weekNumber, weekDay, mainCourse, secondCourse, side, fruit int
}

func locateFixedColumns(header []string) (fixedColumns, error) {
	indexOf := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return 0, &MalformedTableError{Reason: "missing required column: " + name}
	}

	var f fixedColumns
	var err error
	if f.weekNumber, err = indexOf(ColWeekNumber); err != nil {
		return f, err
	}
	if f.weekDay, err = indexOf(ColWeekDay); err != nil {
		return f, err
	}
	if f.mainCourse, err = indexOf(ColMainCourse); err != nil {
		return f, err
	}
	if f.secondCourse, err = indexOf(ColSecondCourse); err != nil {
		return f, err
	}
	if f.side, err = indexOf(ColSide); err != nil {
		return f, err
	}
	if f.fruit, err = indexOf(ColFruit); err != nil {
		return f, err
	}

	if !(f.weekNumber < f.weekDay && f.weekDay < f.mainCourse &&
		f.mainCourse < f.secondCourse && f.secondCourse < f.side && f.side < f.fruit) {
		return f, &MalformedTableError{
			Reason: fmt.Sprintf("columns must appear in order: %s, %s, %s, %s, %s, %s",
				ColWeekNumber, ColWeekDay, ColMainCourse, ColSecondCourse, ColSide, ColFruit),
		}
	}
	return f, nil
}

func buildEntry(row []string, fixed fixedColumns, columns Columns, line int) (*Entry, error) {
	week, err := strconv.Atoi(row[fixed.weekNumber])
	if err != nil || week < 1 {
		return nil, &MalformedTableError{Row: line, Reason: "invalid week_number value: " + row[fixed.weekNumber]}
	}
	day, err := strconv.Atoi(row[fixed.weekDay])
	if err != nil {
		return nil, &MalformedTableError{Row: line, Reason: "invalid week_day value: " + row[fixed.weekDay]}
	}
	if day < 1 || day > 7 {
		return nil, &MalformedTableError{Row: line, Reason: fmt.Sprintf("week_day %d outside 1..7", day)}
	}

	entry := &Entry{
		Week:         week,
		Day:          day,
		DayAttrs:     attrsFromRow(row, fixed.weekDay+1, columns.Day),
		MainCourse:   Meal{Value: row[fixed.mainCourse], Attrs: attrsFromRow(row, fixed.mainCourse+1, columns.MainCourse)},
		SecondCourse: Meal{Value: row[fixed.secondCourse], Attrs: attrsFromRow(row, fixed.secondCourse+1, columns.SecondCourse)},
		Side:         Meal{Value: row[fixed.side], Attrs: attrsFromRow(row, fixed.side+1, columns.Side)},
		Fruit:        Meal{Value: row[fixed.fruit], Attrs: attrsFromRow(row, fixed.fruit+1, columns.Fruit)},
	}

	for _, meal := range []struct {
		col   string
		value string
	}{
		{ColMainCourse, entry.MainCourse.Value},
		{ColSecondCourse, entry.SecondCourse.Value},
		{ColSide, entry.Side.Value},
		{ColFruit, entry.Fruit.Value},
	} {
		if meal.value == "" {
			return nil, &MalformedTableError{Row: line, Reason: "empty " + meal.col + " value"}
		}
	}
	return entry, nil
}

func attrsFromRow(row []string, base int, names []string) *AttrMap {
	attrs := NewAttrMap()
	for i, name := range names {
		if v := row[base+i]; v != "" {
			attrs.Set(name, v)
		}
	}
	return attrs
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
