package menutable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// The six fixed columns every menu table must carry, in this relative order.
const (
	ColWeekNumber   = "week_number"
	ColWeekDay      = "week_day"
	ColMainCourse   = "main_course"
	ColSecondCourse = "second_course"
	ColSide         = "side"
	ColFruit        = "fruit"
)

var ErrEmptyTable = errors.New("menu table has no data rows")

// MalformedTableError reports a structural problem in the raw table text.
// Row is the 1-based line number, 0 when the header itself is bad.
type MalformedTableError struct {
	Row    int
	Reason string
}

func (e *MalformedTableError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed menu table: row %d: %s", e.Row, e.Reason)
	}
	return "malformed menu table: " + e.Reason
}

// AttrMap maps attribute-column names to cell values, preserving the
// column order of the header it was parsed from. A key is present only
// when the cell was non-empty.
type AttrMap struct {
	keys   []string
	values map[string]string
}

func NewAttrMap() *AttrMap {
	return &AttrMap{values: make(map[string]string)}
}

func (m *AttrMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *AttrMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *AttrMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

func (m *AttrMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON emits the attributes as a JSON object in column order.
func (m *AttrMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Meal is one dish cell plus the attribute columns attached to its slot.
type Meal struct {
	Value string
	Attrs *AttrMap
}

// Entry is the meal record for one (week, weekday) pair.
type Entry struct {
	Week         int
	Day          int
	DayAttrs     *AttrMap
	MainCourse   Meal
	SecondCourse Meal
	Side         Meal
	Fruit        Meal
}

// Columns holds the discovered attribute-column names per slot,
// in header order. Needed to re-serialize entries consistently even
// when an entry lacks a value for some column.
type Columns struct {
	Day          []string
	MainCourse   []string
	SecondCourse []string
	Side         []string
	Fruit        []string
}

// MenuTable is the immutable structured result of parsing one raw table.
type MenuTable struct {
	entries    []Entry
	index      map[entryKey]int
	totalWeeks int
	columns    Columns
}

type entryKey struct{ week, day int }

// Entry returns the record for (week, day), if the table has one.
func (t *MenuTable) Entry(week, day int) (*Entry, bool) {
	i, ok := t.index[entryKey{week, day}]
	if !ok {
		return nil, false
	}
	return &t.entries[i], true
}

func (t *MenuTable) Entries() []Entry { return t.entries }

// TotalWeeks is N, the highest week number observed in the table.
func (t *MenuTable) TotalWeeks() int { return t.totalWeeks }

func (t *MenuTable) Columns() Columns { return t.columns }
