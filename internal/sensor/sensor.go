package sensor

import (
	"mensa/internal/coordinator"
	"mensa/internal/menutable"
	"mensa/internal/schedule"
)

// Value is one projected sensor: its state plus display attributes.
// State is nil when the sensor is unavailable (closed day, missing
// entry, or no upcoming school day).
type Value struct {
	State      any            `json:"state"`
	Available  bool           `json:"available"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

var mealSlots = []struct {
	name string
	pick func(*schedule.DayInfo) *menutable.Meal
}{
	{"main_course", func(i *schedule.DayInfo) *menutable.Meal { return i.MainCourse }},
	{"second_course", func(i *schedule.DayInfo) *menutable.Meal { return i.SecondCourse }},
	{"side", func(i *schedule.DayInfo) *menutable.Meal { return i.Side }},
	{"fruit", func(i *schedule.DayInfo) *menutable.Meal { return i.Fruit }},
}

// Project flattens coordinator data into the named sensor values the
// hosting dashboard consumes: current_week, total_weeks, and per-day
// plus per-meal sensors for today and the next school day.
func Project(data *coordinator.Data) map[string]Value {
	sensors := map[string]Value{
		"total_weeks": {State: data.TotalWeeks, Available: true},
	}

	if data.Today != nil {
		sensors["current_week"] = Value{
			State:     data.Today.Week,
			Available: true,
			Attributes: map[string]any{
				"total_weeks": data.TotalWeeks,
			},
		}
	}

	addDaySensors(sensors, "today", data.Today)
	addDaySensors(sensors, "next", data.Next)
	return sensors
}

func addDaySensors(sensors map[string]Value, ref string, info *schedule.DayInfo) {
	if info == nil {
		sensors["day_"+ref] = Value{}
		for _, slot := range mealSlots {
			sensors[slot.name+"_"+ref] = Value{}
		}
		return
	}

	dayAttrs := dayAttributes(info, ref)
	for _, key := range info.DayAttrs.Keys() {
		v, _ := info.DayAttrs.Get(key)
		dayAttrs[key] = v
	}
	sensors["day_"+ref] = Value{
		State:      info.DayName,
		Available:  !info.IsClosed && info.HasEntry,
		Attributes: dayAttrs,
	}

	for _, slot := range mealSlots {
		meal := slot.pick(info)
		value := Value{Attributes: dayAttributes(info, ref)}
		if meal != nil && meal.Value != "" {
			value.State = meal.Value
			value.Available = true
			for _, key := range meal.Attrs.Keys() {
				v, _ := meal.Attrs.Get(key)
				value.Attributes[key] = v
			}
		}
		sensors[slot.name+"_"+ref] = value
	}
}

// Next-day sensors carry the resolved date under next_date, today
// sensors under date.
func dayAttributes(info *schedule.DayInfo, ref string) map[string]any {
	dateKey := "date"
	if ref == "next" {
		dateKey = "next_date"
	}
	return map[string]any{
		dateKey:      info.Date.Format("2006-01-02"),
		"day":        info.DayName,
		"day_number": info.Weekday,
		"week":       info.Week,
		"is_closed":  info.IsClosed,
		"menu_name":  info.MenuName,
	}
}
