package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WeekDay is a day in the gym's recurring week.
type WeekDay int

const (
	DayUnknown WeekDay = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday // parsed from backend data, not part of ScheduleDays
)

// ScheduleDays is the canonical order of the booking week.
var ScheduleDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekDayLabels = map[WeekDay]string{
	Monday:    "lunes",
	Tuesday:   "martes",
	Wednesday: "miercoles",
	Thursday:  "jueves",
	Friday:    "viernes",
	Saturday:  "sabado",
	Sunday:    "domingo",
}

var weekDayAliases = map[string]WeekDay{
	"lunes":     Monday,
	"monday":    Monday,
	"martes":    Tuesday,
	"tuesday":   Tuesday,
	"miercoles": Wednesday,
	"miércoles": Wednesday,
	"wednesday": Wednesday,
	"jueves":    Thursday,
	"thursday":  Thursday,
	"viernes":   Friday,
	"friday":    Friday,
	"sabado":    Saturday,
	"sábado":    Saturday,
	"saturday":  Saturday,
	"domingo":   Sunday,
	"sunday":    Sunday,
}

// ParseWeekDay maps a backend day label to a WeekDay. Unknown labels return DayUnknown.
func ParseWeekDay(label string) WeekDay {
	if d, ok := weekDayAliases[strings.ToLower(strings.TrimSpace(label))]; ok {
		return d
	}
	return DayUnknown
}

// String returns the backend label.
func (d WeekDay) String() string {
	if l, ok := weekDayLabels[d]; ok {
		return l
	}
	return "unknown"
}

// Scheduled reports whether d belongs to ScheduleDays.
func (d WeekDay) Scheduled() bool {
	return d >= Monday && d <= Saturday
}

func (d WeekDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *WeekDay) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("weekday must be a string: %w", err)
	}
	*d = ParseWeekDay(label)
	return nil
}
