package models

import (
	"encoding/json"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a UTC calendar day in YYYY-MM-DD form. The zero value means "never"
// and is stored as null.
type Day string

// DayOf returns the UTC calendar day of t.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

func (d Day) IsZero() bool {
	return d == ""
}

// Prev returns the day before d, or the zero Day if d does not parse.
func (d Day) Prev() Day {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return ""
	}
	return DayOf(t.AddDate(0, 0, -1))
}

func (d Day) String() string {
	return string(d)
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *Day) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = Day(s)
	return nil
}
