package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// Date is a calendar day without a time of day. The zero value is stored as NULL.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Time() time.Time { return d.t }

func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysUntil returns the number of whole days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	}
	return fmt.Errorf("Date.Scan: unsupported type %T", value)
}

func (d *Date) scanString(s string) error {
	// Some drivers hand back a full timestamp for date columns.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a wall-clock time of day. The zero value is unset and stored as NULL.
type ClockTime struct {
	offset time.Duration
	set    bool
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{offset: time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, set: true}
}

// ParseClockTime accepts "15:04" or "15:04:05".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockTime{}, nil
	}
	layout := clockLayout
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return clockOf(t), nil
}

func clockOf(t time.Time) ClockTime {
	return ClockTime{
		offset: time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second,
		set:    true,
	}
}

func (c ClockTime) IsZero() bool { return !c.set }

// On combines c with the given day in loc.
func (c ClockTime) On(d Date, loc *time.Location) time.Time {
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).Add(c.offset)
}

func (c ClockTime) Format(layout string) string {
	if !c.set {
		return ""
	}
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(c.offset).Format(layout)
}

func (c ClockTime) String() string { return c.Format(clockLayout) }

// Kitchen renders the time as "3:04 PM".
func (c ClockTime) Kitchen() string { return c.Format("3:04 PM") }

func (c ClockTime) Value() (driver.Value, error) {
	if !c.set {
		return nil, nil
	}
	return c.String(), nil
}

func (c *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = ClockTime{}
		return nil
	case time.Time:
		*c = clockOf(v)
		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	}
	return fmt.Errorf("ClockTime.Scan: unsupported type %T", value)
}

func (c *ClockTime) scanString(s string) error {
	// Strip fractional seconds.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ClockTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ItemList is an ordered list stored as newline-delimited text.
type ItemList []string

// ParseItems splits free text on newlines and commas, dropping blanks.
func ParseItems(raw string) ItemList {
	var items ItemList
	for _, line := range strings.Split(raw, "\n") {
		for _, part := range strings.Split(line, ",") {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

func (l ItemList) String() string { return strings.Join(l, "\n") }

func (l ItemList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *ItemList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
	case []byte:
		*l = ParseItems(string(v))
	case string:
		*l = ParseItems(v)
	default:
		return fmt.Errorf("ItemList.Scan: unsupported type %T", value)
	}
	return nil
}
