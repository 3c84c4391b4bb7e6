package domain

import (
	"time"
)

// =============================================================================
// DATE - Day-granularity time point
// =============================================================================

// Date is a calendar day in UTC. Banking events in this system happen at
// day granularity; anything finer (transaction timestamps) uses time.Time
// directly.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }
func (d Date) String() string        { return d.t.Format("2006-01-02") }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// AddMonths advances by whole months, clamping the day to the target
// month's length (Jan 31 + 1 month = Feb 28, not Mar 3). time.AddDate
// normalizes overflow instead, which is the wrong behavior for payment
// due dates.
func (d Date) AddMonths(n int) Date {
	year, month := d.Year(), int(d.Month())+n
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	day := d.Day()
	if max := DaysInMonth(year, time.Month(month)); day > max {
		day = max
	}
	return NewDate(year, time.Month(month), day)
}

// WithDay returns the same month with the day-of-month clamped to the
// month's last valid day.
func (d Date) WithDay(day int) Date {
	if max := DaysInMonth(d.Year(), d.Month()); day > max {
		day = max
	}
	return NewDate(d.Year(), d.Month(), day)
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// BUSINESS DAY CALENDAR
// =============================================================================

// HolidayCalendar answers whether a given date is a bank holiday.
type HolidayCalendar interface {
	IsHoliday(date Date) bool
}

// FixedHolidays is the default calendar: New Year's Day and Christmas,
// every year.
type FixedHolidays struct{}

func (FixedHolidays) IsHoliday(date Date) bool {
	switch {
	case date.Month() == time.January && date.Day() == 1:
		return true
	case date.Month() == time.December && date.Day() == 25:
		return true
	}
	return false
}

// IsBusinessDay reports whether date is Mon-Fri and not a holiday.
func IsBusinessDay(date Date, cal HolidayCalendar) bool {
	if date.IsWeekend() {
		return false
	}
	if cal != nil && cal.IsHoliday(date) {
		return false
	}
	return true
}

// NextBusinessDay shifts date forward to the first business day on or
// after it. A date that already is a business day comes back unchanged.
func NextBusinessDay(date Date, cal HolidayCalendar) Date {
	d := date
	for !IsBusinessDay(d, cal) {
		d = d.AddDays(1)
	}
	return d
}
