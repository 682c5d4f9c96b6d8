package reporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Mode is the calendar unit a period covers
type Mode string

const (
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// ErrInvalidPeriod is returned for structurally invalid period selectors
var ErrInvalidPeriod = errors.New("invalid period")

// Selector identifies one calendar unit. Month is ignored for ModeYear and Day is only used by ModeDay.
type Selector struct {
	Mode  Mode
	Year  int
	Month int
	Day   int
}

// DateRange is an inclusive [Start, End] interval
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, bounds included
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Period is a resolved selector with the boundaries of the unit and of the unit preceding it
type Period struct {
	Selector         Selector
	Current          DateRange
	PreviousSelector Selector
	Previous         DateRange
}

// Label returns a sortable label for the current unit (2024, 2024-03 or 2024-03-15)
func (p Period) Label() string {
	return selectorLabel(p.Selector)
}

// PreviousLabel returns the label of the comparison unit
func (p Period) PreviousLabel() string {
	return selectorLabel(p.PreviousSelector)
}

func selectorLabel(s Selector) string {
	switch s.Mode {
	case ModeDay:
		return fmt.Sprintf("%04d-%02d-%02d", s.Year, s.Month, s.Day)
	case ModeMonth:
		return fmt.Sprintf("%04d-%02d", s.Year, s.Month)
	default:
		return fmt.Sprintf("%04d", s.Year)
	}
}

// Resolver converts selectors into concrete boundaries in the reporting timezone
type Resolver struct {
	loc *time.Location
	cfg *now.Config
}

// NewResolver creates a resolver for the given reporting timezone (UTC when nil)
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		loc: loc,
		cfg: &now.Config{WeekStartDay: time.Monday, TimeLocation: loc},
	}
}

// Location returns the reporting timezone
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Validate rejects selectors that do not name a real calendar unit
func (r *Resolver) Validate(sel Selector) error {
	if sel.Year <= 0 {
		return fmt.Errorf("%w: year %d must be positive", ErrInvalidPeriod, sel.Year)
	}
	switch sel.Mode {
	case ModeYear:
		return nil
	case ModeMonth, ModeDay:
		if sel.Month < 1 || sel.Month > 12 {
			return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidPeriod, sel.Month)
		}
		if sel.Mode == ModeDay {
			if last := DaysInMonth(sel.Year, sel.Month); sel.Day < 1 || sel.Day > last {
				return fmt.Errorf("%w: day %d outside 1-%d", ErrInvalidPeriod, sel.Day, last)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown mode %q", ErrInvalidPeriod, sel.Mode)
}

// Resolve validates sel and returns its boundaries and those of the preceding unit
func (r *Resolver) Resolve(sel Selector) (Period, error) {
	if err := r.Validate(sel); err != nil {
		return Period{}, err
	}
	if sel.Mode == ModeYear {
		sel.Month, sel.Day = 0, 0
	}
	if sel.Mode == ModeMonth {
		sel.Day = 0
	}

	prev := PreviousSelector(sel)
	return Period{
		Selector:         sel,
		Current:          r.Range(sel),
		PreviousSelector: prev,
		Previous:         r.Range(prev),
	}, nil
}

// Range returns the inclusive boundaries of sel without validating it
func (r *Resolver) Range(sel Selector) DateRange {
	switch sel.Mode {
	case ModeDay:
		n := r.cfg.With(time.Date(sel.Year, time.Month(sel.Month), sel.Day, 0, 0, 0, 0, r.loc))
		return DateRange{Start: n.BeginningOfDay(), End: n.EndOfDay()}
	case ModeMonth:
		y, m := NormalizeMonth(sel.Year, sel.Month)
		n := r.cfg.With(time.Date(y, time.Month(m), 1, 0, 0, 0, 0, r.loc))
		return DateRange{Start: n.BeginningOfMonth(), End: n.EndOfMonth()}
	default:
		n := r.cfg.With(time.Date(sel.Year, time.January, 1, 0, 0, 0, 0, r.loc))
		return DateRange{Start: n.BeginningOfYear(), End: n.EndOfYear()}
	}
}

// Span returns the range from the start of the first selector to the end of the last
func (r *Resolver) Span(first, last Selector) DateRange {
	return DateRange{Start: r.Range(first).Start, End: r.Range(last).End}
}

// PreviousSelector returns the calendar unit immediately before sel
func PreviousSelector(sel Selector) Selector {
	switch sel.Mode {
	case ModeDay:
		d := time.Date(sel.Year, time.Month(sel.Month), sel.Day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		return Selector{Mode: ModeDay, Year: d.Year(), Month: int(d.Month()), Day: d.Day()}
	case ModeMonth:
		y, m := AddMonths(sel.Year, sel.Month, -1)
		return Selector{Mode: ModeMonth, Year: y, Month: m}
	default:
		return Selector{Mode: ModeYear, Year: sel.Year - 1}
	}
}

// TrailingMonths returns count month selectors ending at (year, month), oldest first
func TrailingMonths(year, month, count int) []Selector {
	out := make([]Selector, 0, count)
	for i := count - 1; i >= 0; i-- {
		y, m := AddMonths(year, month, -i)
		out = append(out, Selector{Mode: ModeMonth, Year: y, Month: m})
	}
	return out
}

// NormalizeMonth wraps out-of-range months into the adjacent years:
// month 13 is January of year+1 and month 0 is December of year-1.
func NormalizeMonth(year, month int) (int, int) {
	m0 := month - 1
	shift := m0 / 12
	if m0%12 < 0 {
		shift--
	}
	return year + shift, m0 - shift*12 + 1
}

// AddMonths shifts (year, month) by delta months
func AddMonths(year, month, delta int) (int, int) {
	return NormalizeMonth(year, month+delta)
}

// DaysInMonth returns the number of days in the given month, accounting for leap years
func DaysInMonth(year, month int) int {
	y, m := NormalizeMonth(year, month)
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CurrentSelector returns the unit of the given mode that contains the instant at.
// Callers pass the request time explicitly; nothing in this package reads the clock.
func (r *Resolver) CurrentSelector(mode Mode, at time.Time) Selector {
	t := at.In(r.loc)
	sel := Selector{Mode: mode, Year: t.Year()}
	if mode != ModeYear {
		sel.Month = int(t.Month())
	}
	if mode == ModeDay {
		sel.Day = t.Day()
	}
	return sel
}

// IsFuture reports whether sel starts after the instant at
func (r *Resolver) IsFuture(sel Selector, at time.Time) bool {
	return r.Range(sel).Start.After(at)
}
