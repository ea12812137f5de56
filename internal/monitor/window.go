package monitor

import (
	"fmt"
	"time"
)

// Window is the weekday trading window the monitor is allowed to work in.
type Window struct {
	loc      *time.Location
	openMin  int // minutes from midnight, inclusive
	closeMin int // minutes from midnight, inclusive
}

// NewWindow builds a Window from a timezone name and "HH:MM" open/close times.
func NewWindow(timezone, open, close string) (*Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	openMin, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("open time: %w", err)
	}
	closeMin, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("close time: %w", err)
	}
	if closeMin < openMin {
		return nil, fmt.Errorf("close %s before open %s", close, open)
	}
	return &Window{loc: loc, openMin: openMin, closeMin: closeMin}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether t falls on a weekday inside the window, evaluated
// in the window's timezone. Both boundaries are inclusive.
func (w *Window) Contains(t time.Time) bool {
	lt := t.In(w.loc)
	if wd := lt.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := lt.Hour()*60 + lt.Minute()
	return minutes >= w.openMin && minutes <= w.closeMin
}
