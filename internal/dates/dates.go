// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package dates computes the calendar boundaries used by every digest
// section: day-of-year math, the year progress bar and the yesterday/
// month-start/year-start instants, all anchored to a single fixed timezone.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// progressBarWidth is the number of character slots in the year progress bar.
const progressBarWidth = 20

// Window is a bounded time interval used to filter time-stamped events.
// Both ends are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolver derives calendar boundaries relative to a fixed timezone.
// The zero value is not usable; construct it with [NewResolver].
type Resolver struct {
	zone *time.Location
}

// NewResolver returns a Resolver anchored to the named IANA timezone.
func NewResolver(zone string) (*Resolver, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", zone, err)
	}
	return &Resolver{zone: loc}, nil
}

// Zone returns the resolver's timezone.
func (r *Resolver) Zone() *time.Location { return r.zone }

// In converts t to the resolver's timezone.
func (r *Resolver) In(t time.Time) time.Time { return t.In(r.zone) }

// DayOfYear returns the one-based ordinal day of the year for now.
func (r *Resolver) DayOfYear(now time.Time) int {
	return now.In(r.zone).YearDay()
}

// TotalDays returns the number of days in now's year, accounting for leap
// years.
func (r *Resolver) TotalDays(now time.Time) int {
	if IsLeap(now.In(r.zone).Year()) {
		return 366
	}
	return 365
}

// IsLeap reports whether year is a leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Progress returns a fixed-width progress bar describing how much of the
// year has passed, e.g. "████████░░░░░░░░░░░░ 43.3% (158/365)". Filled
// slots are rounded down.
func (r *Resolver) Progress(now time.Time) string {
	var (
		dayOfYear = r.DayOfYear(now)
		totalDays = r.TotalDays(now)
	)

	percent := float64(dayOfYear) / float64(totalDays) * 100
	filled := dayOfYear * progressBarWidth / totalDays

	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("%s %.1f%% (%d/%d)", bar, percent, dayOfYear, totalDays)
}

// Yesterday returns the prior calendar day as a window converted to UTC,
// suitable for comparing against event timestamps reported in UTC.
func (r *Resolver) Yesterday(now time.Time) Window {
	start := r.startOfDay(now.In(r.zone).AddDate(0, 0, -1))
	return Window{
		Start: start.UTC(),
		End:   start.AddDate(0, 0, 1).Add(-time.Nanosecond).UTC(),
	}
}

// YesterdayDate returns the prior calendar day formatted as YYYY-MM-DD.
func (r *Resolver) YesterdayDate(now time.Time) string {
	return now.In(r.zone).AddDate(0, 0, -1).Format(time.DateOnly)
}

// MonthStart returns the first instant of now's month.
func (r *Resolver) MonthStart(now time.Time) time.Time {
	n := now.In(r.zone)
	return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, r.zone)
}

// YearStart returns the first instant of now's year.
func (r *Resolver) YearStart(now time.Time) time.Time {
	n := now.In(r.zone)
	return time.Date(n.Year(), time.January, 1, 0, 0, 0, 0, r.zone)
}

// MonthDay returns now's month and day numbers.
func (r *Resolver) MonthDay(now time.Time) (month, day int) {
	n := now.In(r.zone)
	return int(n.Month()), n.Day()
}

func (r *Resolver) startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.zone)
}
