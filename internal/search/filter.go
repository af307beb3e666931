// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"time"
)

// Tokyo is the fixed UTC+9 zone the target date is computed in.
var Tokyo = time.FixedZone("JST", 9*60*60)

// Day is a calendar date with no time or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar date of t as seen in Tokyo.
func DayOf(t time.Time) Day {
	y, m, d := t.In(Tokyo).Date()
	return Day{Year: y, Month: m, Day: d}
}

// TargetDay returns the day before now, both taken in Tokyo.
func TargetDay(now time.Time) Day {
	return DayOf(now.In(Tokyo).AddDate(0, 0, -1))
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Day{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}, nil
}

// NowFor returns an instant whose TargetDay is d: noon in Tokyo on the
// following day. Used to pin the filter to an explicit date.
func NowFor(d Day) time.Time {
	return time.Date(d.Year, d.Month, d.Day+1, 12, 0, 0, 0, Tokyo)
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
