package bookings

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// EndTick is the smallest step a stored timestamp can take. End times sit one tick
// before midnight so that a one-day booking never reaches into the next day.
const EndTick = time.Microsecond

// MaxBookingDays caps the length of a booking and of an availability window
const MaxBookingDays = 365

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	dateLayout,
}

// ParseTimestamp reads a client timestamp and keeps its wall clock as a naive UTC value.
// Any zone offset is dropped rather than converted.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return naive(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: use RFC 3339 or YYYY-MM-DD", raw)
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// EndTimeFor adds days to start and steps back one tick. Fractional days are honoured.
func EndTimeFor(start time.Time, days float64) time.Time {
	whole, frac := math.Modf(days)
	end := start.AddDate(0, 0, int(whole))
	if frac != 0 {
		end = end.Add(time.Duration(frac * float64(24*time.Hour)))
	}
	return end.Add(-EndTick)
}

// DateOf truncates t to its calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatesOverlap reports whether the inclusive day ranges of two bookings share a calendar day
func DatesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOf(aStart).After(DateOf(bEnd)) && !DateOf(aEnd).Before(DateOf(bStart))
}

// ExpandBookedDates lists every calendar day covered by the given bookings, deduplicated and ascending
func ExpandBookedDates(bookings []Booking) []string {
	seen := make(map[time.Time]struct{})
	for _, b := range bookings {
		last := DateOf(b.EndTime)
		for day := DateOf(b.StartTime); !day.After(last); day = day.AddDate(0, 0, 1) {
			seen[day] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(dateLayout))
	}
	return out
}
