package calendar

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidRange = errors.New("start day must not be after end day")
	ErrInvalidDay   = errors.New("invalid calendar day")
)

const dayLayout = "2006-01-02"

// Day is a calendar date at day granularity, normalized to midnight UTC.
// It is the single normalization boundary: every date entering the system
// becomes a Day exactly once, and all comparisons afterwards are day-exact.
type Day struct {
	t time.Time
}

func NewDay(t time.Time) Day {
	utc := t.UTC()
	return Day{t: time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, ErrInvalidDay
	}
	return NewDay(t), nil
}

func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) Time() time.Time { return d.t }

func (d Day) String() string { return d.t.Format(dayLayout) }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

func (d Day) After(other Day) bool { return d.t.After(other.t) }

func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysBetween returns every day from start through end inclusive, ascending.
func DaysBetween(start, end Day) ([]Day, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	var days []Day
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days, nil
}

// Range is a closed-inclusive day range: every day from Start through End
// inclusive is covered.
type Range struct {
	start Day
	end   Day
}

func NewRange(start, end Day) (Range, error) {
	if start.After(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{start: start, end: end}, nil
}

func (r Range) Start() Day { return r.start }

func (r Range) End() Day { return r.end }

// Overlaps reports whether two closed ranges share at least one day.
func (r Range) Overlaps(other Range) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

func (r Range) Contains(d Day) bool {
	return !d.Before(r.start) && !d.After(r.end)
}

func (r Range) Days() []Day {
	days, _ := DaysBetween(r.start, r.end)
	return days
}

func (r Range) String() string {
	return r.start.String() + ".." + r.end.String()
}

// DaySet is a finite set of days with order-preserving enumeration.
type DaySet struct {
	days map[Day]struct{}
}

func NewDaySet(days ...Day) DaySet {
	s := DaySet{days: make(map[Day]struct{}, len(days))}
	for _, d := range days {
		s.days[d] = struct{}{}
	}
	return s
}

func (s DaySet) Contains(d Day) bool {
	_, ok := s.days[d]
	return ok
}

func (s DaySet) Len() int { return len(s.days) }

func (s DaySet) IsEmpty() bool { return len(s.days) == 0 }

func (s DaySet) Union(other DaySet) DaySet {
	out := DaySet{days: make(map[Day]struct{}, len(s.days)+len(other.days))}
	for d := range s.days {
		out.days[d] = struct{}{}
	}
	for d := range other.days {
		out.days[d] = struct{}{}
	}
	return out
}

func (s DaySet) Subtract(other DaySet) DaySet {
	out := DaySet{days: make(map[Day]struct{}, len(s.days))}
	for d := range s.days {
		if !other.Contains(d) {
			out.days[d] = struct{}{}
		}
	}
	return out
}

// Days returns the members in ascending order.
func (s DaySet) Days() []Day {
	out := make([]Day, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
