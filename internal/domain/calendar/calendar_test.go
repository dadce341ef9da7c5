//go:build unit

package calendar_test

import (
	"testing"
	"time"

	"rentbook/internal/domain/calendar"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	t.Run("normalizes any instant to midnight UTC", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		late := time.Date(2026, 9, 10, 23, 59, 59, 0, jst) // 14:59 UTC

		day := calendar.NewDay(late)
		assert.Equal(t, "2026-09-10", day.String())
		assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), day.Time())
	})

	t.Run("parses ISO dates", func(t *testing.T) {
		day, err := calendar.ParseDay("2026-09-10")
		require.NoError(t, err)
		assert.Equal(t, "2026-09-10", day.String())
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		for _, s := range []string{"", "2026/09/10", "10-09-2026", "2026-13-01", "2026-09-10T00:00:00Z"} {
			_, err := calendar.ParseDay(s)
			assert.ErrorIs(t, err, calendar.ErrInvalidDay, s)
		}
	})

	t.Run("comparisons are day exact", func(t *testing.T) {
		a := calendar.MustParseDay("2026-09-10")
		b := calendar.MustParseDay("2026-09-11")

		assert.True(t, a.Before(b))
		assert.True(t, b.After(a))
		assert.True(t, a.Equal(a.AddDays(0)))
		assert.True(t, a.AddDays(1).Equal(b))
	})
}

func TestDaysBetween(t *testing.T) {
	t.Run("inclusive of both endpoints", func(t *testing.T) {
		days, err := calendar.DaysBetween(
			calendar.MustParseDay("2026-09-10"),
			calendar.MustParseDay("2026-09-12"),
		)
		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.Equal(t, "2026-09-10", days[0].String())
		assert.Equal(t, "2026-09-12", days[2].String())
	})

	t.Run("single day range", func(t *testing.T) {
		d := calendar.MustParseDay("2026-09-10")
		days, err := calendar.DaysBetween(d, d)
		require.NoError(t, err)
		assert.Len(t, days, 1)
	})

	t.Run("inverted order fails", func(t *testing.T) {
		_, err := calendar.DaysBetween(
			calendar.MustParseDay("2026-09-12"),
			calendar.MustParseDay("2026-09-10"),
		)
		assert.ErrorIs(t, err, calendar.ErrInvalidRange)
	})
}

func TestRangeOverlaps(t *testing.T) {
	mk := func(start, end string) calendar.Range {
		r, err := calendar.NewRange(calendar.MustParseDay(start), calendar.MustParseDay(end))
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name string
		a, b calendar.Range
		want bool
	}{
		{"identical", mk("2026-09-10", "2026-09-12"), mk("2026-09-10", "2026-09-12"), true},
		{"partial overlap", mk("2026-09-10", "2026-09-12"), mk("2026-09-12", "2026-09-14"), true},
		{"containment", mk("2026-09-10", "2026-09-20"), mk("2026-09-12", "2026-09-14"), true},
		{"shared single endpoint", mk("2026-09-10", "2026-09-10"), mk("2026-09-10", "2026-09-11"), true},
		{"adjacent days do not overlap", mk("2026-09-10", "2026-09-12"), mk("2026-09-13", "2026-09-15"), false},
		{"disjoint", mk("2026-09-10", "2026-09-11"), mk("2026-09-20", "2026-09-21"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestDaySet(t *testing.T) {
	d := func(s string) calendar.Day { return calendar.MustParseDay(s) }

	t.Run("subtract removes members", func(t *testing.T) {
		s := calendar.NewDaySet(d("2026-09-10"), d("2026-09-11"), d("2026-09-12"))
		got := s.Subtract(calendar.NewDaySet(d("2026-09-11"))).Days()

		want := []calendar.Day{d("2026-09-10"), d("2026-09-12")}
		assert.Empty(t, cmp.Diff(want, got, cmp.Comparer(func(a, b calendar.Day) bool { return a.Equal(b) })))
	})

	t.Run("union deduplicates", func(t *testing.T) {
		a := calendar.NewDaySet(d("2026-09-10"), d("2026-09-11"))
		b := calendar.NewDaySet(d("2026-09-11"), d("2026-09-12"))
		assert.Equal(t, 3, a.Union(b).Len())
	})

	t.Run("days enumerate in ascending order", func(t *testing.T) {
		s := calendar.NewDaySet(d("2026-09-12"), d("2026-09-10"), d("2026-09-11"))
		days := s.Days()
		require.Len(t, days, 3)
		assert.True(t, days[0].Before(days[1]))
		assert.True(t, days[1].Before(days[2]))
	})
}
