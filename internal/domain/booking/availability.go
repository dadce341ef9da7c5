package booking

import (
	"errors"
	"fmt"

	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	"rentbook/internal/pkg/clock"
)

var (
	// ErrInvalidRange covers start after end and zero-length rentals; a
	// rental must span at least one full day after its start.
	ErrInvalidRange = errors.New("invalid rental range")
	ErrPastDate     = errors.New("rental cannot start before today")
)

// EmptyAllowedPolicy decides how an item with no explicit allowed days is
// read: PolicyOpen treats it as unrestricted, PolicyClosed as unbookable.
type EmptyAllowedPolicy string

const (
	PolicyOpen   EmptyAllowedPolicy = "open"
	PolicyClosed EmptyAllowedPolicy = "closed"
)

func ParseEmptyAllowedPolicy(s string) (EmptyAllowedPolicy, error) {
	switch EmptyAllowedPolicy(s) {
	case PolicyOpen, PolicyClosed:
		return EmptyAllowedPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown empty-allowed policy %q", s)
	}
}

type Reason string

const (
	ReasonNotListed      Reason = "not_listed"
	ReasonConflict       Reason = "booked"
	ReasonOutsideAllowed Reason = "outside_allowed_dates"
)

type Decision struct {
	Free   bool
	Reason Reason
}

// Engine answers availability questions for one item from a snapshot of its
// configuration and committed intervals. It performs no I/O and holds no
// mutable state.
type Engine struct {
	clock  clock.Clock
	policy EmptyAllowedPolicy
}

func NewEngine(clk clock.Clock, policy EmptyAllowedPolicy) *Engine {
	return &Engine{clock: clk, policy: policy}
}

// ValidateRange normalizes a requested window into a Range. A window
// starting today is accepted; one starting before today fails with
// ErrPastDate. End must be strictly after start.
func (e *Engine) ValidateRange(start, end calendar.Day) (calendar.Range, error) {
	if start.IsZero() || end.IsZero() {
		return calendar.Range{}, ErrInvalidRange
	}
	if !end.After(start) {
		return calendar.Range{}, ErrInvalidRange
	}
	today := calendar.NewDay(e.clock.Now())
	if start.Before(today) {
		return calendar.Range{}, ErrPastDate
	}
	r, err := calendar.NewRange(start, end)
	if err != nil {
		return calendar.Range{}, ErrInvalidRange
	}
	return r, nil
}

// IsRangeFree validates the window and decides whether it can be booked.
func (e *Engine) IsRangeFree(it *item.Item, intervals []*BookedInterval, start, end calendar.Day) (Decision, error) {
	r, err := e.ValidateRange(start, end)
	if err != nil {
		return Decision{}, err
	}
	return e.Evaluate(it, intervals, r), nil
}

// Evaluate decides availability for an already-validated range.
func (e *Engine) Evaluate(it *item.Item, intervals []*BookedInterval, r calendar.Range) Decision {
	if !it.IsListed() {
		return Decision{Reason: ReasonNotListed}
	}
	for _, iv := range intervals {
		if iv.Overlaps(r) {
			return Decision{Reason: ReasonConflict}
		}
	}
	allowed := it.AllowedDays()
	if allowed.IsEmpty() {
		if e.policy == PolicyClosed {
			return Decision{Reason: ReasonOutsideAllowed}
		}
		return Decision{Free: true}
	}
	for _, d := range r.Days() {
		if !allowed.Contains(d) {
			return Decision{Reason: ReasonOutsideAllowed}
		}
	}
	return Decision{Free: true}
}

// ActualAvailableDays is the item's allowed days minus every day covered by
// a committed interval, ascending. Items without explicit allowed days
// yield an empty list regardless of policy; there is no finite set to
// enumerate.
func (e *Engine) ActualAvailableDays(it *item.Item, intervals []*BookedInterval) []calendar.Day {
	allowed := it.AllowedDays()
	if allowed.IsEmpty() {
		return nil
	}
	return allowed.Subtract(bookedDaySet(intervals)).Days()
}

// BookedDays is the deduplicated union of all interval days, ascending.
func (e *Engine) BookedDays(intervals []*BookedInterval) []calendar.Day {
	return bookedDaySet(intervals).Days()
}

func bookedDaySet(intervals []*BookedInterval) calendar.DaySet {
	booked := calendar.NewDaySet()
	for _, iv := range intervals {
		booked = booked.Union(calendar.NewDaySet(iv.Days()...))
	}
	return booked
}
