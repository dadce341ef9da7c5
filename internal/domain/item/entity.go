package item

import (
	"errors"
	"strings"
	"time"

	"rentbook/internal/domain/calendar"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("item name must not be empty")
)

// Item is a rentable physical good with its own availability configuration.
// An empty allowed-day set means the item carries no explicit restriction;
// how that is interpreted is the availability engine's policy, not the item's.
type Item struct {
	id          uuid.UUID
	name        string
	listed      bool
	allowedDays calendar.DaySet
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(name string, listed bool, allowedDays calendar.DaySet) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Item{
		id:          uuid.New(),
		name:        name,
		listed:      listed,
		allowedDays: allowedDays,
	}, nil
}

func ReconstructItem(
	id uuid.UUID,
	name string,
	listed bool,
	allowedDays calendar.DaySet,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		name:        name,
		listed:      listed,
		allowedDays: allowedDays,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (i *Item) ID() uuid.UUID                { return i.id }
func (i *Item) Name() string                 { return i.name }
func (i *Item) IsListed() bool               { return i.listed }
func (i *Item) AllowedDays() calendar.DaySet { return i.allowedDays }
func (i *Item) CreatedAt() time.Time         { return i.createdAt }
func (i *Item) UpdatedAt() time.Time         { return i.updatedAt }

// BuildAllowedDays combines an allowed list with an excluded list, dropping
// excluded entries from the result. Duplicate days collapse.
func BuildAllowedDays(allowed, excluded []calendar.Day) calendar.DaySet {
	return calendar.NewDaySet(allowed...).Subtract(calendar.NewDaySet(excluded...))
}
