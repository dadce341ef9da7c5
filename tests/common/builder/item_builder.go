//go:build unit

package builder

import (
	"time"

	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	reqdto "rentbook/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	Name        string
	Listed      bool
	AllowedDays []calendar.Day
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewItemBuilder() *ItemBuilder {
	now := time.Now()
	return &ItemBuilder{
		ID:        uuid.New(),
		Name:      "Test Kayak",
		Listed:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

func (b *ItemBuilder) BuildDomain() *item.Item {
	return item.ReconstructItem(
		b.ID,
		b.Name,
		b.Listed,
		calendar.NewDaySet(b.AllowedDays...),
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	listed := b.Listed
	allowed := make([]string, len(b.AllowedDays))
	for i, d := range b.AllowedDays {
		allowed[i] = d.String()
	}
	return reqdto.CreateItemRequest{
		Name:         b.Name,
		Listed:       &listed,
		AllowedDates: allowed,
	}
}
