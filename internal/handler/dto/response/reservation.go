package response

import (
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type IntervalResponse struct {
	ID        uuid.UUID  `json:"id"`
	ItemID    uuid.UUID  `json:"itemId,omitempty"`
	OrderID   uuid.UUID  `json:"orderId"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ReleaseResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Removed int64     `json:"removed"`
}

type HoldResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromBookedInterval(iv *booking.BookedInterval) *IntervalResponse {
	return &IntervalResponse{
		ID:        iv.ID(),
		ItemID:    iv.ItemID(),
		OrderID:   iv.OrderID(),
		OwnerID:   iv.OwnerID(),
		StartDate: iv.Range().Start().String(),
		EndDate:   iv.Range().End().String(),
		CreatedAt: iv.CreatedAt(),
	}
}

func FromIntervalView(v *queries.IntervalView) *IntervalResponse {
	return &IntervalResponse{
		ID:        v.ID,
		OrderID:   v.OrderID,
		OwnerID:   v.OwnerID,
		StartDate: v.StartDay.String(),
		EndDate:   v.EndDay.String(),
		CreatedAt: v.CreatedAt,
	}
}

func FromHold(h *booking.Hold) *HoldResponse {
	return &HoldResponse{
		ID:        h.ID,
		ItemID:    h.ItemID,
		StartDate: h.StartDay.String(),
		EndDate:   h.EndDay.String(),
		ExpiresAt: h.ExpiresAt,
	}
}
