package response

import (
	"rentbook/internal/domain/calendar"
	"rentbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RangeCheckResponse struct {
	ItemID    uuid.UUID `json:"itemId"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type AvailabilityResponse struct {
	ItemID         uuid.UUID `json:"itemId"`
	AvailableDates []string  `json:"availableDates"`
	BookedDates    []string  `json:"bookedDates"`
}

func FromRangeCheckView(v *queries.RangeCheckView) *RangeCheckResponse {
	return &RangeCheckResponse{
		ItemID:    v.ItemID,
		Available: v.Available,
		Reason:    v.Reason,
	}
}

func NewAvailabilityResponse(itemID uuid.UUID, available, booked []calendar.Day) *AvailabilityResponse {
	return &AvailabilityResponse{
		ItemID:         itemID,
		AvailableDates: formatDays(available),
		BookedDates:    formatDays(booked),
	}
}
