package response

import (
	"time"

	"rentbook/internal/domain/calendar"
	"rentbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Listed       bool      `json:"listed"`
	AllowedDates []string  `json:"allowedDates"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ItemBookingsResponse struct {
	ItemID        uuid.UUID          `json:"itemId"`
	Listed        bool               `json:"listed"`
	TotalBookings int                `json:"totalBookings"`
	Intervals     []IntervalResponse `json:"intervals"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	var resp ItemResponse
	_ = copier.Copy(&resp, v)
	resp.AllowedDates = formatDays(v.AllowedDays)
	return &resp
}

func FromItemBookingsView(v *queries.ItemBookingsView) *ItemBookingsResponse {
	intervals := make([]IntervalResponse, len(v.Intervals))
	for i := range v.Intervals {
		intervals[i] = *FromIntervalView(&v.Intervals[i])
	}
	return &ItemBookingsResponse{
		ItemID:        v.ItemID,
		Listed:        v.Listed,
		TotalBookings: v.TotalBookings,
		Intervals:     intervals,
	}
}

func formatDays(days []calendar.Day) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
