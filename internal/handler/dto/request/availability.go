package request

import (
	"rentbook/internal/domain/calendar"

	"github.com/google/uuid"
)

type CheckAvailabilityRequest struct {
	ItemID    uuid.UUID `json:"itemId" binding:"required"`
	StartDate string    `json:"startDate" binding:"required"`
	EndDate   string    `json:"endDate" binding:"required"`
}

func (r CheckAvailabilityRequest) Window() (start, end calendar.Day, err error) {
	start, err = parseDay("startDate", r.StartDate)
	if err != nil {
		return calendar.Day{}, calendar.Day{}, err
	}
	end, err = parseDay("endDate", r.EndDate)
	if err != nil {
		return calendar.Day{}, calendar.Day{}, err
	}
	return start, end, nil
}
