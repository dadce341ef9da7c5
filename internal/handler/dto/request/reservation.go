package request

import (
	"rentbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ItemID    uuid.UUID `json:"itemId" binding:"required"`
	OrderID   uuid.UUID `json:"orderId" binding:"required"`
	StartDate string    `json:"startDate" binding:"required"`
	EndDate   string    `json:"endDate" binding:"required"`
}

func (r CreateReservationRequest) ToParams(ownerID *uuid.UUID) (commands.ReserveParams, error) {
	start, err := parseDay("startDate", r.StartDate)
	if err != nil {
		return commands.ReserveParams{}, err
	}
	end, err := parseDay("endDate", r.EndDate)
	if err != nil {
		return commands.ReserveParams{}, err
	}
	return commands.ReserveParams{
		ItemID:  r.ItemID,
		Start:   start,
		End:     end,
		OrderID: r.OrderID,
		OwnerID: ownerID,
	}, nil
}

type CreateHoldRequest struct {
	ItemID    uuid.UUID `json:"itemId" binding:"required"`
	StartDate string    `json:"startDate" binding:"required"`
	EndDate   string    `json:"endDate" binding:"required"`
}

func (r CreateHoldRequest) ToParams(ownerID uuid.UUID) (commands.HoldParams, error) {
	start, err := parseDay("startDate", r.StartDate)
	if err != nil {
		return commands.HoldParams{}, err
	}
	end, err := parseDay("endDate", r.EndDate)
	if err != nil {
		return commands.HoldParams{}, err
	}
	return commands.HoldParams{
		ItemID:  r.ItemID,
		Start:   start,
		End:     end,
		OwnerID: ownerID,
	}, nil
}

type ConfirmHoldRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
}
