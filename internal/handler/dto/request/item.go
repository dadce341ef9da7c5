package request

import (
	"strings"

	"rentbook/internal/usecase/commands"
)

type CreateItemRequest struct {
	Name          string   `json:"name" binding:"required"`
	Listed        *bool    `json:"listed,omitempty"`
	AllowedDates  []string `json:"allowedDates,omitempty"`
	ExcludedDates []string `json:"excludedDates,omitempty"`
}

func (r CreateItemRequest) ToParams() (commands.CreateItemParams, error) {
	allowed, err := parseDays("allowedDates", r.AllowedDates)
	if err != nil {
		return commands.CreateItemParams{}, err
	}
	excluded, err := parseDays("excludedDates", r.ExcludedDates)
	if err != nil {
		return commands.CreateItemParams{}, err
	}

	listed := true
	if r.Listed != nil {
		listed = *r.Listed
	}

	return commands.CreateItemParams{
		Name:         strings.TrimSpace(r.Name),
		Listed:       listed,
		AllowedDays:  allowed,
		ExcludedDays: excluded,
	}, nil
}
