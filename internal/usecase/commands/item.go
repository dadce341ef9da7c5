package commands

import (
	"context"

	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	"rentbook/internal/pkg/errs"
	"rentbook/internal/usecase/shared"
)

var ErrInvalidItem = errs.New("invalid item")

type CreateItemParams struct {
	Name         string
	Listed       bool
	AllowedDays  []calendar.Day
	ExcludedDays []calendar.Day
}

type ItemCommands interface {
	CreateItem(ctx context.Context, p CreateItemParams) (*item.Item, error)
}

type itemUseCaseImpl struct {
	items shared.ItemRepository
}

func NewItemUseCase(items shared.ItemRepository) ItemCommands {
	return &itemUseCaseImpl{items: items}
}

// CreateItem registers an item; excluded days are dropped from the allowed
// set before it is stored, so the availability engine never sees them.
func (u *itemUseCaseImpl) CreateItem(ctx context.Context, p CreateItemParams) (*item.Item, error) {
	allowed := item.BuildAllowedDays(p.AllowedDays, p.ExcludedDays)

	it, err := item.NewItem(p.Name, p.Listed, allowed)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidItem)
	}
	if err := u.items.Create(ctx, it); err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	return it, nil
}
