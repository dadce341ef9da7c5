package repository

import (
	"context"
	"sync"

	"rentbook/internal/domain/item"
	"rentbook/internal/infra"

	"github.com/google/uuid"
)

type MemoryItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*item.Item
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{items: make(map[uuid.UUID]*item.Item)}
}

func (r *MemoryItemRepository) Create(_ context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID()]; ok {
		return infra.WrapRepoErr("item already exists", nil, infra.KindConflict)
	}
	r.items[it.ID()] = it
	return nil
}

func (r *MemoryItemRepository) FindByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return it, nil
}
