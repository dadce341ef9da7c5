package holdstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/calendar"
	"rentbook/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	holdKeyPrefix    = "hold:"
	itemHoldsPrefix  = "item_holds:"
	itemIndexPadding = time.Minute
)

type holdRecord struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	StartDay  string    `json:"start_day"`
	EndDay    string    `json:"end_day"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedisHoldStore keeps provisional holds as TTL-bounded JSON values plus a
// per-item index set. Expired members are pruned from the index lazily on
// list; the index TTL trails the longest-lived hold so abandoned items
// clean themselves up.
type RedisHoldStore struct {
	client *redis.Client
}

func NewRedisHoldStore(client *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{client: client}
}

func holdKey(id uuid.UUID) string { return holdKeyPrefix + id.String() }

func itemKey(id uuid.UUID) string { return itemHoldsPrefix + id.String() }

func (s *RedisHoldStore) Put(ctx context.Context, h *booking.Hold, ttl time.Duration) error {
	raw, err := json.Marshal(holdRecord{
		ID:        h.ID,
		ItemID:    h.ItemID,
		OwnerID:   h.OwnerID,
		StartDay:  h.StartDay.String(),
		EndDay:    h.EndDay.String(),
		ExpiresAt: h.ExpiresAt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to marshal hold", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, holdKey(h.ID), raw, ttl)
	pipe.SAdd(ctx, itemKey(h.ItemID), h.ID.String())
	pipe.Expire(ctx, itemKey(h.ItemID), ttl+itemIndexPadding)
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr("failed to store hold", err)
	}
	return nil
}

func (s *RedisHoldStore) Get(ctx context.Context, holdID uuid.UUID) (*booking.Hold, error) {
	raw, err := s.client.Get(ctx, holdKey(holdID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read hold", err)
	}
	return unmarshalHold(raw)
}

func (s *RedisHoldStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Hold, error) {
	members, err := s.client.SMembers(ctx, itemKey(itemID)).Result()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list item holds", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = holdKeyPrefix + m
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch item holds", err)
	}

	var holds []*booking.Hold
	var stale []any
	for i, v := range values {
		if v == nil {
			stale = append(stale, members[i])
			continue
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		h, err := unmarshalHold([]byte(str))
		if err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	if len(stale) > 0 {
		_ = s.client.SRem(ctx, itemKey(itemID), stale...).Err()
	}
	return holds, nil
}

func (s *RedisHoldStore) Delete(ctx context.Context, holdID uuid.UUID) error {
	h, err := s.Get(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, holdKey(holdID))
	pipe.SRem(ctx, itemKey(h.ItemID), holdID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr("failed to delete hold", err)
	}
	return nil
}

func unmarshalHold(raw []byte) (*booking.Hold, error) {
	var rec holdRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal hold", err)
	}
	start, err := calendar.ParseDay(rec.StartDay)
	if err != nil {
		return nil, infra.WrapRepoErr("stored hold has invalid start day", err)
	}
	end, err := calendar.ParseDay(rec.EndDay)
	if err != nil {
		return nil, infra.WrapRepoErr("stored hold has invalid end day", err)
	}
	return &booking.Hold{
		ID:        rec.ID,
		ItemID:    rec.ItemID,
		OwnerID:   rec.OwnerID,
		StartDay:  start,
		EndDay:    end,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}
