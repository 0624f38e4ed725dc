package showcase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MYAIBV/my-ai-portfolio/internal/kv"
)

// itemsKey is the hash holding every showcase item, field = item id.
const itemsKey = "showcase:items"

type Repository interface {
	Get(ctx context.Context, id string) (Item, bool, error)
	GetAll(ctx context.Context) ([]Item, error)
	Put(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) (bool, error)
}

type KVRepository struct {
	hash kv.Hash
}

func NewRepository(hash kv.Hash) *KVRepository {
	return &KVRepository{hash: hash}
}

func (r *KVRepository) Get(ctx context.Context, id string) (Item, bool, error) {
	raw, ok, err := r.hash.Get(ctx, itemsKey, id)
	if err != nil || !ok {
		return Item{}, false, err
	}
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return Item{}, false, fmt.Errorf("decode showcase item %s: %w", id, err)
	}
	return item, true, nil
}

func (r *KVRepository) GetAll(ctx context.Context) ([]Item, error) {
	fields, err := r.hash.GetAll(ctx, itemsKey)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(fields))
	for id, raw := range fields {
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode showcase item %s: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *KVRepository) Put(ctx context.Context, item Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode showcase item %s: %w", item.ID, err)
	}
	return r.hash.Set(ctx, itemsKey, item.ID, raw)
}

func (r *KVRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.hash.Delete(ctx, itemsKey, id)
}
