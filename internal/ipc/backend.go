package ipc

import (
	"context"

	"layoutkit/internal/layout"
	"layoutkit/internal/propstore"
)

// Backend is the property source served over the socket.
type Backend interface {
	Item(id string) layout.Store
	Items(ctx context.Context) ([]ItemInfo, error)
}

// StoreBackend serves a SQLite property database.
type StoreBackend struct {
	DB *propstore.SQLite
}

// Item returns the item-scoped view of the database.
func (b StoreBackend) Item(id string) layout.Store {
	return b.DB.Item(id)
}

// Items lists the database's items.
func (b StoreBackend) Items(ctx context.Context) ([]ItemInfo, error) {
	items, err := b.DB.Items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ItemInfo, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, ItemInfo{
			ID:        item.ID,
			Name:      item.Name,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return out, nil
}
