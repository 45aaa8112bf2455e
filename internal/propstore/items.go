package propstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"layoutkit/internal/layout"
)

var _ layout.Store = (*ItemStore)(nil)

// Item is one layout item known to the database.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const itemColumns = `id, name, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item             Item
		created, updated string
	)
	if err := row.Scan(&item.ID, &item.Name, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}

// CreateItem inserts a new item with a random ID and the default layout
// properties.
func (s *SQLite) CreateItem(ctx context.Context, name string) (*Item, error) {
	ctx = ensureContext(ctx)
	name = strings.TrimSpace(name)
	id := uuid.NewString()
	if name == "" {
		name = "item-" + id[:8]
	}
	timestamp := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create item: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO items (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, timestamp, timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	for key, value := range DefaultItemProperties() {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO item_properties (item_id, key, value, updated_at) VALUES (?, ?, ?, ?)`,
			id, key, value, timestamp,
		); err != nil {
			return nil, fmt.Errorf("seed property %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create item: %w", err)
	}

	return s.GetItem(ctx, id)
}

// GetItem fetches an item by ID. It returns nil, nil when the item does not exist.
func (s *SQLite) GetItem(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Items lists every item in creation order.
func (s *SQLite) Items(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteItem removes an item and its properties. It reports whether a row was removed.
func (s *SQLite) DeleteItem(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ItemProperties returns every stored property of an item.
func (s *SQLite) ItemProperties(ctx context.Context, id string) (map[string]string, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT key, value FROM item_properties WHERE item_id = ? ORDER BY key`, id)
	if err != nil {
		return nil, fmt.Errorf("list item properties: %w", err)
	}
	defer rows.Close()

	props := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		props[key] = value
	}
	return props, rows.Err()
}

// Item returns a layout.Store scoped to one item. The item is not checked
// until the first Get or Set.
func (s *SQLite) Item(id string) *ItemStore {
	return &ItemStore{db: s, id: id}
}

// ItemStore serves one item's properties, falling through to application
// properties for keys without the "prop:" prefix.
type ItemStore struct {
	db *SQLite
	id string
}

// ID returns the item identifier.
func (s *ItemStore) ID() string {
	return s.id
}

// Get returns the property value, or "" when it was never set.
func (s *ItemStore) Get(ctx context.Context, key string) (string, error) {
	if !IsItemKey(key) {
		return s.db.AppProperty(ctx, key)
	}
	value, found, err := s.lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if !found {
		item, err := s.db.GetItem(ctx, s.id)
		if err != nil {
			return "", err
		}
		if item == nil {
			return "", fmt.Errorf("item %s: %w", s.id, ErrNotFound)
		}
	}
	if key == layout.KeyPositionAspect && value == "" {
		value, _, err = s.lookup(ctx, layout.KeyPosition)
		if err != nil {
			return "", err
		}
	}
	return value, nil
}

func (s *ItemStore) lookup(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT value FROM item_properties WHERE item_id = ? AND key = ?`,
		s.id, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item property: %w", err)
	}
	return value, true, nil
}

// Set writes the property and bumps the item's updated_at.
func (s *ItemStore) Set(ctx context.Context, key, value string) error {
	if !IsItemKey(key) {
		return s.db.SetAppProperty(ctx, key, value)
	}
	timestamp := now()
	res, err := s.db.execWithRetry(ctx, `UPDATE items SET updated_at = ? WHERE id = ?`, timestamp, s.id)
	if err != nil {
		return fmt.Errorf("touch item: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("item %s: %w", s.id, ErrNotFound)
	}
	if _, err := s.db.execWithRetry(
		ctx,
		`INSERT INTO item_properties (item_id, key, value, updated_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(item_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.id, key, value, timestamp,
	); err != nil {
		return fmt.Errorf("set item property: %w", err)
	}
	return nil
}
