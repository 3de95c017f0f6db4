package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxItemNameLength is the maximum number of characters in an item name.
const MaxItemNameLength = 120

// ErrNotFound is returned when no item matches the requested id.
var ErrNotFound = errors.New("not found")

// ValidationError reports a create request the store refuses to persist.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Item is the sole persisted resource.
type Item struct {
	ID          int64
	Name        string
	Description *string
}

// CreateItem is the create request for an item. ID is assigned by the driver.
type CreateItem struct {
	Name        string
	Description *string
}

// FindItem is the find condition for items.
type FindItem struct {
	ID *int64
}

// DeleteItem is the delete condition for an item.
type DeleteItem struct {
	ID int64
}

// Validate checks the name constraints shared by every driver.
func (c *CreateItem) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "name required"}
	}
	if utf8.RuneCountInString(c.Name) > MaxItemNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("name too long (max %d)", MaxItemNameLength)}
	}
	return nil
}

// CreateItem validates and persists a new item.
func (s *Store) CreateItem(ctx context.Context, create *CreateItem) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	return s.driver.CreateItem(ctx, create)
}

// ListItems lists items in insertion order.
func (s *Store) ListItems(ctx context.Context, find *FindItem) ([]*Item, error) {
	if find == nil {
		find = &FindItem{}
	}
	return s.driver.ListItems(ctx, find)
}

// GetItem gets a single item by id.
func (s *Store) GetItem(ctx context.Context, id int64) (*Item, error) {
	list, err := s.ListItems(ctx, &FindItem{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

// DeleteItem hard-deletes an item and returns its id.
func (s *Store) DeleteItem(ctx context.Context, id int64) (int64, error) {
	if err := s.driver.DeleteItem(ctx, &DeleteItem{ID: id}); err != nil {
		return 0, err
	}
	return id, nil
}
