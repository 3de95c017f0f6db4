package store

import (
	"context"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	Close() error

	IsInitialized(ctx context.Context) (bool, error)
	Migrate(ctx context.Context) error

	// Item model related methods.
	CreateItem(ctx context.Context, create *CreateItem) (*Item, error)
	ListItems(ctx context.Context, find *FindItem) ([]*Item, error)
	DeleteItem(ctx context.Context, delete *DeleteItem) error
}
