package store

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		create  CreateItem
		wantErr string
	}{
		{name: "valid", create: CreateItem{Name: "Item A"}},
		{name: "empty", create: CreateItem{}, wantErr: "name required"},
		{name: "whitespace is a name", create: CreateItem{Name: "   "}},
		{name: "120 characters", create: CreateItem{Name: strings.Repeat("ü", MaxItemNameLength)}},
		{name: "121 characters", create: CreateItem{Name: strings.Repeat("a", MaxItemNameLength+1)}, wantErr: "name too long (max 120)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "name", validationErr.Field)
			assert.Equal(t, tt.wantErr, validationErr.Error())
		})
	}
}

// recordingDriver counts calls so tests can see what reached storage.
type recordingDriver struct {
	creates     int
	migrations  int
	initialized bool
	initErr     error
	items       []*Item
	nextID      int64
}

func (d *recordingDriver) Close() error { return nil }

func (d *recordingDriver) IsInitialized(context.Context) (bool, error) {
	return d.initialized, d.initErr
}

func (d *recordingDriver) Migrate(context.Context) error {
	d.migrations++
	d.initialized = true
	return nil
}

func (d *recordingDriver) CreateItem(_ context.Context, create *CreateItem) (*Item, error) {
	d.creates++
	d.nextID++
	item := &Item{ID: d.nextID, Name: create.Name, Description: create.Description}
	d.items = append(d.items, item)
	return item, nil
}

func (d *recordingDriver) ListItems(_ context.Context, find *FindItem) ([]*Item, error) {
	list := []*Item{}
	for _, item := range d.items {
		if find.ID == nil || *find.ID == item.ID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (d *recordingDriver) DeleteItem(_ context.Context, delete *DeleteItem) error {
	for i, item := range d.items {
		if item.ID == delete.ID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestStoreRejectsInvalidBeforeDriver(t *testing.T) {
	driver := &recordingDriver{}
	s := New(driver, nil)

	_, err := s.CreateItem(context.Background(), &CreateItem{})
	assert.Error(t, err)
	assert.Zero(t, driver.creates)
}

func TestStoreGetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New(&recordingDriver{}, nil)

	item, err := s.CreateItem(ctx, &CreateItem{Name: "x"})
	require.NoError(t, err)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	deleted, err := s.DeleteItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted)

	_, err = s.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh database", func(t *testing.T) {
		driver := &recordingDriver{}
		s := New(driver, nil)
		require.NoError(t, s.Migrate(ctx))
		assert.Equal(t, 1, driver.migrations)
		assert.True(t, driver.initialized)
	})

	t.Run("existing schema is migrated idempotently", func(t *testing.T) {
		driver := &recordingDriver{initialized: true}
		s := New(driver, nil)
		require.NoError(t, s.Migrate(ctx))
		assert.Equal(t, 1, driver.migrations)
	})

	t.Run("inspection failure stops migration", func(t *testing.T) {
		driver := &recordingDriver{initErr: errors.New("disk I/O error")}
		s := New(driver, nil)
		require.Error(t, s.Migrate(ctx))
		assert.Zero(t, driver.migrations)
	})
}
