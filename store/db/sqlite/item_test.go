package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/alemeno/internal/profile"
	"github.com/hrygo/alemeno/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "alemeno_test.db"),
	}
	driver, err := NewDB(p)
	require.NoError(t, err)

	s := store.New(driver, p)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestItemCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateItem(ctx, &store.CreateItem{Name: "Item A", Description: strPtr("desc A")})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Item A", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "desc A", *created.Description)

	got, err := s.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestItemNullDescription(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateItem(ctx, &store.CreateItem{Name: "no description"})
	require.NoError(t, err)
	assert.Nil(t, created.Description)

	got, err := s.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestItemNameAcceptedByValidationIsStored(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, name := range []string{
		"\x00abc",
		"a\x00",
		strings.Repeat("\x00", store.MaxItemNameLength),
		strings.Repeat("é", store.MaxItemNameLength),
	} {
		created, err := s.CreateItem(ctx, &store.CreateItem{Name: name})
		require.NoError(t, err, "name %q", name)

		got, err := s.GetItem(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, name, got.Name)
	}
}

func TestItemValidationPersistsNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name    string
		create  *store.CreateItem
		wantMsg string
	}{
		{name: "empty name", create: &store.CreateItem{Description: strPtr("no name")}, wantMsg: "name required"},
		{name: "121 characters", create: &store.CreateItem{Name: strings.Repeat("x", 121)}, wantMsg: "name too long (max 120)"},
		{name: "121 multibyte characters", create: &store.CreateItem{Name: strings.Repeat("é", 121)}, wantMsg: "name too long (max 120)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateItem(ctx, tt.create)
			var validationErr *store.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMsg, validationErr.Error())

			list, err := s.ListItems(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}

	_, err := s.CreateItem(ctx, &store.CreateItem{Name: strings.Repeat("é", 120)})
	assert.NoError(t, err, "120 characters is within the limit")
}

func TestItemDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateItem(ctx, &store.CreateItem{Name: "to delete"})
	require.NoError(t, err)

	deleted, err := s.DeleteItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted)

	_, err = s.GetItem(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.DeleteItem(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.DeleteItem(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestItemIDsNotReused(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.CreateItem(ctx, &store.CreateItem{Name: "first"})
	require.NoError(t, err)
	second, err := s.CreateItem(ctx, &store.CreateItem{Name: "second"})
	require.NoError(t, err)

	_, err = s.DeleteItem(ctx, second.ID)
	require.NoError(t, err)

	third, err := s.CreateItem(ctx, &store.CreateItem{Name: "third"})
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestItemListCountAndOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		item, err := s.CreateItem(ctx, &store.CreateItem{Name: fmt.Sprintf("item-%d", i)})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	_, err := s.DeleteItem(ctx, ids[1])
	require.NoError(t, err)
	_, err = s.DeleteItem(ctx, ids[3])
	require.NoError(t, err)

	list, err := s.ListItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"item-0", "item-2", "item-4"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestItemConcurrentCreateUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item, err := s.CreateItem(ctx, &store.CreateItem{Name: fmt.Sprintf("concurrent-%d", i)})
			if assert.NoError(t, err) {
				ids <- item.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestIsInitialized(t *testing.T) {
	ctx := context.Background()
	p := &profile.Profile{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "init.db")}
	driver, err := NewDB(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })

	ok, err := driver.IsInitialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, driver.Migrate(ctx))
	ok, err = driver.IsInitialized(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryDatabase(t *testing.T) {
	ctx := context.Background()
	p := &profile.Profile{Driver: "sqlite", DSN: ":memory:"}
	driver, err := NewDB(p)
	require.NoError(t, err)
	s := store.New(driver, p)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(ctx))

	list, err := s.ListItems(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	item, err := s.CreateItem(ctx, &store.CreateItem{Name: "Test Item", Description: strPtr("desc")})
	require.NoError(t, err)
	list, err = s.ListItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, item.ID, list[0].ID)
}
