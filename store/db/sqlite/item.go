package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/alemeno/store"
)

func (d *DB) CreateItem(ctx context.Context, create *store.CreateItem) (*store.Item, error) {
	stmt := `
		INSERT INTO items (name, description)
		VALUES (?, ?)
		RETURNING id, name, description
	`
	var item store.Item
	var description sql.NullString
	if err := d.db.QueryRowContext(ctx, stmt, create.Name, create.Description).Scan(
		&item.ID,
		&item.Name,
		&description,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}
	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

func (d *DB) ListItems(ctx context.Context, find *store.FindItem) ([]*store.Item, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}

	query := `SELECT id, name, description FROM items WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}
	defer rows.Close()

	list := []*store.Item{}
	for rows.Next() {
		var item store.Item
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &description); err != nil {
			return nil, errors.Wrap(err, "failed to scan item")
		}
		if description.Valid {
			item.Description = &description.String
		}
		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) DeleteItem(ctx context.Context, delete *store.DeleteItem) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete item")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
