package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/hrygo/alemeno/store"
)

func (d *DB) CreateItem(ctx context.Context, create *store.CreateItem) (*store.Item, error) {
	query := `
		INSERT INTO items (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description
	`
	var item store.Item
	var description sql.NullString
	if err := d.db.QueryRowContext(ctx, query, create.Name, create.Description).Scan(
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
	query := `
		SELECT id, name, description
		FROM items
		WHERE 1=1
	`
	var args []interface{}
	argIndex := 1

	if find.ID != nil {
		query += fmt.Sprintf(" AND id = $%d", argIndex)
		args = append(args, *find.ID)
	}
	query += " ORDER BY id ASC"

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
	var id int64
	err := d.db.QueryRowContext(ctx, `DELETE FROM items WHERE id = $1 RETURNING id`, delete.ID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete item")
	}
	return nil
}
