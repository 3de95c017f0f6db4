package v1

import "github.com/hrygo/alemeno/store"

// Item is the JSON representation of a stored item. A missing description
// is rendered as null.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func convertItemFromStore(item *store.Item) *Item {
	return &Item{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
	}
}
