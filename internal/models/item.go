package models

// ItemTagsTable links items and tags.
const ItemTagsTable = "items_tags"

// Item is a priced product that belongs to exactly one store.
type Item struct {
	ID      int64   `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"size:80;not null"`
	Price   float64 `json:"price" gorm:"not null"`
	StoreID int64   `json:"store_id" gorm:"not null;index"`
	Store   *Store  `json:"store,omitempty"`
	Tags    []Tag   `json:"tags,omitempty" gorm:"many2many:items_tags;"`
}

// TableName returns the database table name for the Item model.
func (Item) TableName() string {
	return "items"
}
