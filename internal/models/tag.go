package models

// Tag labels items within a store.
type Tag struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"size:80;not null"`
	StoreID int64  `json:"store_id" gorm:"not null;index"`
	Store   *Store `json:"store,omitempty"`
	Items   []Item `json:"items,omitempty" gorm:"many2many:items_tags;"`
}

// TableName returns the database table name for the Tag model.
func (Tag) TableName() string {
	return "tags"
}
