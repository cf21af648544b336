package models

// Store owns items and tags.
type Store struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:60;uniqueIndex;not null"`
	Items []Item `json:"items,omitempty" gorm:"foreignKey:StoreID"`
	Tags  []Tag  `json:"tags,omitempty" gorm:"foreignKey:StoreID"`
}

// TableName returns the database table name for the Store model.
func (Store) TableName() string {
	return "stores"
}
