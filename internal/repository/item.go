package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertFunc mutates item before it is saved. exists reports whether the
// row was found; when false, item carries only the requested id.
type UpsertFunc func(item *models.Item, exists bool) error

// ItemRepository defines the interface for item data operations.
type ItemRepository interface {
	FindAll(ctx context.Context) ([]models.Item, error)
	FindByID(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Upsert(ctx context.Context, id int64, apply UpsertFunc) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
	LinkTag(ctx context.Context, itemID, tagID int64) error
	UnlinkTag(ctx context.Context, itemID, tagID int64) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository instance.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("Tags").
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	return findItem(r.db.WithContext(ctx), id)
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Upsert loads the item by id, lets apply mutate it, and saves it. A missing
// row is inserted with the caller's id.
func (r *itemRepository) Upsert(ctx context.Context, id int64, apply UpsertFunc) (*models.Item, error) {
	var saved *models.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		exists := true
		if err := tx.First(&item, id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to find item by id %d: %w", id, err)
			}
			exists = false
			item = models.Item{ID: id}
		}

		if err := apply(&item, exists); err != nil {
			return err
		}

		if exists {
			err := tx.Model(&item).
				Omit(clause.Associations).
				Updates(map[string]any{"name": item.Name, "price": item.Price, "store_id": item.StoreID}).Error
			if err != nil {
				return fmt.Errorf("failed to update item id %d: %w", id, err)
			}
		} else {
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create item id %d: %w", id, err)
			}
			if err := realignSequence(tx, item.TableName()); err != nil {
				return err
			}
		}

		reloaded, err := findItem(tx, id)
		if err != nil {
			return err
		}
		saved = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+models.ItemTagsTable+" WHERE item_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink tags for item id %d: %w", id, err)
		}

		result := tx.Delete(&models.Item{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete item id %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("failed to delete item id %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// LinkTag attaches a tag to an item. Linking an already linked pair is a no-op.
func (r *itemRepository) LinkTag(ctx context.Context, itemID, tagID int64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Item{ID: itemID}).
		Omit("Tags.*").
		Association("Tags").
		Append(&models.Tag{ID: tagID})
	if err != nil {
		return fmt.Errorf("failed to link tag %d to item %d: %w", tagID, itemID, err)
	}
	return nil
}

func (r *itemRepository) UnlinkTag(ctx context.Context, itemID, tagID int64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Item{ID: itemID}).
		Association("Tags").
		Delete(&models.Tag{ID: tagID})
	if err != nil {
		return fmt.Errorf("failed to unlink tag %d from item %d: %w", tagID, itemID, err)
	}
	return nil
}

func findItem(db *gorm.DB, id int64) (*models.Item, error) {
	var item models.Item
	err := db.Preload("Store").Preload("Tags").First(&item, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find item by id %d: %w", id, err)
	}
	return &item, nil
}

// realignSequence moves a PostgreSQL serial sequence past explicitly
// inserted ids. Other dialects track the maximum id themselves.
func realignSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	err := tx.Exec(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT COALESCE(MAX(id), 1) FROM "+table+"))",
		table,
	).Error
	if err != nil {
		return fmt.Errorf("failed to realign %s id sequence: %w", table, err)
	}
	return nil
}
