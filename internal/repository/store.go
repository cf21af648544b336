package repository

import (
	"context"
	"fmt"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreRepository defines the interface for store data operations.
type StoreRepository interface {
	FindAll(ctx context.Context) ([]models.Store, error)
	FindByID(ctx context.Context, id int64) (*models.Store, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id int64) error
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new StoreRepository instance.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) FindAll(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Tags").
		Order("id").
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Tags").
		First(&store, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store by id %d: %w", id, err)
	}
	return &store, nil
}

func (r *storeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check store id %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Delete removes a store with its items, its tags and every item/tag link
// touching them, in one transaction.
func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&models.Item{}).Select("id").Where("store_id = ?", id)
		tagIDs := tx.Model(&models.Tag{}).Select("id").Where("store_id = ?", id)

		err := tx.Exec("DELETE FROM "+models.ItemTagsTable+" WHERE item_id IN (?) OR tag_id IN (?)", itemIDs, tagIDs).Error
		if err != nil {
			return fmt.Errorf("failed to unlink tags for store id %d: %w", id, err)
		}

		if err := tx.Where("store_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete items for store id %d: %w", id, err)
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return fmt.Errorf("failed to delete tags for store id %d: %w", id, err)
		}

		result := tx.Delete(&models.Store{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete store id %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("failed to delete store id %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}
