package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTagInUse is returned when deleting a tag that is still linked to items.
var ErrTagInUse = errors.New("tag is linked to items")

// TagRepository defines the interface for tag data operations.
type TagRepository interface {
	FindByStore(ctx context.Context, storeID int64) ([]models.Tag, error)
	FindByID(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	DeleteUnused(ctx context.Context, id int64) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository instance.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByStore(ctx context.Context, storeID int64) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("Items").
		Where("store_id = ?", storeID).
		Order("id").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for store id %d: %w", storeID, err)
	}
	return tags, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("Items").
		First(&tag, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tag by id %d: %w", id, err)
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// DeleteUnused deletes the tag only when no item links to it. The link count
// and the delete share a transaction.
func (r *tagRepository) DeleteUnused(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var links int64
		if err := tx.Table(models.ItemTagsTable).Where("tag_id = ?", id).Count(&links).Error; err != nil {
			return fmt.Errorf("failed to count links for tag id %d: %w", id, err)
		}
		if links > 0 {
			return fmt.Errorf("failed to delete tag id %d: %w", id, ErrTagInUse)
		}

		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete tag id %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("failed to delete tag id %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}
