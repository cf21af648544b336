package service

import (
	"context"
	"errors"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"github.com/flyosprey/Store-REST-API/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagInUse    = errors.New("tag is still linked to items")
)

// TagLink is the result of linking or unlinking a tag and an item.
type TagLink struct {
	Item *models.Item
	Tag  *models.Tag
}

// TagService manages tags and their links to items.
type TagService interface {
	ListByStore(ctx context.Context, storeID int64) ([]models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, storeID int64, name string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
	LinkToItem(ctx context.Context, itemID, tagID int64) (*TagLink, error)
	UnlinkFromItem(ctx context.Context, itemID, tagID int64) (*TagLink, error)
}

type tagService struct {
	tagRepo   repository.TagRepository
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewTagService creates a new TagService instance.
func NewTagService(tagRepo repository.TagRepository, itemRepo repository.ItemRepository, storeRepo repository.StoreRepository) TagService {
	return &tagService{tagRepo: tagRepo, itemRepo: itemRepo, storeRepo: storeRepo}
}

func (s *tagService) ListByStore(ctx context.Context, storeID int64) ([]models.Tag, error) {
	if err := s.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.tagRepo.FindByStore(ctx, storeID)
}

func (s *tagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	return tag, err
}

// Create adds a tag to a store. Tag names are not unique, even within a store.
func (s *tagService) Create(ctx context.Context, storeID int64, name string) (*models.Tag, error) {
	if err := s.requireStore(ctx, storeID); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name, StoreID: storeID}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return s.Get(ctx, tag.ID)
}

// Delete removes a tag that no item links to.
func (s *tagService) Delete(ctx context.Context, id int64) error {
	err := s.tagRepo.DeleteUnused(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTagNotFound
	case errors.Is(err, repository.ErrTagInUse):
		return ErrTagInUse
	}
	return err
}

// LinkToItem attaches the tag to the item; repeating the call is harmless.
func (s *tagService) LinkToItem(ctx context.Context, itemID, tagID int64) (*TagLink, error) {
	if _, _, err := s.loadPair(ctx, itemID, tagID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.LinkTag(ctx, itemID, tagID); err != nil {
		return nil, err
	}
	return s.reloadPair(ctx, itemID, tagID)
}

// UnlinkFromItem detaches the tag from the item. Neither record is deleted.
func (s *tagService) UnlinkFromItem(ctx context.Context, itemID, tagID int64) (*TagLink, error) {
	if _, _, err := s.loadPair(ctx, itemID, tagID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.UnlinkTag(ctx, itemID, tagID); err != nil {
		return nil, err
	}
	return s.reloadPair(ctx, itemID, tagID)
}

func (s *tagService) loadPair(ctx context.Context, itemID, tagID int64) (*models.Item, *models.Tag, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrItemNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	tag, err := s.Get(ctx, tagID)
	if err != nil {
		return nil, nil, err
	}
	return item, tag, nil
}

func (s *tagService) reloadPair(ctx context.Context, itemID, tagID int64) (*TagLink, error) {
	item, tag, err := s.loadPair(ctx, itemID, tagID)
	if err != nil {
		return nil, err
	}
	return &TagLink{Item: item, Tag: tag}, nil
}

func (s *tagService) requireStore(ctx context.Context, storeID int64) error {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrStoreNotFound
	}
	return nil
}
