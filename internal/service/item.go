package service

import (
	"context"
	"errors"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"github.com/flyosprey/Store-REST-API/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound          = errors.New("item not found")
	ErrInvalidStoreReference = errors.New("referenced store does not exist")
)

// ItemInput carries writable item fields. StoreID is optional on update.
type ItemInput struct {
	Name    string
	Price   float64
	StoreID *int64
}

// ItemService manages items.
type ItemService interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, input ItemInput) (*models.Item, error)
	Upsert(ctx context.Context, id int64, input ItemInput) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
}

type itemService struct {
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
}

// NewItemService creates a new ItemService instance.
func NewItemService(itemRepo repository.ItemRepository, storeRepo repository.StoreRepository) ItemService {
	return &itemService{itemRepo: itemRepo, storeRepo: storeRepo}
}

func (s *itemService) List(ctx context.Context) ([]models.Item, error) {
	return s.itemRepo.FindAll(ctx)
}

func (s *itemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

func (s *itemService) Create(ctx context.Context, input ItemInput) (*models.Item, error) {
	if input.StoreID == nil {
		return nil, ErrInvalidStoreReference
	}
	if err := s.requireStore(ctx, *input.StoreID); err != nil {
		return nil, err
	}

	item := &models.Item{Name: input.Name, Price: input.Price, StoreID: *input.StoreID}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrInvalidStoreReference
		}
		return nil, err
	}
	return s.itemRepo.FindByID(ctx, item.ID)
}

// Upsert updates name and price of an existing item, or creates the item
// under the given id when it does not exist yet. Creation needs a store.
func (s *itemService) Upsert(ctx context.Context, id int64, input ItemInput) (*models.Item, error) {
	if input.StoreID != nil {
		if err := s.requireStore(ctx, *input.StoreID); err != nil {
			return nil, err
		}
	}

	item, err := s.itemRepo.Upsert(ctx, id, func(item *models.Item, exists bool) error {
		if !exists && input.StoreID == nil {
			return ErrInvalidStoreReference
		}
		item.Name = input.Name
		item.Price = input.Price
		if input.StoreID != nil {
			item.StoreID = *input.StoreID
		}
		return nil
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, ErrInvalidStoreReference
	}
	return item, err
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	err := s.itemRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return err
}

func (s *itemService) requireStore(ctx context.Context, storeID int64) error {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidStoreReference
	}
	return nil
}
