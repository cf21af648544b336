package service

import (
	"context"
	"errors"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"github.com/flyosprey/Store-REST-API/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrStoreExists   = errors.New("store with that name already exists")
)

// StoreService manages stores.
type StoreService interface {
	List(ctx context.Context) ([]models.Store, error)
	Get(ctx context.Context, id int64) (*models.Store, error)
	Create(ctx context.Context, name string) (*models.Store, error)
	Delete(ctx context.Context, id int64) error
}

type storeService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService creates a new StoreService instance.
func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) List(ctx context.Context) ([]models.Store, error) {
	return s.storeRepo.FindAll(ctx)
}

func (s *storeService) Get(ctx context.Context, id int64) (*models.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoreNotFound
	}
	return store, err
}

// Create relies on the unique index to reject duplicate names.
func (s *storeService) Create(ctx context.Context, name string) (*models.Store, error) {
	store := &models.Store{Name: name}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStoreExists
		}
		return nil, err
	}
	return store, nil
}

// Delete removes the store together with its items and tags.
func (s *storeService) Delete(ctx context.Context, id int64) error {
	err := s.storeRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStoreNotFound
	}
	return err
}
