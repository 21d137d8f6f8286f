package repository

import (
	"github.com/alhadaf/pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.StoreLocation) error
	FindAll() ([]model.StoreLocation, error)
	FindByID(id uuid.UUID) (*model.StoreLocation, error)
	Update(store *model.StoreLocation) error
	Delete(id uuid.UUID) error
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) Create(store *model.StoreLocation) error {
	return r.db.Create(store).Error
}

// FindAll returns locations in creation order; branch reports follow this
// ordering.
func (r *storeRepo) FindAll() ([]model.StoreLocation, error) {
	var stores []model.StoreLocation
	err := r.db.Preload("Manager").Order("created_at ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) FindByID(id uuid.UUID) (*model.StoreLocation, error) {
	var store model.StoreLocation
	if err := r.db.Preload("Manager").First(&store, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

func (r *storeRepo) Update(store *model.StoreLocation) error {
	return r.db.Save(store).Error
}

func (r *storeRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.StoreLocation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
