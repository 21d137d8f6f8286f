package service

import (
	"fmt"
	"sync"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/ws"
	"github.com/alhadaf/pos/pkg/validator"

	"github.com/google/uuid"
)

type StoreService interface {
	CreateStore(req *model.StoreLocation, userID string) error
	UpdateStore(id uuid.UUID, req *model.StoreLocation, userID string) (*model.StoreLocation, error)
	DeleteStore(id uuid.UUID) error
	GetStore(id uuid.UUID) (*model.StoreLocation, error)
	GetAllStores() ([]model.StoreLocation, error)
	Select(id uuid.UUID) (*model.StoreLocation, error)
	Current() *model.StoreLocation
}

type storeService struct {
	storeRepo repository.StoreRepository
	wsHub     *ws.Hub

	mu      sync.Mutex
	current *model.StoreLocation
}

func NewStoreService(sRepo repository.StoreRepository, hub *ws.Hub) StoreService {
	return &storeService{
		storeRepo: sRepo,
		wsHub:     hub,
	}
}

func (s *storeService) CreateStore(req *model.StoreLocation, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.storeRepo.Create(req); err != nil {
		return err
	}

	// First location registered becomes the selection
	s.mu.Lock()
	if s.current == nil {
		s.current = req
	}
	s.mu.Unlock()
	return nil
}

func (s *storeService) UpdateStore(id uuid.UUID, req *model.StoreLocation, userID string) (*model.StoreLocation, error) {
	existing, err := s.storeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.PhoneNumber = req.PhoneNumber
	existing.Region = req.Region
	existing.Street = req.Street
	existing.City = req.City
	existing.State = req.State
	existing.ZipCode = req.ZipCode
	existing.Country = req.Country
	existing.ManagerID = req.ManagerID
	existing.IsActive = req.IsActive
	existing.OperatingHours = req.OperatingHours
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.storeRepo.Update(existing); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == existing.ID {
		s.current = existing
	}
	s.mu.Unlock()

	return existing, nil
}

// DeleteStore removes the location. Deleting the selected location falls
// back to the first remaining one, or clears the selection when the last
// location goes.
func (s *storeService) DeleteStore(id uuid.UUID) error {
	if err := s.storeRepo.Delete(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != id {
		return nil
	}

	remaining, err := s.storeRepo.FindAll()
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		s.current = nil
	} else {
		s.current = &remaining[0]
	}
	s.publishSelection()
	return nil
}

func (s *storeService) GetStore(id uuid.UUID) (*model.StoreLocation, error) {
	return s.storeRepo.FindByID(id)
}

func (s *storeService) GetAllStores() ([]model.StoreLocation, error) {
	return s.storeRepo.FindAll()
}

func (s *storeService) Select(id uuid.UUID) (*model.StoreLocation, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = store
	s.publishSelection()
	s.mu.Unlock()
	return store, nil
}

func (s *storeService) Current() *model.StoreLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// publishSelection must be called with the mutex held.
func (s *storeService) publishSelection() {
	payload := map[string]interface{}{
		"type": "store_selected",
	}
	if s.current != nil {
		payload["store_id"] = s.current.ID.String()
		payload["store_name"] = s.current.Name
	}
	go s.wsHub.Publish(payload)
}
