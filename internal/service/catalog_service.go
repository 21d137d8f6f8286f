package service

import (
	"errors"
	"fmt"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/ws"
	"github.com/alhadaf/pos/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrDuplicateSKU     = errors.New("SKU already exists")
	ErrDuplicateBarcode = errors.New("barcode already exists")
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
	GetLowStock() ([]model.Product, error)
	GetCategories() ([]model.Category, error)
	CreateCategory(req *model.Category, userID string) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	wsHub        *ws.Hub
	searchLimit  int
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, hub *ws.Hub, searchLimit int) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		wsHub:        hub,
		searchLimit:  searchLimit,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	// 1. Basic struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Business validation: SKU and barcode must be unique
	if existing, _ := s.productRepo.FindBySKU(req.SKU); existing != nil {
		return ErrDuplicateSKU
	}
	if existing, _ := s.productRepo.FindByBarcode(req.Barcode); existing != nil {
		return ErrDuplicateBarcode
	}

	// 3. Audit fields
	req.CreatedBy = userID
	req.UpdatedBy = userID

	// 4. Persist
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	// 5. Broadcast to dashboards
	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    req.ID,
			"sku":   req.SKU,
			"name":  req.Name,
			"stock": req.StockQuantity,
			"price": req.UnitPrice,
		},
		"message": fmt.Sprintf("%s created product '%s'", userName, req.Name),
	})

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	oldStock := existing.StockQuantity

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SKU = req.SKU
	existing.Barcode = req.Barcode
	existing.Brand = req.Brand
	existing.UnitPrice = req.UnitPrice
	existing.CostPrice = req.CostPrice
	existing.StockQuantity = req.StockQuantity
	existing.ReorderPoint = req.ReorderPoint
	existing.MaxStock = req.MaxStock
	existing.CategoryID = req.CategoryID
	existing.IsActive = req.IsActive
	existing.IsWeighted = req.IsWeighted
	existing.AgeRestricted = req.AgeRestricted
	existing.MinimumAge = req.MinimumAge
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":        existing.ID,
			"sku":       existing.SKU,
			"name":      existing.Name,
			"old_stock": oldStock,
			"new_stock": existing.StockQuantity,
			"price":     existing.UnitPrice,
		},
		"message": fmt.Sprintf("%s updated product '%s'", userName, existing.Name),
	})

	return existing, nil
}

// DeleteProduct removes the product from the catalog. Ledger lines keep
// their snapshots, so history survives the delete.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	return s.productRepo.Search(query, s.searchLimit)
}

func (s *catalogService) GetLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) CreateCategory(req *model.Category, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if existing, _ := s.categoryRepo.FindByName(req.Name); existing != nil {
		return errors.New("category already exists")
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.categoryRepo.Create(req)
}
