package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/pkg/validator"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = errors.New("email already exists")

// CustomerProfile is a customer plus spend aggregates derived from the
// ledger. The stored total_spent/average_order_value columns are never
// trusted on read; the ledger is the source of truth.
type CustomerProfile struct {
	Customer          model.Customer `json:"customer"`
	TotalSpent        float64        `json:"total_spent"`
	AverageOrderValue float64        `json:"average_order_value"`
	TransactionCount  int            `json:"transaction_count"`
	LastVisit         *time.Time     `json:"last_visit,omitempty"`
}

type CustomerService interface {
	CreateCustomer(req *model.Customer, userID string) error
	UpdateCustomer(id uuid.UUID, req *model.Customer, userID string) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	GetAllCustomers() ([]model.Customer, error)
	SearchCustomers(query string) ([]model.Customer, error)
	GetProfile(id uuid.UUID) (*CustomerProfile, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	txRepo       repository.TransactionRepository
	searchLimit  int
}

func NewCustomerService(cRepo repository.CustomerRepository, tRepo repository.TransactionRepository, searchLimit int) CustomerService {
	return &customerService{
		customerRepo: cRepo,
		txRepo:       tRepo,
		searchLimit:  searchLimit,
	}
}

func (s *customerService) CreateCustomer(req *model.Customer, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.customerRepo.FindByEmail(req.Email); existing != nil {
		return ErrDuplicateEmail
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.customerRepo.Create(req)
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *model.Customer, userID string) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.PhoneNumber = req.PhoneNumber
	existing.Street = req.Street
	existing.City = req.City
	existing.State = req.State
	existing.ZipCode = req.ZipCode
	existing.Country = req.Country
	existing.LoyaltyCard = req.LoyaltyCard
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	return s.customerRepo.Delete(id)
}

func (s *customerService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	return s.customerRepo.FindByID(id)
}

func (s *customerService) GetAllCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) SearchCustomers(query string) ([]model.Customer, error) {
	return s.customerRepo.Search(query, s.searchLimit)
}

// GetProfile recomputes spend aggregates from the ledger on every read.
func (s *customerService) GetProfile(id uuid.UUID) (*CustomerProfile, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.FindByCustomer(id)
	if err != nil {
		return nil, err
	}

	profile := &CustomerProfile{
		Customer:         *customer,
		TransactionCount: len(transactions),
	}
	for _, t := range transactions {
		profile.TotalSpent += t.Total
	}
	if len(transactions) > 0 {
		profile.AverageOrderValue = profile.TotalSpent / float64(len(transactions))
		// Transactions come back oldest first
		last := transactions[len(transactions)-1].Timestamp
		profile.LastVisit = &last
	}
	return profile, nil
}
