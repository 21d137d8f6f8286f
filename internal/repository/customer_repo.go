package repository

import (
	"time"

	"github.com/alhadaf/pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	FindCreatedBetween(start, end time.Time) ([]model.Customer, error)
	Search(query string, limit int) ([]model.Customer, error)
	Update(customer *model.Customer) error
	AddLoyaltyPoints(tx *gorm.DB, id uuid.UUID, points int) error
	Delete(id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepo) FindByEmail(email string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// FindCreatedBetween returns customers whose creation time falls in
// [start, end). Used for new-customer counts in reports.
func (r *customerRepo) FindCreatedBetween(start, end time.Time) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").Find(&customers).Error
	return customers, err
}

// Search matches name, email, phone and loyalty card number,
// case-insensitive. An empty query returns the first `limit` customers.
func (r *customerRepo) Search(query string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.Limit(limit)
	if !emptyQuery(query) {
		pattern := likePattern(query)
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ? OR LOWER(loyalty_number) LIKE ?",
			pattern, pattern, pattern, "%"+query+"%", pattern,
		)
	}
	err := q.Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

// AddLoyaltyPoints accepts a *gorm.DB (tx) so accrual can join the checkout
// transaction.
func (r *customerRepo) AddLoyaltyPoints(tx *gorm.DB, id uuid.UUID, points int) error {
	return tx.Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"loyalty_points":        gorm.Expr("loyalty_points + ?", points),
			"loyalty_last_activity": time.Now(),
		}).Error
}

func (r *customerRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
