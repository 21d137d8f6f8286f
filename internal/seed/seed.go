package seed

import (
	"log"
	"time"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"gorm.io/gorm"
)

// Run populates the permission catalog and, on a fresh database, a
// small set of demo records so the API is usable right after boot.
// It is safe to call on every start.
func Run(db *gorm.DB) {
	permissionRepo := repository.NewPermissionRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := permissionRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed permissions: %v", err)
	}

	count, err := userRepo.Count()
	if err != nil {
		log.Printf("Warning: Failed to check existing users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	seedUsers(permissionRepo, userRepo)
	seedCatalog(db)
	seedCustomers(db)
	seedStores(db)
}

var cashierPermissionCodes = []string{
	"pos_operate", "inventory_view", "customer_view",
}

var managerPermissionCodes = []string{
	"pos_operate", "pos_void", "pos_refund",
	"inventory_view", "inventory_edit",
	"customer_view", "customer_edit",
	"staff_view", "reports_view", "reports_generate",
	"price_override", "manager_approval",
}

func seedUsers(permissionRepo repository.PermissionRepository, userRepo repository.UserRepository) {
	allPermissions, err := permissionRepo.FindAll()
	if err != nil {
		log.Printf("Warning: Failed to load permissions: %v", err)
		return
	}
	managerPermissions, _ := permissionRepo.FindByCodes(managerPermissionCodes)
	cashierPermissions, _ := permissionRepo.FindByCodes(cashierPermissionCodes)

	users := []struct {
		user        *model.User
		password    string
		permissions []model.Permission
	}{
		{
			user: &model.User{
				Username:   "admin",
				Email:      "admin@example.com",
				FirstName:  "System",
				LastName:   "Administrator",
				Role:       model.RoleAdmin,
				Department: "Management",
				IsActive:   true,
			},
			password:    "admin123",
			permissions: allPermissions,
		},
		{
			user: &model.User{
				Username:   "manager1",
				Email:      "manager@example.com",
				FirstName:  "Morgan",
				LastName:   "Hayes",
				Role:       model.RoleStoreManager,
				Department: "Management",
				IsActive:   true,
			},
			password:    "manager123",
			permissions: managerPermissions,
		},
		{
			user: &model.User{
				Username:   "cashier1",
				Email:      "cashier@example.com",
				FirstName:  "Jamie",
				LastName:   "Lee",
				Role:       model.RoleCashier,
				Department: "Front End",
				IsActive:   true,
			},
			password:    "cashier123",
			permissions: cashierPermissions,
		},
	}

	for _, entry := range users {
		entry.user.CreatedBy = "system"
		entry.user.UpdatedBy = "system"
		entry.user.Permissions = entry.permissions
		if err := entry.user.SetPassword(entry.password); err != nil {
			log.Printf("Warning: Failed to hash password for %s: %v", entry.user.Username, err)
			continue
		}
		if err := userRepo.Create(entry.user); err != nil {
			log.Printf("Warning: Failed to create user %s: %v", entry.user.Username, err)
		}
	}
	log.Println("Seeded demo users: admin / manager1 / cashier1")
}

func seedCatalog(db *gorm.DB) {
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)

	categoryNames := []string{
		"Produce", "Dairy", "Meat", "Bakery",
		"Frozen", "Beverages", "Snacks", "Household",
	}
	categories := make(map[string]*model.Category, len(categoryNames))
	for _, name := range categoryNames {
		category := &model.Category{Name: name, IsActive: true}
		category.CreatedBy = "system"
		category.UpdatedBy = "system"
		if err := categoryRepo.Create(category); err != nil {
			log.Printf("Warning: Failed to create category %s: %v", name, err)
			continue
		}
		categories[name] = category
	}

	products := []model.Product{
		{
			SKU: "PRD-001", Barcode: "0000000000017", Name: "Bananas",
			Description: "Fresh bananas, per lb", Brand: "Farm Fresh",
			UnitPrice: 1.29, CostPrice: 0.65,
			StockQuantity: 150, ReorderPoint: 30, MaxStock: 300,
			IsActive: true, IsWeighted: true,
		},
		{
			SKU: "PRD-002", Barcode: "0000000000024", Name: "Whole Milk",
			Description: "Whole milk, 1 gallon", Brand: "Dairyland",
			UnitPrice: 3.99, CostPrice: 2.50,
			StockQuantity: 80, ReorderPoint: 20, MaxStock: 160,
			IsActive: true,
		},
		{
			SKU: "PRD-003", Barcode: "0000000000031", Name: "Ground Beef",
			Description: "Ground beef 80/20, per lb", Brand: "Butcher's Choice",
			UnitPrice: 6.99, CostPrice: 4.20,
			StockQuantity: 45, ReorderPoint: 15, MaxStock: 90,
			IsActive: true, IsWeighted: true,
		},
	}
	productCategories := []string{"Produce", "Dairy", "Meat"}

	for i := range products {
		if category, ok := categories[productCategories[i]]; ok {
			products[i].CategoryID = &category.ID
		}
		products[i].CreatedBy = "system"
		products[i].UpdatedBy = "system"
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Warning: Failed to create product %s: %v", products[i].SKU, err)
		}
	}
}

func seedCustomers(db *gorm.DB) {
	customerRepo := repository.NewCustomerRepo(db)

	joined := time.Now().AddDate(-1, 0, 0)
	customer := &model.Customer{
		FirstName:   "Alice",
		LastName:    "Williams",
		Email:       "alice.williams@example.com",
		PhoneNumber: "555-0142",
		Street:      "12 Oak Street",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62704",
		Country:     "USA",
		LoyaltyCard: model.LoyaltyCard{
			Number:   "LC001234",
			Points:   1250,
			Tier:     model.TierGold,
			JoinDate: &joined,
			IsActive: true,
		},
		IsActive: true,
	}
	customer.CreatedBy = "system"
	customer.UpdatedBy = "system"
	if err := customerRepo.Create(customer); err != nil {
		log.Printf("Warning: Failed to create demo customer: %v", err)
	}
}

func seedStores(db *gorm.DB) {
	storeRepo := repository.NewStoreRepo(db)

	weekday := model.DayHours{Open: "08:00", Close: "21:00"}
	weekend := model.DayHours{Open: "09:00", Close: "18:00"}

	store := &model.StoreLocation{
		Name:        "Downtown Store",
		PhoneNumber: "555-0100",
		Region:      "Central",
		Street:      "100 Main Street",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62701",
		Country:     "USA",
		IsActive:    true,
		OperatingHours: model.OperatingHours{
			Monday: weekday, Tuesday: weekday, Wednesday: weekday,
			Thursday: weekday, Friday: weekday,
			Saturday: weekend, Sunday: weekend,
		},
	}
	store.CreatedBy = "system"
	store.UpdatedBy = "system"
	if err := storeRepo.Create(store); err != nil {
		log.Printf("Warning: Failed to create demo store: %v", err)
	}
}
