package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alhadaf/pos/internal/config"
	"github.com/alhadaf/pos/internal/handler"
	"github.com/alhadaf/pos/internal/middleware"
	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/seed"
	"github.com/alhadaf/pos/internal/service"
	"github.com/alhadaf/pos/internal/ws"
	"github.com/alhadaf/pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.Connect(cfg.DBDriver, cfg.DBDSN)
	db.AutoMigrate(
		&model.Permission{}, &model.User{},
		&model.Category{}, &model.Product{},
		&model.Customer{}, &model.StoreLocation{},
		&model.Transaction{}, &model.TransactionItem{},
	)

	// 3. Seed permissions and demo data
	seed.Run(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	userRepo := repository.NewUserRepo(db)
	permissionRepo := repository.NewPermissionRepo(db)

	authService := service.NewAuthService(userRepo, wsHub, cfg.SessionTimeout)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, wsHub, cfg.SearchPageSize)
	customerService := service.NewCustomerService(customerRepo, txRepo, cfg.SearchPageSize)
	cartService := service.NewCartService(db, productRepo, customerRepo, storeRepo, txRepo, wsHub, cfg.TaxRate)
	storeService := service.NewStoreService(storeRepo, wsHub)
	reportService := service.NewReportService(txRepo, productRepo, customerRepo, storeRepo)
	userService := service.NewUserService(userRepo, permissionRepo)

	if cfg.StockDecrement {
		cartService.RegisterHook(service.StockDecrementHook(productRepo))
	}
	if cfg.LoyaltyAccrual {
		cartService.RegisterHook(service.LoyaltyAccrualHook(customerRepo))
	}

	// Pick the first store as the active one on boot.
	if stores, err := storeRepo.FindAll(); err == nil && len(stores) > 0 {
		if _, err := storeService.Select(stores[0].ID); err != nil {
			log.Printf("Warning: Failed to select default store: %v", err)
		}
	}

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	cartHandler := handler.NewCartHandler(cartService)
	txHandler := handler.NewTransactionHandler(txRepo)
	storeHandler := handler.NewStoreHandler(storeService)
	analyticsHandler := handler.NewAnalyticsHandler(reportService)
	userHandler := handler.NewUserHandler(userService, permissionRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/search", catalogHandler.SearchProducts)
	protected.Get("/products/low-stock", catalogHandler.GetLowStock)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePermission("inventory_edit"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePermission("inventory_edit"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePermission("inventory_edit"), catalogHandler.DeleteProduct)
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePermission("inventory_edit"), catalogHandler.CreateCategory)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/search", customerHandler.SearchCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Get("/customers/:id/profile", customerHandler.GetProfile)
	protected.Get("/customers/:id/transactions", txHandler.GetCustomerTransactions)
	protected.Post("/customers", middleware.RequirePermission("customer_edit"), customerHandler.CreateCustomer)
	protected.Put("/customers/:id", middleware.RequirePermission("customer_edit"), customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequirePermission("customer_edit"), customerHandler.DeleteCustomer)

	// Carts and checkout
	carts := protected.Group("/carts", middleware.RequirePermission("pos_operate"))
	carts.Post("", cartHandler.StartCart)
	carts.Get("/:id", cartHandler.GetCart)
	carts.Delete("/:id", cartHandler.ClearCart)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Put("/:id/items/:itemId", cartHandler.UpdateItem)
	carts.Delete("/:id/items/:itemId", cartHandler.RemoveItem)
	carts.Put("/:id/customer", cartHandler.AttachCustomer)
	carts.Post("/:id/checkout", cartHandler.Checkout)

	// Transaction ledger (read only)
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Get("/transactions/:id", txHandler.GetTransaction)

	// Stores
	protected.Get("/stores", storeHandler.GetStores)
	protected.Get("/stores/current", storeHandler.GetCurrentStore)
	protected.Get("/stores/:id", storeHandler.GetStore)
	protected.Post("/stores", middleware.RequirePermission("settings_edit"), storeHandler.CreateStore)
	protected.Put("/stores/:id", middleware.RequirePermission("settings_edit"), storeHandler.UpdateStore)
	protected.Delete("/stores/:id", middleware.RequirePermission("settings_edit"), storeHandler.DeleteStore)
	protected.Put("/stores/:id/select", storeHandler.SelectStore)

	// Analytics and reports
	protected.Get("/analytics/branch/:id", middleware.RequirePermission("reports_view"), analyticsHandler.GetBranchAnalytics)
	protected.Get("/analytics/branches", middleware.RequirePermission("reports_view"), analyticsHandler.GetAllBranchesAnalytics)
	protected.Get("/analytics/summary", middleware.RequirePermission("reports_view"), analyticsHandler.GetSummary)
	protected.Get("/reports/:type", middleware.RequirePermission("reports_generate"), analyticsHandler.GetReport)

	// Staff
	protected.Get("/users", middleware.RequirePermission("staff_view"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePermission("staff_view"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePermission("staff_edit"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePermission("staff_edit"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePermission("staff_edit"), userHandler.DeleteUser)
	protected.Put("/users/:id/permissions", middleware.RequirePermission("staff_edit"), userHandler.UpdatePermissions)
	protected.Get("/permissions", middleware.RequirePermission("staff_view"), userHandler.GetPermissions)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
