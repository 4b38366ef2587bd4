package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpyme/gestor-api/internal/application/analytics"
	"github.com/gestorpyme/gestor-api/internal/application/orders"
	"github.com/gestorpyme/gestor-api/internal/application/reports"
	"github.com/gestorpyme/gestor-api/internal/application/usecase"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *usecase.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	SalesUC     *orders.UseCase
	PurchasesUC *orders.UseCase
	ReportsUC   *reports.UseCase
	DashboardUC *analytics.DashboardUseCase
	AIUC        *usecase.AIUseCase
	InsightsUC  *usecase.InsightsUseCase
	RouteUC     *usecase.RouteUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Escrituras de catálogo y compras: admin o bodeguero. Ventas: admin o
// vendedor. Lecturas: cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	catalogWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	salesWrite := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	purchaseWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportsUC)
	products.Post("/", catalogWrite, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/ledger", productHandler.Ledger)
	products.Put("/:id", catalogWrite, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", salesWrite, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", salesWrite, customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", purchaseWrite, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/search", supplierHandler.Search)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", purchaseWrite, supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Sales orders (protegido)
	sales := protected.Group("/sales-orders")
	salesHandler := NewSalesOrderHandler(deps.SalesUC)
	sales.Post("/", salesWrite, salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Patch("/:id/status", salesWrite, salesHandler.SetStatus)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchasesUC)
	purchases.Post("/", purchaseWrite, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Patch("/:id/status", purchaseWrite, purchaseHandler.SetStatus)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/sales/pdf", reportHandler.SalesPDF)
	reportsGroup.Get("/stock", reportHandler.Stock)
	reportsGroup.Get("/pareto", reportHandler.Pareto)
	reportsGroup.Get("/top", reportHandler.Top)
	reportsGroup.Get("/idle-stock", reportHandler.IdleStock)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Alertas de stock (protegido)
	protected.Get("/alerts", dashboardHandler.Alerts)

	// AI (protegido)
	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC, deps.InsightsUC)
	ai.Post("/chat", aiHandler.Chat)
	ai.Get("/insights", aiHandler.Insights)

	// Routes (protegido)
	routesGroup := protected.Group("/routes")
	routeHandler := NewRouteHandler(deps.RouteUC)
	routesGroup.Post("/plan", routeHandler.Plan)
}
