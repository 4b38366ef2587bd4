package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/gestorpyme/gestor-api/internal/application/analytics"
	apporders "github.com/gestorpyme/gestor-api/internal/application/orders"
	appreports "github.com/gestorpyme/gestor-api/internal/application/reports"
	"github.com/gestorpyme/gestor-api/internal/application/usecase"
	infraai "github.com/gestorpyme/gestor-api/internal/infrastructure/ai"
	infrapdf "github.com/gestorpyme/gestor-api/internal/infrastructure/pdf"
	"github.com/gestorpyme/gestor-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestorpyme/gestor-api/internal/interfaces/http"
	"github.com/gestorpyme/gestor-api/pkg/config"
	"github.com/gestorpyme/gestor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	salesRepo := postgres.NewSalesOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := usecase.NewAuthUseCase(userRepo, companyRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	salesUC := apporders.NewSales(txRunner, salesRepo, productRepo, customerRepo)
	purchasesUC := apporders.NewPurchase(txRunner, purchaseRepo, productRepo, supplierRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportsUC := appreports.NewUseCase(productRepo, salesRepo, purchaseRepo, companyRepo, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(productRepo, salesRepo, purchaseRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	aiUC := usecase.NewAIUseCase(anthropicSvc, analyticsRepo)
	insightsUC := usecase.NewInsightsUseCase(analyticsRepo)
	routeUC := usecase.NewRouteUseCase(customerRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor PyME API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		SalesUC:     salesUC,
		PurchasesUC: purchasesUC,
		ReportsUC:   reportsUC,
		DashboardUC: dashboardUC,
		AIUC:        aiUC,
		InsightsUC:  insightsUC,
		RouteUC:     routeUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
