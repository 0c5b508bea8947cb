package router

import (
	"time"

	"stocklabel/internal/codegen"
	"stocklabel/internal/config"
	"stocklabel/internal/handler"
	"stocklabel/internal/middleware"
	"stocklabel/internal/repository"
	"stocklabel/internal/service"
	"stocklabel/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	stockRepo := repository.NewStockRepository(db)
	templateRepo := repository.NewLabelTemplateRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	gen := codegen.New()
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	warehouseSvc := service.NewWarehouseService(warehouseRepo)
	customerSvc := service.NewCustomerService(customerRepo, gen)
	stockSvc := service.NewStockEntryService(productRepo, warehouseRepo, stockRepo, gen)
	templateSvc := service.NewLabelTemplateService(templateRepo)
	printSvc := service.NewLabelPrintService(templateRepo, productRepo, stockRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	warehousesH := handler.NewWarehousesHandler(warehouseSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	stockH := handler.NewStockHandler(stockSvc)
	labelsH := handler.NewLabelsHandler(templateSvc, printSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.RateLimiter(20, time.Minute), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Reads are open to every authenticated role
		v1.GET("/products", productsH.List)
		v1.GET("/products/:id", productsH.Get)
		products := v1.Group("/products", middleware.RequireRole("admin"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
		}

		v1.GET("/warehouses", warehousesH.List)
		v1.GET("/warehouses/:id", warehousesH.Get)
		warehouses := v1.Group("/warehouses", middleware.RequireRole("admin"))
		{
			warehouses.POST("", warehousesH.Create)
			warehouses.PUT("/:id", warehousesH.Update)
			warehouses.DELETE("/:id", warehousesH.Delete)
			warehouses.POST("/:id/shelves", warehousesH.AddShelf)
			warehouses.DELETE("/:id/shelves/:shelfId", warehousesH.DeleteShelf)
		}

		v1.GET("/customers", customersH.List)
		v1.GET("/customers/:id", customersH.Get)
		v1.POST("/customers", customersH.Create)
		v1.PUT("/customers/:id", customersH.Update)
		v1.DELETE("/customers/:id", middleware.RequireRole("admin"), customersH.Deactivate)

		// Stock entry mints barcodes — staff does this daily
		v1.POST("/stock/entries", stockH.CreateEntry)
		v1.GET("/stock/movements", stockH.ListMovements)
		v1.GET("/barcodes/:code", stockH.GetBarcode)
		v1.PATCH("/barcodes/:code/used", stockH.MarkUsed)

		v1.GET("/label-templates", labelsH.ListTemplates)
		v1.GET("/label-templates/:id", labelsH.GetTemplate)
		v1.GET("/label-templates/:id/export", labelsH.ExportTemplate)
		v1.POST("/label-templates/import", labelsH.ImportTemplate)
		templates := v1.Group("/label-templates", middleware.RequireRole("admin"))
		{
			templates.POST("", labelsH.CreateTemplate)
			templates.PUT("/:id", labelsH.UpdateTemplate)
			templates.DELETE("/:id", labelsH.DeleteTemplate)
			templates.PATCH("/:id/default", labelsH.SetDefault)
			templates.POST("/:id/duplicate", labelsH.DuplicateTemplate)
		}

		v1.POST("/labels/layout", labelsH.PrintLayout)
		v1.POST("/labels/print", labelsH.Print)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
