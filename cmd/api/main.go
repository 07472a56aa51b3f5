package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "approvals/api/swagger" // swagger docs
	"approvals/internal/config"
	"approvals/internal/database"
	"approvals/internal/events"
	"approvals/internal/handler"
	"approvals/internal/logger"
	"approvals/internal/middleware"
	"approvals/internal/repository"
	"approvals/internal/seed"
	"approvals/internal/service"
	"approvals/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Portal Approvals API
// @version         1.0
// @description     Approval requests with budget gating and purchase / stock fulfillment.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envErr := godotenv.Load("configs/.env")

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
	})
	if envErr != nil {
		log.Debug().Msg("no configs/.env file found, using process environment")
	}

	zone, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid BUDGET_TIME_ZONE")
	}

	db, err := database.NewConnection(cfg.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Str("host", cfg.DB.Host).Msg("connected to PostgreSQL")

	ctx := context.Background()

	// Repositories
	txManager := repository.NewTransactionManager(db, cfg.DB.LockTimeout)
	requestRepo := repository.NewApprovalRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	supplierInfoRepo := repository.NewSupplierInfoRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	stockRepo := repository.NewStockRepository(db)
	orderRepo := repository.NewPurchaseOrderRepository(db)
	transferRepo := repository.NewStockTransferRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	roleService := service.NewRoleService(roleRepo, txManager)
	if err := roleService.SeedDefaultRolesAndPermissions(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to seed roles and permissions")
	}
	seedReferenceData(ctx, cfg.Workflow.SeedFile, seed.NewSeeder(txManager, categoryRepo, budgetRepo, locationRepo, productRepo, stockRepo, log), log)

	middleware.InitAuth([]byte(cfg.Auth.JWTSecret), roleRepo.PermissionCodes)

	// Event fan-out: websocket clients always, NATS when configured
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	publishers := []events.Publisher{events.NewHubPublisher(wsHub, log)}
	if cfg.NATS.URL != "" {
		nc, err := events.ConnectNATS(cfg.NATS.URL, cfg.App.Name, log)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NATS.URL).Msg("NATS unavailable, events go to websocket clients only")
		} else {
			defer nc.Drain()
			publishers = append(publishers, events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix, log))
		}
	}

	// Core workflow
	auditService := service.NewAuditService(auditRepo)
	ledger := service.NewBudgetLedger(requestRepo, service.BudgetPolicy{
		Period:       cfg.Workflow.BudgetPeriod,
		UnsetCeiling: cfg.Workflow.UnsetCeiling,
		Location:     zone,
	})
	resolver := service.NewLocationResolver(stockRepo, locationRepo, cfg.Workflow.DefaultSourceLocation)
	trusted := service.NewTrustedOps(productRepo, partnerRepo, supplierInfoRepo, locationRepo, auditService, cfg.Workflow.MainStockLocation)
	purchaseBuilder := service.NewPurchaseOrderBuilder(requestRepo, orderRepo, productRepo, sequenceRepo, attachmentRepo, trusted, auditService, log)
	transferBuilder := service.NewStockTransferBuilder(requestRepo, transferRepo, stockRepo, sequenceRepo, auditService, cfg.Workflow.StockRequisitionCategory, log)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, requestRepo, txManager, auditService, log)

	approvalService := service.NewApprovalService(service.ApprovalServiceDeps{
		TxManager:   txManager,
		Requests:    requestRepo,
		Categories:  categoryRepo,
		Budgets:     budgetRepo,
		Partners:    partnerRepo,
		Products:    productRepo,
		Locations:   locationRepo,
		Attachments: attachmentRepo,
		Sequences:   sequenceRepo,
		Employees:   employeeService,
		Ledger:      ledger,
		Resolver:    resolver,
		Trusted:     trusted,
		Transfers:   transferBuilder,
		Audit:       auditService,
		Publisher:   events.Multi(publishers...),
		Log:         log,
		Strategies:  []service.FulfillmentStrategy{purchaseBuilder, transferBuilder},
	})
	catalogService := service.NewCatalogService(productRepo, partnerRepo, locationRepo, stockRepo, trusted, txManager)
	categoryService := service.NewCategoryService(categoryRepo, budgetRepo, ledger)

	// Handlers
	approvalHandler := handler.NewApprovalHandler(approvalService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	auditHandler := handler.NewAuditHandler(auditService)
	roleHandler := handler.NewRoleHandler(roleService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.App.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "ws_clients": wsHub.ClientCount()})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("")
	approvalHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	employeeHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)
	roleHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func seedReferenceData(ctx context.Context, path string, seeder *seed.Seeder, log zerolog.Logger) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Debug().Str("path", path).Msg("no seed file, skipping reference data")
		return
	}
	data, err := seed.LoadFile(path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load seed file")
		return
	}
	if _, err := seeder.Apply(ctx, data); err != nil {
		log.Warn().Err(err).Msg("failed to apply seed data")
	}
}
