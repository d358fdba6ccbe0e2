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
	appanalytics "github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/export"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/report"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/jsonfile"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Kardex-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Bool("auto_delete_zero", cfg.Ledger.AutoDeleteOnZero).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Adaptador de persistencia según configuración
	var storage repository.Storage
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgStorage := postgres.NewStorage(pool)
		if err := pgStorage.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración de esquema")
		}
		storage = pgStorage
	default:
		fileStorage, err := jsonfile.NewStorage(cfg.Storage.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("adaptador de archivos")
		}
		storage = fileStorage
	}

	// Estado vivo: carga inicial de ambas colecciones
	store := memory.NewStore(storage)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial de colecciones")
	}

	productRepo := memory.NewProductRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	statsRepo := memory.NewStatsRepository(store)
	txRunner := memory.NewTxRunner(store)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, inventory.Policy{
		AutoDeleteOnZero: cfg.Ledger.AutoDeleteOnZero,
	})
	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	movementUC := usecase.NewMovementUseCase(movementRepo, productRepo)
	statsUC := appanalytics.NewStatsUseCase(statsRepo)
	exportUC := export.NewCSVUseCase(productRepo, movementRepo)
	reportUC := report.NewPDFUseCase(cfg.App.Name, productRepo, statsRepo, infrapdf.NewMarotoReportGenerator())

	// Cuentas sembradas desde el entorno
	users, err := auth.SeedUsers([]auth.Account{
		{Email: cfg.Auth.Admin.Email, Password: cfg.Auth.Admin.Password, Name: cfg.Auth.Admin.Name, Role: entity.RoleAdmin},
		{Email: cfg.Auth.Operator.Email, Password: cfg.Auth.Operator.Password, Name: cfg.Auth.Operator.Name, Role: entity.RoleOperador},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar cuentas")
	}
	if len(users) == 0 {
		log.Warn().Msg("sin cuentas configuradas: la API protegida no será accesible")
	}
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		MovementUC:       movementUC,
		RegisterMovement: registerMovementUC,
		StatsUC:          statsUC,
		ExportUC:         exportUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
