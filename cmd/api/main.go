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

	_ "github.com/vncerqueira/estoquebar-api/docs"
	"github.com/vncerqueira/estoquebar-api/internal/application/auth"
	appledger "github.com/vncerqueira/estoquebar-api/internal/application/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/application/readmodel"
	"github.com/vncerqueira/estoquebar-api/internal/application/report"
	"github.com/vncerqueira/estoquebar-api/internal/application/usecase"
	"github.com/vncerqueira/estoquebar-api/internal/infrastructure/postgres"
	"github.com/vncerqueira/estoquebar-api/internal/infrastructure/rediscache"
	httpRouter "github.com/vncerqueira/estoquebar-api/internal/interfaces/http"
	"github.com/vncerqueira/estoquebar-api/pkg/config"
	"github.com/vncerqueira/estoquebar-api/pkg/logger"
)

// @title EstoqueBar API
// @version 1.0
// @description API de controle de estoque para bar e cozinha: itens, movimentos auditados, categorias, usuários e dashboard.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	views := rediscache.New(ctx, cfg.Redis, log)
	defer views.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemCache := readmodel.NewItemCache()

	applyMovementUC := appledger.NewApplyMovementUseCase(txRunner, itemCache, views)
	cancelMovementUC := appledger.NewCancelMovementUseCase(txRunner, itemCache, views)
	listMovementsUC := appledger.NewListMovementsUseCase(movementRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, txRunner, itemCache, views)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := report.NewDashboardUseCase(reportRepo, views)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EstoqueBar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ItemUC:         itemUC,
		CategoryUC:     categoryUC,
		UserUC:         userUC,
		ApplyMovement:  applyMovementUC,
		CancelMovement: cancelMovementUC,
		ListMovements:  listMovementsUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
