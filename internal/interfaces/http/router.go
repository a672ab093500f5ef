package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vncerqueira/estoquebar-api/internal/application/auth"
	"github.com/vncerqueira/estoquebar-api/internal/application/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/application/report"
	"github.com/vncerqueira/estoquebar-api/internal/application/usecase"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ItemUC         *usecase.ItemUseCase
	CategoryUC     *usecase.CategoryUseCase
	UserUC         *usecase.UserUseCase
	ApplyMovement  *ledger.ApplyMovementUseCase
	CancelMovement *ledger.CancelMovementUseCase
	ListMovements  *ledger.ListMovementsUseCase
	DashboardUC    *report.DashboardUseCase
	JWTSecret      string
}

// Router registra as rotas da API.
//
// RBAC:
//   - escrita de itens/categorias e cancelamento de movimentos: admin ou dono
//   - resumo do dashboard: admin ou dono; alerta de estoque baixo: qualquer autenticado
//   - gestão de usuários: só dono
//   - leitura de itens/categorias e registro de movimentos: qualquer autenticado
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manage := RequireRole(entity.RoleAdmin, entity.RoleDono)

	// Items (protegido; escrita restrita)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", manage, itemHandler.Create)
	items.Put("/:id", manage, itemHandler.Update)
	items.Delete("/:id", manage, itemHandler.Delete)

	// Movements (protegido; registro livre, cancelamento restrito)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.CancelMovement, deps.ListMovements)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Delete("/:id", manage, movementHandler.Cancel)

	// Categories (protegido; escrita restrita)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", manage, categoryHandler.Create)
	categories.Put("/:id", manage, categoryHandler.Update)
	categories.Delete("/:id", manage, categoryHandler.Delete)

	// Dashboard (resumo restrito; alerta de estoque baixo aberto a autenticados)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", manage, dashboardHandler.Summary)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)

	// Users (protegido, só dono)
	users := protected.Group("/users", RequireRole(entity.RoleDono))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
}
