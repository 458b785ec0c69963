package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	VariantUC *usecase.VariantUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); las escrituras además rol admin.
	products := api.Group("/products", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(auth.RoleAdmin)

	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/catalog", productHandler.Catalog) // antes de /:id
	products.Post("/", write, productHandler.Create)
	products.Post("/secure-create", write, productHandler.SecureCreate)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)
	products.Get("/:id/audit", productHandler.Audit)

	variantHandler := NewVariantHandler(deps.VariantUC)
	products.Get("/:id/variants", variantHandler.List)
	products.Post("/:id/variants", write, variantHandler.Create)
	products.Put("/:id/variants/:variantId", write, variantHandler.Update)
	products.Delete("/:id/variants/:variantId", write, variantHandler.Delete)
}
