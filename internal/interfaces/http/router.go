package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/auth"
	"github.com/jhoicas/gestion-api/internal/application/partner"
	"github.com/jhoicas/gestion-api/internal/application/stats"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	ClientUC       *usecase.ClientUseCase
	FournisseurUC  *usecase.FournisseurUseCase
	PartnerUC      *partner.UseCase
	FactureUC      *usecase.FactureUseCase
	BonLivraisonUC *usecase.BonLivraisonUseCase
	BordereauUC    *usecase.BordereauUseCase
	UserUC         *usecase.UserUseCase
	Stats          *stats.Aggregator
	JWTSecret      string
	ServiceName    string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	products := protected.Group("/product")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", admin, productHandler.Create)
	products.Get("/all", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	clients := protected.Group("/client")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", admin, clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id/invoice", clientHandler.Invoice)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", admin, clientHandler.Update)
	clients.Delete("/:id", admin, clientHandler.Delete)
	clients.Post("/:clientId/purchase", admin, clientHandler.AddPurchase)
	clients.Put("/:clientId/purchase/:lineId/payment", admin, clientHandler.UpdatePayment)

	fournisseurs := protected.Group("/fournisseur")
	fournisseurHandler := NewFournisseurHandler(deps.FournisseurUC)
	fournisseurs.Post("/", admin, fournisseurHandler.Create)
	fournisseurs.Get("/", fournisseurHandler.List)
	fournisseurs.Get("/:id", fournisseurHandler.Get)
	fournisseurs.Put("/:id", admin, fournisseurHandler.Update)
	fournisseurs.Delete("/:id", admin, fournisseurHandler.Delete)
	fournisseurs.Post("/:id/produit", admin, fournisseurHandler.AddDelivery)
	fournisseurs.Put("/:id/produit/:lineId/payment", admin, fournisseurHandler.UpdatePayment)

	// Partenaires: cualquier usuario autenticado. Las rutas fijas van antes que /:id.
	partners := protected.Group("/partner")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/transfer/:fromId/:toId", partnerHandler.Transfer)
	partners.Post("/settle/:aId/:bId", partnerHandler.Settle)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id/summary", partnerHandler.Summary)
	partners.Get("/:id/invoice", partnerHandler.Invoice)
	partners.Post("/:id/transaction", partnerHandler.AddTransaction)
	partners.Put("/:partnerId/transaction/:transactionId/payment", partnerHandler.UpdatePayment)
	partners.Post("/:id/distribute-payment", partnerHandler.DistributePayment)
	partners.Get("/:id", partnerHandler.Get)
	partners.Put("/:id", partnerHandler.Update)
	partners.Delete("/:id", partnerHandler.Delete)

	factures := protected.Group("/facture")
	factureHandler := NewFactureHandler(deps.FactureUC)
	factures.Post("/", factureHandler.Create)
	factures.Get("/", factureHandler.List)
	factures.Get("/:id", factureHandler.Get)
	factures.Put("/:id/payment", factureHandler.AddPayment)

	bons := protected.Group("/bonlivraison")
	bonHandler := NewBonLivraisonHandler(deps.BonLivraisonUC)
	bons.Post("/", bonHandler.Create)
	bons.Get("/", bonHandler.List)
	bons.Get("/:id", bonHandler.Get)

	bordereaux := protected.Group("/bordereau")
	bordereauHandler := NewBordereauHandler(deps.BordereauUC)
	bordereaux.Post("/", admin, bordereauHandler.Create)
	bordereaux.Get("/", bordereauHandler.List)
	bordereaux.Get("/:id", bordereauHandler.Get)
	bordereaux.Put("/:id", admin, bordereauHandler.Update)
	bordereaux.Delete("/:id", admin, bordereauHandler.Delete)

	// Usuarios: solo admin, todos los métodos.
	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	statsHandler := NewStatsHandler(deps.Stats)
	protected.Get("/stats", statsHandler.Get)
}
