package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/weddlist/backend/internal/config"
	"github.com/weddlist/backend/internal/handlers"
	"github.com/weddlist/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	weddingHandler *handlers.WeddingHandler,
	guestHandler *handlers.GuestHandler,
	groupHandler *handlers.GroupHandler,
	giftHandler *handlers.GiftHandler,
	collaboratorHandler *handlers.CollaboratorHandler,
	inviteHandler *handlers.InviteHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/magic-link", authHandler.RequestMagicLink)
	auth.Post("/magic", authHandler.MagicLogin)

	// Invite landing — public by design; the code is the capability
	api.Get("/invite/:code", inviteHandler.Info)
	api.Post("/invite/:code/request-link", inviteHandler.RequestLink)

	// Protected routes (JWT required) - apply middleware per route so it
	// never affects the public surface
	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Post("/auth/password", jwt, authHandler.SetPassword)

	api.Get("/wedding", jwt, weddingHandler.Get)
	api.Post("/wedding", jwt, weddingHandler.Setup)
	api.Put("/wedding", jwt, weddingHandler.Update)
	api.Get("/stats", jwt, weddingHandler.Stats)

	api.Get("/guests", jwt, guestHandler.List)
	api.Post("/guests", jwt, guestHandler.Create)
	api.Put("/guests/:id", jwt, guestHandler.Update)
	api.Delete("/guests/:id", jwt, guestHandler.Delete)

	api.Get("/groups", jwt, groupHandler.List)
	api.Get("/groups/stats", jwt, groupHandler.ListWithStats)
	api.Post("/groups", jwt, groupHandler.Create)
	api.Put("/groups/:id", jwt, groupHandler.Update)
	api.Delete("/groups/:id", jwt, groupHandler.Delete)

	api.Get("/gifts", jwt, giftHandler.List)

	api.Get("/collaborators", jwt, collaboratorHandler.List)
	api.Post("/collaborators", jwt, collaboratorHandler.Share)
	api.Delete("/collaborators/:email", jwt, collaboratorHandler.Revoke)

	api.Post("/invite/:code/accept", jwt, inviteHandler.Accept)
}
