package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/http/handlers"
	"github.com/mypaws/adoption-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Adoptions      *handlers.AdoptionHandler
	Breeders       *handlers.BreederHandler
	Payments       *handlers.PaymentHandler
	Favorites      *handlers.FavoriteHandler
	Images         *handlers.ImageHandler
	Lookups        *handlers.LookupHandler
	Dashboard      *handlers.DashboardHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes. Static paths register before dynamic
// siblings so "/breeders/profile" never resolves as a profile id.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	limited := func(h fiber.Handler) []fiber.Handler {
		if cfg.RateLimiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{cfg.RateLimiter, h}
	}

	api.Post("/auth/register", limited(cfg.Auth.Register)...)
	api.Post("/auth/login", limited(cfg.Auth.Login)...)
	api.Post("/auth/refresh", limited(cfg.Auth.Refresh)...)
	api.Post("/auth/logout", cfg.Auth.Logout)

	api.Get("/lookups/pet-types", cfg.Lookups.PetTypes)
	api.Get("/lookups/pet-types/:id/breeds", cfg.Lookups.Breeds)
	api.Get("/lookups/countries", cfg.Lookups.Countries)
	api.Get("/lookups/states", cfg.Lookups.States)
	api.Get("/lookups/cities", cfg.Lookups.Cities)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireUser())
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Patch("/auth/me", cfg.Auth.UpdateProfile)

	// Adoption listings: owner surface before the public slug route.
	protected.Get("/me/adoptions", cfg.Adoptions.ListMine)
	protected.Get("/me/adoptions/:id", cfg.Adoptions.GetMine)
	protected.Post("/adoptions", cfg.Adoptions.Create)
	protected.Put("/adoptions/:id", cfg.Adoptions.Update)
	protected.Delete("/adoptions/:id", cfg.Adoptions.Delete)
	protected.Post("/adoptions/:id/submit", cfg.Adoptions.SubmitForReview)
	protected.Post("/adoptions/:id/adopted", cfg.Adoptions.MarkAdopted)
	api.Get("/adoptions", cfg.Adoptions.Search)
	api.Get("/adoptions/:slug", cfg.Adoptions.GetBySlug)
	api.Post("/adoptions/:id/inquiries", cfg.Adoptions.Inquire)

	// Breeder surface.
	protected.Post("/breeders/applications", cfg.Breeders.SubmitApplication)
	protected.Get("/breeders/applications/mine", cfg.Breeders.MyApplication)
	breeder := protected.Group("", auth.RequireBreeder())
	breeder.Get("/breeders/profile", cfg.Breeders.MyProfile)
	breeder.Put("/breeders/profile", cfg.Breeders.UpdateProfile)
	breeder.Post("/breeder-listings", cfg.Breeders.CreateListing)
	breeder.Get("/me/breeder-listings", cfg.Breeders.ListMine)
	breeder.Put("/breeder-listings/:id", cfg.Breeders.UpdateListing)
	breeder.Delete("/breeder-listings/:id", cfg.Breeders.DeleteListing)
	breeder.Post("/breeder-listings/:id/sold", cfg.Breeders.MarkSold)
	api.Get("/breeders/:id", cfg.Breeders.PublicProfile)
	api.Get("/breeder-listings/:slug", cfg.Breeders.GetListingBySlug)

	// Payments.
	protected.Post("/payments/initiate", limited(cfg.Payments.Initiate)...)
	protected.Post("/payments/verify", limited(cfg.Payments.Verify)...)
	protected.Get("/payments", cfg.Payments.ListMine)

	// Favorites, uploads, dashboard.
	protected.Get("/favorites", cfg.Favorites.List)
	protected.Post("/favorites/:listing_id", cfg.Favorites.Add)
	protected.Delete("/favorites/:listing_id", cfg.Favorites.Remove)
	protected.Post("/images", cfg.Images.Upload)
	protected.Get("/dashboard", cfg.Dashboard.Overview)

	// Admin surface.
	admin := app.Group("/api/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/adoptions/pending", cfg.Admin.PendingListings)
	admin.Post("/adoptions/:id/approve", cfg.Admin.ApproveListing)
	admin.Post("/adoptions/:id/reject", cfg.Admin.RejectListing)
	admin.Get("/applications", cfg.Admin.ListApplications)
	admin.Post("/applications/:id/approve", cfg.Admin.ApproveApplication)
	admin.Post("/applications/:id/reject", cfg.Admin.RejectApplication)
	admin.Post("/applications/:id/request-info", cfg.Admin.RequestApplicationInfo)
	admin.Post("/users/:id/status", cfg.Admin.SetUserStatus)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Post("/usages/expire", cfg.Admin.ExpireUsages)
}
