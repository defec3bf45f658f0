// Package routes declares the full REST surface of the EcoTrack API.
package routes

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/controllers"
	appgraphql "github.com/ecotrackhq/ecotrack/app/graphql"
	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/metrics"
	"github.com/ecotrackhq/ecotrack/pkg/middleware"
	"github.com/ecotrackhq/ecotrack/pkg/rbac"
	"github.com/ecotrackhq/ecotrack/pkg/response"
	"github.com/ecotrackhq/ecotrack/pkg/router"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Materials *controllers.MaterialController
	Products  *controllers.ProductController
	Pickups   *controllers.PickupController
	Orders    *controllers.OrderController
	Stats     *controllers.StatsController
	Feed      *controllers.FeedController

	MaterialService *services.MaterialService
	ProductService  *services.ProductService
}

// RegisterAPI mounts every route. The /api group splits three ways:
// public catalogue reads, authenticated seller/customer endpoints, and
// the dashboard group guarded by Admin or Manager.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	// Public: auth and catalogue reads for the marketing site.
	api.Post("/auth/register", "auth.register", c.Auth.Register)
	api.Post("/auth/login", "auth.login", c.Auth.Login)
	api.Get("/materials", "materials.index", c.Materials.Index)
	api.Get("/materials/{id}", "materials.show", c.Materials.Show)
	api.Get("/products", "products.index", c.Products.Index)
	api.Get("/products/{id}", "products.show", c.Products.Show)

	// Authenticated: any signed-in account.
	user := api.Group("", middleware.Auth)
	user.Get("/auth/me", "auth.me", c.Auth.Me)
	user.Post("/pickups/create", "pickups.create", c.Pickups.Create)
	user.Get("/pickups/mine", "pickups.mine", c.Pickups.Mine)
	user.Post("/orders/place", "orders.place", c.Orders.Place)
	user.Get("/orders/mine", "orders.mine", c.Orders.Mine)

	// Dashboard: Admin and Manager only.
	admin := api.Group("", middleware.Auth, rbac.AdminOnly)
	admin.Post("/materials", "materials.store", c.Materials.Store)
	admin.Put("/materials/{id}", "materials.update", c.Materials.Update)
	admin.Delete("/materials/{id}", "materials.destroy", c.Materials.Destroy)

	admin.Post("/products", "products.store", c.Products.Store)
	admin.Put("/products/{id}", "products.update", c.Products.Update)
	admin.Delete("/products/{id}", "products.destroy", c.Products.Destroy)
	admin.Post("/products/{id}/images", "products.images", c.Products.UploadImage)

	admin.Get("/pickups", "pickups.index", c.Pickups.Index)
	admin.Get("/pickups/stream", "pickups.stream", c.Feed.PickupStream)
	admin.Get("/pickups/{id}", "pickups.show", c.Pickups.Show)
	admin.Put("/pickups/{id}/accept", "pickups.accept", c.Pickups.Accept)
	admin.Put("/pickups/{id}/reject", "pickups.reject", c.Pickups.Reject)
	admin.Put("/pickups/{id}/complete", "pickups.complete", c.Pickups.Complete)

	admin.Get("/orders", "orders.index", c.Orders.Index)
	admin.Get("/orders/{id}", "orders.show", c.Orders.Show)
	admin.Put("/orders/{id}/status", "orders.status", c.Orders.UpdateStatus)

	admin.Get("/stats/dashboard", "stats.dashboard", c.Stats.Dashboard)
	admin.Get("/ws/admin", "feed.admin", c.Feed.AdminSocket)

	// Read-only GraphQL over the public catalogue.
	if schema, err := appgraphql.NewSchema(c.MaterialService, c.ProductService); err == nil {
		r.Post("/graphql", "graphql", appgraphql.Handler(schema))
	} else {
		logger.Error("graphql schema build failed", "error", err)
	}

	// Operational endpoints.
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())
}
