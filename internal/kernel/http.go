// Package kernel builds the HTTP handler: it wires repositories,
// services, and controllers off one database handle and stacks the
// global middleware around the routing table.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/controllers"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/app/routes"
	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/pkg/metrics"
	"github.com/ecotrackhq/ecotrack/pkg/middleware"
	"github.com/ecotrackhq/ecotrack/pkg/reqid"
	"github.com/ecotrackhq/ecotrack/pkg/router"
)

// HTTPKernel owns the assembled router and exposes the handles the
// server and scheduler need after boot.
type HTTPKernel struct {
	router *router.Router
	stats  *services.StatsService
}

// NewHTTPKernel wires the full dependency graph on top of db.
func NewHTTPKernel(db *gorm.DB) *HTTPKernel {
	users := repositories.NewUserRepository(db)
	materials := repositories.NewMaterialRepository(db)
	products := repositories.NewProductRepository(db)
	pickups := repositories.NewPickupRepository(db)
	orders := repositories.NewOrderRepository(db)

	authService := services.NewAuthService(users)
	materialService := services.NewMaterialService(materials)
	productService := services.NewProductService(products)
	pickupService := services.NewPickupService(pickups, materials)
	orderService := services.NewOrderService(orders, products)
	statsService := services.NewStatsService(users, materials, products, pickups, orders)

	r := router.New()

	// Global middleware, outermost first. Metrics wraps everything so
	// latency numbers include the whole stack; recovery sits right
	// under it so a panic still produces a measured 500.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(authService),
		Materials: controllers.NewMaterialController(materialService),
		Products:  controllers.NewProductController(productService),
		Pickups:   controllers.NewPickupController(pickupService),
		Orders:    controllers.NewOrderController(orderService),
		Stats:     controllers.NewStatsController(statsService),
		Feed:      controllers.NewFeedController(),

		MaterialService: materialService,
		ProductService:  productService,
	})

	// Serve locally stored uploads (product images) when the local disk
	// is the default. The S3 disk serves its own URLs.
	if config.StorageDefault() == "local" {
		fs := http.FileServer(http.Dir(config.StorageLocalRoot()))
		r.Handle("/storage/*", http.StripPrefix("/storage/", fs))
	}

	return &HTTPKernel{router: r, stats: statsService}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the routing table for the route:list command.
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}

// Stats exposes the stats service so the scheduler can warm its cache.
func (k *HTTPKernel) Stats() *services.StatsService {
	return k.stats
}
