package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahulvarma/bazaarly-backend/api/controllers"
	"github.com/rahulvarma/bazaarly-backend/api/middleware"
	"github.com/rahulvarma/bazaarly-backend/internal/cart"
	"github.com/rahulvarma/bazaarly-backend/internal/products"
	"github.com/rahulvarma/bazaarly-backend/internal/wishlist"
	pkgAuth "github.com/rahulvarma/bazaarly-backend/pkg/auth"
	"github.com/rahulvarma/bazaarly-backend/pkg/config"
	"github.com/rahulvarma/bazaarly-backend/pkg/db"
	"github.com/rahulvarma/bazaarly-backend/pkg/logger"
	"github.com/rahulvarma/bazaarly-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	productService products.Service,
	authoringService products.Authoring,
	cartService cart.Service,
	wishlistService wishlist.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/categories", controllers.ProductCategories(productService, logg))
		r.Get("/search", controllers.SearchProducts(productService, logg))
		r.Get("/featured", controllers.FeaturedProducts(productService, logg))
		r.Get("/new-arrivals", controllers.NewArrivalProducts(productService, logg))
		r.Get("/category/{category}", controllers.ProductsByCategory(productService, logg))
		r.Get("/category/{category}/{subCategory}", controllers.ProductsByCategory(productService, logg))
		r.Get("/merchant/{merchantId}", controllers.ProductsByMerchant(productService, logg))

		// Detail stays public but reads the wishlist for signed-in shoppers.
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).Get("/{id}", controllers.ProductDetail(productService, logg))
	})

	r.Route("/api/v1/usercart", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/", controllers.CartAdd(cartService, logg))
		r.Get("/", controllers.CartGet(cartService, logg))
		r.Put("/{productId}", controllers.CartSetQuantity(cartService, logg))
		r.Delete("/{productId}", controllers.CartRemove(cartService, logg))
		r.Delete("/", controllers.CartClear(cartService, logg))
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/", controllers.WishlistAdd(wishlistService, logg))
		r.Get("/", controllers.WishlistGet(wishlistService, logg))
		r.Delete("/{productId}", controllers.WishlistRemove(wishlistService, logg))
	})

	r.Route("/api/v1/merchant/products", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(pkgAuth.RoleMerchant), logg))

		r.Post("/", controllers.MerchantCreateProduct(authoringService, logg))
		r.Patch("/{id}", controllers.MerchantUpdateProduct(authoringService, logg))
		r.Delete("/{id}", controllers.MerchantDeleteProduct(authoringService, logg))
	})

	return r
}
