package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kittohq/kitto-backend/api/controllers"
	"github.com/kittohq/kitto-backend/api/middleware"
	"github.com/kittohq/kitto-backend/internal/bankdetails"
	"github.com/kittohq/kitto-backend/internal/catalog"
	"github.com/kittohq/kitto-backend/internal/locations"
	"github.com/kittohq/kitto-backend/internal/operators"
	"github.com/kittohq/kitto-backend/internal/orders"
	"github.com/kittohq/kitto-backend/internal/withdrawals"
	"github.com/kittohq/kitto-backend/pkg/config"
	"github.com/kittohq/kitto-backend/pkg/db"
	"github.com/kittohq/kitto-backend/pkg/enums"
	"github.com/kittohq/kitto-backend/pkg/logger"
	"github.com/kittohq/kitto-backend/pkg/metrics"
	pkgredis "github.com/kittohq/kitto-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *pkgredis.Client
	Metrics *metrics.HTTPMetrics

	MetricsHandler http.Handler

	Operators   operators.Service
	BankDetails bankdetails.Service
	Locations   locations.Service
	Catalog     catalog.Service
	Orders      orders.Service
	Withdrawals withdrawals.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if p.Metrics != nil {
		r.Use(p.Metrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginMobileLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterMobileLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.Operators, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.Operators, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(p.Redis, cfg.Orders, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.OperatorProfile(p.Operators, logg))
			r.Patch("/", controllers.OperatorUpdateProfile(p.Operators, logg))
		})

		r.Route("/bank-details", func(r chi.Router) {
			r.Get("/", controllers.BankDetailsFetch(p.BankDetails, logg))
			r.Put("/", controllers.BankDetailsUpsert(p.BankDetails, logg))
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/districts", controllers.DistrictList(p.Locations, logg))
			r.Get("/cities", controllers.CityList(p.Locations, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/search", controllers.CatalogSearch(p.Catalog, logg))
			r.Get("/{productId}", controllers.CatalogProductDetail(p.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.SubmitOrder(p.Orders, logg))
			r.Get("/", controllers.ListOrders(p.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(p.Orders, logg))
		})

		r.Get("/commissions/summary", controllers.CommissionSummary(p.Withdrawals, logg))
		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", controllers.RequestWithdrawal(p.Withdrawals, logg))
			r.Get("/", controllers.ListWithdrawals(p.Withdrawals, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleAdmin.String(), logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(p.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(p.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(p.Orders, logg))
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", controllers.AdminWithdrawalList(p.Withdrawals, logg))
			r.Post("/{withdrawalId}/decision", controllers.AdminDecideWithdrawal(p.Withdrawals, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(p.Catalog, logg))
			r.Post("/", controllers.AdminCreateProduct(p.Catalog, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(p.Catalog, logg))
		})

		r.Route("/operators", func(r chi.Router) {
			r.Get("/", controllers.AdminListOperators(p.Operators, logg))
			r.Delete("/{operatorId}", controllers.AdminDeleteOperator(p.Operators, logg))
		})
	})

	return r
}
