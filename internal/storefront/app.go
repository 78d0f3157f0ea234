// Package storefront assembles the stores and their HTTP surfaces into one
// handler.
package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"EcoFinds/internal/account"
	"EcoFinds/internal/cart"
	"EcoFinds/internal/catalog"
	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
	"EcoFinds/internal/purchase"
	"EcoFinds/pkg/kit"
)

type Deps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	JWTSecret string

	KV       kv.Store
	Notifier notify.Notifier
}

// NewHandler constructs every store from persistence (seeding on first use)
// and wires up the full route table.
func NewHandler(ctx context.Context, deps Deps) (http.Handler, error) {
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}

	accounts, err := account.NewStore(ctx, deps.KV)
	if err != nil {
		return nil, err
	}
	products, err := catalog.NewStore(ctx, deps.KV, deps.Notifier)
	if err != nil {
		return nil, err
	}
	carts := cart.NewStore(deps.KV, deps.Notifier)
	purchases, err := purchase.NewStore(ctx, deps.KV, deps.Notifier)
	if err != nil {
		return nil, err
	}

	jwt := account.NewTokenMaker(deps.JWTSecret)
	requireUser := account.RequireUser(jwt)

	authSrv := &account.Server{Log: deps.Log, Store: accounts, JWT: jwt, Notify: deps.Notifier}
	catalogSrv := &catalog.Server{Store: products, Accounts: accounts, Log: deps.Log}
	cartSrv := &cart.Server{Cart: carts, Catalog: products, Log: deps.Log}
	purchaseSrv := &purchase.Server{
		Checkout: &purchase.Checkout{Purchases: purchases, Cart: carts, Catalog: products, Notify: deps.Notifier},
		Store:    purchases,
		Catalog:  products,
		Log:      deps.Log,
	}

	r := chi.NewRouter()
	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps))

	authSrv.Register(r)
	catalogSrv.Register(r, requireUser)
	cartSrv.Register(r, requireUser)
	purchaseSrv.Register(r, requireUser)

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps Deps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps Deps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func readyz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := deps.KV.Ping(ctx); err != nil {
			if deps.Log != nil {
				deps.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
