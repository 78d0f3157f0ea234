package purchase

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EcoFinds/internal/account"
	"EcoFinds/internal/catalog"
	"EcoFinds/pkg/kit"
)

type Server struct {
	Checkout *Checkout
	Store    *Store
	Catalog  *catalog.Store
	Log      *zap.Logger
}

func (s *Server) Register(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(requireUser)
		pr.Post("/checkout", s.checkout)
		pr.Get("/purchases", s.list)
	})
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	purchases, err := s.Checkout.Run(r.Context(), u.ID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("checkout failed", zap.Error(err), zap.String("user_id", u.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(purchases) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, purchases)
}

type purchaseView struct {
	Purchase
	Product catalog.Product `json:"product"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	purchases := s.Store.ListByUser(u.ID)

	// Newest first; the store itself keeps insertion order.
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].PurchasedAt.After(purchases[j].PurchasedAt)
	})

	// Purchases whose product was deleted drop out of the display join.
	out := make([]purchaseView, 0, len(purchases))
	for _, p := range purchases {
		prod, found := s.Catalog.GetByID(p.ProductID)
		if !found {
			continue
		}
		out = append(out, purchaseView{Purchase: p, Product: prod})
	}

	kit.WriteJSON(w, http.StatusOK, out)
}
