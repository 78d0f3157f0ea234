package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"EcoFinds/internal/account"
	"EcoFinds/internal/catalog"
	"EcoFinds/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Cart    *Store
	Catalog *catalog.Store
	Log     *zap.Logger
}

func (s *Server) Register(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(requireUser)
		pr.Get("/cart", s.view)
		pr.Post("/cart/items", s.add)
		pr.Put("/cart/items/{productID}", s.setQuantity)
		pr.Delete("/cart/items/{productID}", s.remove)
		pr.Delete("/cart", s.clear)
	})
}

type lineView struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartView struct {
	Items     []lineView      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	lines, err := s.Cart.Lines(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "load cart failed", err)
		return
	}

	// Lines whose product was deleted since they were added stay in the
	// cart but are dropped from the display join and contribute nothing
	// to the total.
	items := make([]lineView, 0, len(lines))
	for _, l := range lines {
		p, found := s.Catalog.GetByID(l.ProductID)
		if !found {
			continue
		}
		items = append(items, lineView{
			Product:   p,
			Quantity:  l.Quantity,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	total, err := s.Cart.Total(r.Context(), u.ID, func(productID string) (decimal.Decimal, bool) {
		p, found := s.Catalog.GetByID(productID)
		if !found {
			return decimal.Zero, false
		}
		return p.Price, true
	})
	if err != nil {
		s.serverError(w, r, "cart total failed", err)
		return
	}

	count, err := s.Cart.ItemCount(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "cart count failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, cartView{Items: items, Total: total, ItemCount: count})
}

type addReq struct {
	ProductID string `json:"product_id"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req addReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.ProductID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	if _, found := s.Catalog.GetByID(req.ProductID); !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": req.ProductID})
		return
	}

	if err := s.Cart.Add(r.Context(), u.ID, req.ProductID); err != nil {
		s.serverError(w, r, "cart add failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req quantityReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	productID := chi.URLParam(r, "productID")
	if err := s.Cart.SetQuantity(r.Context(), u.ID, productID, req.Quantity); err != nil {
		s.serverError(w, r, "cart update failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	if err := s.Cart.Remove(r.Context(), u.ID, chi.URLParam(r, "productID")); err != nil {
		s.serverError(w, r, "cart remove failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	if err := s.Cart.Clear(r.Context(), u.ID); err != nil {
		s.serverError(w, r, "cart clear failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
