package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"EcoFinds/internal/account"
	"EcoFinds/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store    *Store
	Accounts *account.Store
	Log      *zap.Logger
}

// Register mounts the catalog routes. Reads are public; mutations require a
// signed-in seller and are scoped to their own listings.
func (s *Server) Register(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.Get("/categories", s.categoriesHandler)

	r.Group(func(pr chi.Router) {
		pr.Use(requireUser)
		pr.Post("/products", s.create)
		pr.Patch("/products/{id}", s.update)
		pr.Delete("/products/{id}", s.remove)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var products []Product
	switch {
	case q.Get("seller") != "":
		products = s.Store.ListBySeller(q.Get("seller"))
	case q.Get("featured") != "":
		if on, err := strconv.ParseBool(q.Get("featured")); err == nil && on {
			products = s.Store.ListFeatured()
		} else {
			products = s.Store.List()
		}
	case q.Get("category") != "":
		products = s.Store.ListByCategory(q.Get("category"))
	default:
		products = s.Store.List()
	}

	if sub := q.Get("subcategory"); sub != "" {
		filtered := products[:0:0]
		for _, p := range products {
			if p.SubCategory == sub {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Store.GetByID(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, Categories())
}

type createReq struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"sub_category"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Specifications []Spec          `json:"specifications"`
	Condition      string          `json:"condition"`
	Featured       bool            `json:"featured"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req createReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Title == "" || req.Category == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "title and category required", nil)
		return
	}

	p, err := s.Store.Add(r.Context(), Input{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		Price:          req.Price,
		Image:          req.Image,
		Specifications: req.Specifications,
		Condition:      req.Condition,
		Seller:         s.sellerSnapshot(u),
		SellerID:       u.ID,
		Featured:       req.Featured,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPrice) {
			kit.WriteError(w, r, http.StatusBadRequest, "invalid price", nil)
			return
		}
		if s.Log != nil {
			s.Log.Error("add product failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

type updateReq struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category"`
	SubCategory    *string          `json:"sub_category"`
	Price          *decimal.Decimal `json:"price"`
	Image          *string          `json:"image"`
	Specifications []Spec           `json:"specifications"`
	Condition      *string          `json:"condition"`
	Featured       *bool            `json:"featured"`
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")

	existing, found := s.Store.GetByID(id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if existing.SellerID != u.ID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	var req updateReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	err := s.Store.Update(r.Context(), id, Patch{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		Price:          req.Price,
		Image:          req.Image,
		Specifications: req.Specifications,
		Condition:      req.Condition,
		Featured:       req.Featured,
	})
	switch {
	case errors.Is(err, ErrInvalidPrice):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid price", nil)
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
	case err != nil:
		if s.Log != nil {
			s.Log.Error("update product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	default:
		updated, _ := s.Store.GetByID(id)
		kit.WriteJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	u, ok := account.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")

	if existing, found := s.Store.GetByID(id); found && existing.SellerID != u.ID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	if err := s.Store.Remove(r.Context(), id); err != nil {
		if s.Log != nil {
			s.Log.Error("remove product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sellerSnapshot copies the seller's current profile onto the listing.
// The copy is final: profile changes never flow back into the listing.
func (s *Server) sellerSnapshot(u account.User) Seller {
	snap := Seller{Name: u.Username}
	if s.Accounts == nil {
		return snap
	}

	acct, ok := s.Accounts.Get(u.ID)
	if !ok {
		return snap
	}

	snap.JoinedDate = acct.CreatedAt
	snap.TotalSales = len(s.Store.ListBySeller(u.ID))
	return snap
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
