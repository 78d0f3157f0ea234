package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EcoFinds/internal/notify"
	"EcoFinds/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20
	tokenTTL     = 15 * time.Minute

	loginLimitPerMin    = 5
	registerLimitPerMin = 3
	limitWindowSeconds  = 60
)

type Server struct {
	Log    *zap.Logger
	Store  *Store
	JWT    *TokenMaker
	Notify notify.Notifier
}

func (s *Server) Register(r chi.Router) {
	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindowSeconds)
	registerLimiter := kit.NewIPRateLimiter(registerLimitPerMin, limitWindowSeconds)

	r.Route("/auth", func(rr chi.Router) {
		rr.With(registerLimiter.Middleware).Post("/register", s.handleRegister)
		rr.With(loginLimiter.Middleware).Post("/login", s.handleLogin)
		rr.Get("/whoami", s.handleWhoAmI)
		rr.Patch("/profile", s.handleUpdateProfile)
	})
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req registerReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "username/email/password required", nil)
		return
	}
	if len(req.Password) < 8 {
		kit.WriteError(w, r, http.StatusBadRequest, "password too short", map[string]any{"min_len": 8})
		return
	}

	a, err := s.Store.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			s.notifyErr("Registration failed", "User with this email already exists")
			kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
			return
		}
		s.Log.Error("create account", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	tok, err := s.JWT.New(a, tokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.notifyInfo("Registration successful", "Welcome to EcoFinds, "+a.Username+"!")
	kit.WriteJSON(w, http.StatusCreated, tokenResp{AccessToken: tok})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if req.Email == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required", nil)
		return
	}

	a, err := s.Store.Verify(req.Email, strings.TrimSpace(req.Password))
	if err != nil {
		s.notifyErr("Login failed", "Invalid credentials")
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	tok, err := s.JWT.New(a, tokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.notifyInfo("Login successful", "Welcome back, "+a.Username+"!")
	kit.WriteJSON(w, http.StatusOK, tokenResp{AccessToken: tok})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
		return
	}

	claims, err := s.JWT.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
	})
}

type profileReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type profileResp struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

// handleUpdateProfile edits the caller's own username and/or email. A fresh
// token comes back with the response because the old one still carries the
// previous profile fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
		return
	}
	claims, err := s.JWT.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req profileReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if req.Username == nil && req.Email == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "nothing to update", nil)
		return
	}
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "username must not be empty", nil)
		return
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email must not be empty", nil)
		return
	}

	a, err := s.Store.Update(r.Context(), claims.UserID, Profile{Username: req.Username, Email: req.Email})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			s.notifyErr("Profile update failed", "User with this email already exists")
			kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			kit.WriteError(w, r, http.StatusNotFound, err.Error(), nil)
		default:
			s.Log.Error("update profile", zap.Error(err))
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		}
		return
	}

	tok, err := s.JWT.New(a, tokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.notifyInfo("Profile updated", "Your profile has been successfully updated.")
	kit.WriteJSON(w, http.StatusOK, profileResp{
		UserID:      a.ID,
		Username:    a.Username,
		Email:       a.Email,
		AccessToken: tok,
	})
}

func (s *Server) notifyInfo(title, msg string) {
	if s.Notify != nil {
		s.Notify.Notify(title, msg, notify.SeverityInfo)
	}
}

func (s *Server) notifyErr(title, msg string) {
	if s.Notify != nil {
		s.Notify.Notify(title, msg, notify.SeverityError)
	}
}
