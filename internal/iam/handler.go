package iam

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/askstack/askstack/internal/shared"
)

// Handler wires the JSON endpoints for the session lifecycle protocols.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	validator    *validator.Validate
	secureCookie bool
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, secureCookie bool) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		validator:    validator.New(),
		secureCookie: secureCookie,
	}
}

// MountPublicRoutes registers the unauthenticated auth endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/sign-up", h.handleSignUp)
	r.Post("/sign-in", h.handleSignIn)
	r.Post("/refresh-tokens", h.handleRefresh)
	r.Post("/forgot-password", h.handleForgotPassword)
	r.Post("/reset-password/{token}", h.handleResetPassword)
}

// MountProtectedRoutes registers the auth endpoints behind the
// authentication gate.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Post("/log-out", h.handleLogout)
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=10"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=10"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.SignUp(r.Context(), req.Email, req.Password); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondMessage(w, http.StatusCreated, "registration was successful")
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !h.decode(w, r, &req) {
		return
	}
	pair, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	h.setTokenCookies(w, pair)
	shared.RespondMessage(w, http.StatusOK, "sign in was successful")
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decode(w, r, &req) {
		return
	}
	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	h.setTokenCookies(w, pair)
	shared.RespondMessage(w, http.StatusOK, "tokens were refreshed successfully")
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondMessage(w, http.StatusOK, "we sent you an email, please follow the instructions")
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "reset token is required"})
		return
	}
	var req resetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.ResetPassword(r.Context(), token, req.Password); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondMessage(w, http.StatusOK, "password was reset successfully")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user := shared.ActiveUserFromContext(r.Context())
	if user == nil {
		shared.RespondJSON(w, http.StatusUnauthorized, shared.Error{Error: noAccessMessage})
		return
	}
	h.clearTokenCookies(w)
	if err := h.service.Logout(r.Context(), user.ID); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondMessage(w, http.StatusOK, "user was successfully logged out")
}

// decode parses and validates the request body, responding with 400 on
// failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := shared.DecodeJSON(r, target); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "invalid request body"})
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "field/s must exist or it is invalid"})
		return false
	}
	return true
}

func (h *Handler) setTokenCookies(w http.ResponseWriter, pair *TokenPair) {
	h.setCookie(w, AccessTokenCookie, pair.AccessToken)
	h.setCookie(w, RefreshTokenCookie, pair.RefreshToken)
}

func (h *Handler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
