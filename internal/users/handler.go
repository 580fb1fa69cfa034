package users

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/askstack/askstack/internal/iam"
	"github.com/askstack/askstack/internal/rbac"
	"github.com/askstack/askstack/internal/shared"
)

// Handler wires HTTP endpoints for account management.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers user routes. The router group is expected to sit
// behind the authentication gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.With(iam.RequirePermissions(rbac.PermDeleteUser)).Delete("/{id}", h.handleDelete)
}

type listResponse struct {
	Items      []User            `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.PageFromRequest(r)
	pagination := shared.NewPagination(page, perPage, 0)

	items, total, err := h.service.List(r.Context(), pagination.PerPage, pagination.Offset())
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if items == nil {
		items = []User{}
	}
	shared.RespondJSON(w, http.StatusOK, listResponse{
		Items:      items,
		Pagination: shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "invalid user id"})
		return
	}
	user, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "invalid user id"})
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondMessage(w, http.StatusOK, "user was successfully removed")
}
