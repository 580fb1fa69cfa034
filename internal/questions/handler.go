package questions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/askstack/askstack/internal/iam"
	"github.com/askstack/askstack/internal/rbac"
	"github.com/askstack/askstack/internal/shared"
)

// Handler wires HTTP endpoints for questions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountPublicRoutes registers read endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
}

// MountProtectedRoutes registers write endpoints behind the gates.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.With(iam.RequirePermissions(rbac.PermCreateQuestion)).Post("/", h.handleCreate)
}

type createRequest struct {
	Title string `json:"title" validate:"required,min=5,max=200"`
	Body  string `json:"body" validate:"required"`
}

type listResponse struct {
	Items      []Question        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user := shared.ActiveUserFromContext(r.Context())
	if user == nil {
		shared.RespondJSON(w, http.StatusUnauthorized, shared.Error{Error: "you have no access, please sign in"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "field/s must exist or it is invalid"})
		return
	}

	q, err := h.service.Create(r.Context(), req.Title, req.Body, user.ID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, q)
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
		items = []Question{}
	}
	shared.RespondJSON(w, http.StatusOK, listResponse{
		Items:      items,
		Pagination: shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.Error{Error: "invalid question id"})
		return
	}
	q, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, q)
}
