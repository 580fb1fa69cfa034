package users_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/askstack/askstack/internal/rbac"
	"github.com/askstack/askstack/internal/shared"
	"github.com/askstack/askstack/internal/users"
	_ "github.com/askstack/askstack/testing"
)

func newHandler(t *testing.T, repo *stubRepo) http.Handler {
	t.Helper()
	assigner := &stubAssigner{roleIDs: map[string]int64{rbac.RoleProUser: 2}}
	handler := users.NewHandler(slog.New(slog.DiscardHandler), users.NewService(repo, assigner))
	r := chi.NewRouter()
	r.Route("/users", handler.MountRoutes)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, user *shared.ActiveUser) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if user != nil {
		req = req.WithContext(shared.ContextWithActiveUser(req.Context(), user))
	}
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestHandlerList(t *testing.T) {
	repo := &stubRepo{usersByID: map[int64]*users.User{
		1: {ID: 1, Email: "alice@askstack.local"},
	}}
	h := newHandler(t, repo)

	res := doRequest(t, h, http.MethodGet, "/users", &shared.ActiveUser{ID: 1})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), `"pagination"`) {
		t.Fatalf("expected pagination envelope, got %q", res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "alice@askstack.local") {
		t.Fatalf("expected listed user, got %q", res.Body.String())
	}
}

func TestHandlerGet(t *testing.T) {
	repo := &stubRepo{usersByID: map[int64]*users.User{
		1: {ID: 1, Email: "alice@askstack.local", Roles: []string{rbac.RoleUser}},
	}}
	h := newHandler(t, repo)

	res := doRequest(t, h, http.MethodGet, "/users/1", &shared.ActiveUser{ID: 1})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"roles":["user"]`) {
		t.Fatalf("expected roles in body, got %q", res.Body.String())
	}

	if res := doRequest(t, h, http.MethodGet, "/users/abc", &shared.ActiveUser{ID: 1}); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", res.Code)
	}
	if res := doRequest(t, h, http.MethodGet, "/users/99", &shared.ActiveUser{ID: 1}); res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", res.Code)
	}
}

func TestHandlerDeleteRequiresPermission(t *testing.T) {
	repo := &stubRepo{usersByID: map[int64]*users.User{
		1: {ID: 1, Email: "alice@askstack.local"},
	}}
	h := newHandler(t, repo)

	res := doRequest(t, h, http.MethodDelete, "/users/1", &shared.ActiveUser{ID: 2, Permissions: []string{rbac.PermCreateQuestion}})
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without delete_user, got %d", res.Code)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("nothing should be deleted on 403")
	}

	res = doRequest(t, h, http.MethodDelete, "/users/1", &shared.ActiveUser{ID: 2, Permissions: []string{rbac.PermDeleteUser}})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 with delete_user, got %d (%s)", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "user was successfully removed") {
		t.Fatalf("unexpected body: %q", res.Body.String())
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 1 {
		t.Fatalf("expected user 1 deleted, got %v", repo.deleted)
	}
}
