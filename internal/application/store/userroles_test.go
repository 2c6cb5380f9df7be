package store_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongsi/inventory-client/internal/application/store"
	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend falso de roles
// ──────────────────────────────────────────────────────────────────────────────

const rolesListBody = `{"userRoles":[
	{"id":1,"name":"Viewer",
	 "permissions":{"product":{"canAdd":false,"canView":true,"canEdit":false,"canDelete":false}},
	 "targets":[{"email":"admin@kongsi.test","applied":false},{"email":"staff@kongsi.test","applied":true}]}
]}`

const meBody = `{"email":"admin@kongsi.test","isAdmin":true,
	"permissions":{"canAddProduct":true,"canViewProduct":true,"canEditProduct":true,"canDeleteProduct":true}}`

type rolesBackend struct {
	h *hits

	mu        sync.Mutex
	lastBody  []byte
	addStatus int // 0 = OK
	addBody   string
}

func newRolesBackend() *rolesBackend {
	return &rolesBackend{h: newHits()}
}

func (b *rolesBackend) body() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *rolesBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.h.inc(r.Method + " " + r.URL.Path)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/user-roles":
			_, _ = w.Write([]byte(rolesListBody))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/user/me":
			_, _ = w.Write([]byte(meBody))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/user-roles":
			b.mu.Lock()
			b.lastBody, _ = io.ReadAll(r.Body)
			status, body := b.addStatus, b.addBody
			b.mu.Unlock()
			if status != 0 {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"userRoles":{"id":2,"name":"Editor"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/user-roles/1/toggle":
			b.mu.Lock()
			b.lastBody, _ = io.ReadAll(r.Body)
			b.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/user-roles/1":
			b.mu.Lock()
			b.lastBody, _ = io.ReadAll(r.Body)
			b.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no encontrado"}`))
		}
	})
}

func newUserRoles(t *testing.T, b *rolesBackend) *store.UserRolesStore {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	auth := newLoggedInAuth(t, srv.URL, "tok-roles")
	return store.NewUserRolesStore(newRestClient(srv.URL), auth, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUserRoles_ReemplazaEstadoLocal(t *testing.T) {
	b := newRolesBackend()
	s := newUserRoles(t, b)

	require.NoError(t, s.GetUserRoles(context.Background()))

	roles := s.UserRoles()
	require.Len(t, roles, 1)
	assert.Equal(t, "Viewer", roles[0].Name)
	assert.True(t, roles[0].Permissions.Product.CanView)
	require.Len(t, roles[0].Targets, 2)
	assert.True(t, roles[0].Targets[1].Applied)
}

// Tras el toggle se resincronizan roles y perfil del usuario actuante, cada uno
// exactamente una vez: pudo haberse quitado permisos a sí mismo.
func TestToggleUserRoles_ResincronizaRolesYPerfilUnaVez(t *testing.T) {
	b := newRolesBackend()
	s := newUserRoles(t, b)
	require.NoError(t, s.GetUserRoles(context.Background()))

	err := s.ToggleUserRoles(context.Background(), store.ToggleUserRolesInput{
		Roles: s.UserRoles()[0],
		Email: "staff@kongsi.test",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, b.h.get("POST /api/v1/user-roles/1/toggle"))
	assert.Equal(t, 2, b.h.get("GET /api/v1/user-roles"), "la lista se resincroniza una vez tras el toggle")
	assert.Equal(t, 1, b.h.get("GET /api/v1/user/me"), "el perfil se resincroniza una vez tras el toggle")
	assert.JSONEq(t, `{"email":"staff@kongsi.test"}`, string(b.body()))
}

func TestUpdateUserRoles_ReemplazoTotalYResincroniza(t *testing.T) {
	b := newRolesBackend()
	s := newUserRoles(t, b)

	err := s.UpdateUserRoles(context.Background(), entity.UserRoles{
		ID:   1,
		Name: "Viewer Plus",
		Permissions: entity.RolePermissions{
			Product: entity.ProductRolePermissions{CanView: true, CanEdit: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, b.h.get("PATCH /api/v1/user-roles/1"))
	assert.Equal(t, 1, b.h.get("GET /api/v1/user-roles"))
	assert.JSONEq(t, `{
		"name":"Viewer Plus",
		"permissions":{"product":{"canAdd":false,"canView":true,"canEdit":true,"canDelete":false}}
	}`, string(b.body()), "el PATCH de roles lleva nombre y permisos completos")
}

func TestAddUserRoles_CreaYResincroniza(t *testing.T) {
	b := newRolesBackend()
	s := newUserRoles(t, b)

	require.NoError(t, s.AddUserRoles(context.Background(), "Editor"))

	assert.Equal(t, 1, b.h.get("POST /api/v1/user-roles"))
	assert.Equal(t, 1, b.h.get("GET /api/v1/user-roles"))
	assert.JSONEq(t, `{"name":"Editor"}`, string(b.body()))
}

func TestAddUserRoles_PrivilegioInsuficiente_VaciaLista(t *testing.T) {
	b := newRolesBackend()
	s := newUserRoles(t, b)
	require.NoError(t, s.GetUserRoles(context.Background()))
	require.Len(t, s.UserRoles(), 1)

	b.mu.Lock()
	b.addStatus = http.StatusForbidden
	b.addBody = `{"errors":[{"name":"error.insufficientPrivilege","type":"general","message":"se requiere modo admin"}]}`
	b.mu.Unlock()

	err := s.AddUserRoles(context.Background(), "Editor")

	require.Error(t, err)
	assert.True(t, apierror.HasInsufficientPrivilege(err))
	assert.Empty(t, s.UserRoles(), "el error de privilegio vacía la lista local de roles")
}
