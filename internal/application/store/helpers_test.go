package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kongsi/inventory-client/internal/application/store"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// hits contador de peticiones por "METHOD path", compartido entre la goroutine
// del servidor de prueba y la del test.
type hits struct {
	mu sync.Mutex
	m  map[string]int
}

func newHits() *hits {
	return &hits{m: map[string]int{}}
}

func (h *hits) inc(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.m[key]++
}

func (h *hits) get(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.m[key]
}

func (h *hits) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, v := range h.m {
		n += v
	}
	return n
}

// fakePersistor persistor en memoria que registra las llamadas.
type fakePersistor struct {
	seed    *entity.User
	saved   []*entity.User
	cleared int
	loadErr error
}

func (p *fakePersistor) Load() (*entity.User, error) { return p.seed, p.loadErr }

func (p *fakePersistor) Save(u *entity.User) error {
	p.saved = append(p.saved, u)
	return nil
}

func (p *fakePersistor) Clear() error {
	p.cleared++
	return nil
}

func newRestClient(baseURL string) *rest.Client {
	return rest.NewClient(baseURL, 5*time.Second, logger.Nop())
}

// newLoggedInAuth construye un AuthStore con una sesión completa ya cargada,
// sin pasar por el backend.
func newLoggedInAuth(t *testing.T, baseURL, token string) *store.AuthStore {
	t.Helper()
	persist := &fakePersistor{seed: &entity.User{
		AccessToken: token,
		Email:       "admin@kongsi.test",
		IsAdmin:     true,
		Permissions: entity.Permissions{
			CanAddProduct: true, CanViewProduct: true,
			CanEditProduct: true, CanDeleteProduct: true,
		},
	}}
	auth := store.NewAuthStore(newRestClient(baseURL), persist, logger.Nop())
	require.NoError(t, auth.LoadSession())
	require.True(t, auth.IsLoggedIn())
	return auth
}

const privilegeEnvelope = `{"errors":[{"name":"error.insufficientPrivilege.canViewProduct","type":"general","message":"sin permiso"}]}`
