// Package store implementa los stores reactivos del cliente de inventario:
// sesión, proveedores, inventario y roles de usuario. Cada store posee su
// estado en exclusiva; el código externo solo lee o invoca métodos.
//
// Los stores son de una sola goroutine por contrato, como el event loop de una
// UI: sin locks y sin guardas de generación de peticiones.
package store

import (
	"context"
	"net/http"

	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/internal/reactive"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// Persistor hook explícito de persistencia de sesión: carga al arranque y
// guardado en cada cambio.
type Persistor interface {
	Load() (*entity.User, error)
	Save(u *entity.User) error
	Clear() error
}

// AuthStore sesión del usuario: token, email, modo admin y permisos derivados.
// Dueño exclusivo del entity.User vigente.
type AuthStore struct {
	rest    *rest.Client
	persist Persistor // nil = sesión solo en memoria
	log     *logger.Logger
	user    *reactive.Cell[*entity.User]
}

// NewAuthStore construye el store de sesión. persist puede ser nil.
func NewAuthStore(rc *rest.Client, persist Persistor, log *logger.Logger) *AuthStore {
	return &AuthStore{
		rest:    rc,
		persist: persist,
		log:     log,
		user:    reactive.NewCell[*entity.User](nil),
	}
}

// User devuelve la sesión vigente (nil si no hay).
func (s *AuthStore) User() *entity.User {
	return s.user.Get()
}

// WatchUser registra un watcher sobre los cambios de sesión.
func (s *AuthStore) WatchUser(fn func(*entity.User)) {
	s.user.Watch(fn)
}

// IsLoggedIn reporta si hay un token de acceso vigente. Una sesión parcial
// (token sin perfil) cuenta como logueada.
func (s *AuthStore) IsLoggedIn() bool {
	u := s.user.Get()
	return u != nil && u.AccessToken != ""
}

// Permissions devuelve los permisos del usuario; todo en falso sin sesión.
func (s *AuthStore) Permissions() entity.Permissions {
	if u := s.user.Get(); u != nil {
		return u.Permissions
	}
	return entity.Permissions{}
}

// AdminMode devuelve el flag de modo admin y ok=false si no hay sesión cargada.
func (s *AuthStore) AdminMode() (value, ok bool) {
	u := s.user.Get()
	if u == nil {
		return false, false
	}
	return u.IsAdmin, true
}

// AuthHeaders construye el header Bearer de la sesión vigente.
// Precondición: debe existir un token; llamar sin sesión es un error de
// programación y provoca panic, no un error manejado.
func (s *AuthStore) AuthHeaders() map[string]string {
	u := s.user.Get()
	if u == nil || u.AccessToken == "" {
		panic("store: AuthHeaders sin sesión activa")
	}
	return map[string]string{"Authorization": "Bearer " + u.AccessToken}
}

// LoadSession restaura la sesión persistida, si existe.
func (s *AuthStore) LoadSession() error {
	if s.persist == nil {
		return nil
	}
	u, err := s.persist.Load()
	if err != nil {
		return err
	}
	if u != nil {
		s.user.Set(u)
	}
	return nil
}

// Login emite el token y luego completa el perfil con GetUser: dos viajes por
// diseño. Si el fetch de perfil falla, la sesión queda parcial (token + email)
// y se devuelve ese error.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	var out struct {
		AccessToken string `json:"accessToken"`
		Email       string `json:"email"`
	}
	err := s.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/user/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return err
	}

	s.setUser(&entity.User{AccessToken: out.AccessToken, Email: out.Email})

	return s.GetUser(ctx)
}

// GetUser trae el perfil y lo mezcla en la sesión sin pisar el token.
func (s *AuthStore) GetUser(ctx context.Context) error {
	var out struct {
		Email       string             `json:"email"`
		IsAdmin     bool               `json:"isAdmin"`
		Permissions entity.Permissions `json:"permissions"`
	}
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodGet,
		Path:    "/api/v1/user/me",
		Headers: s.AuthHeaders(),
	}, &out)
	if err != nil {
		return err
	}

	u := *s.user.Get()
	u.Email = out.Email
	u.IsAdmin = out.IsAdmin
	u.Permissions = out.Permissions
	s.setUser(&u)
	return nil
}

// ToggleAdminMode conmuta el modo admin en el servidor y resincroniza el
// perfil; no hay actualización optimista local.
func (s *AuthStore) ToggleAdminMode(ctx context.Context) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/user/admin-mode",
		Headers: s.AuthHeaders(),
	}, nil)
	if err != nil {
		return err
	}

	return s.GetUser(ctx)
}

// Logout limpia la sesión localmente; no hay llamada al servidor.
func (s *AuthStore) Logout() {
	s.setUser(nil)
}

// setUser asigna la sesión y la persiste (o la borra) si hay Persistor.
func (s *AuthStore) setUser(u *entity.User) {
	s.user.Set(u)
	if s.persist == nil {
		return
	}
	var err error
	if u == nil {
		err = s.persist.Clear()
	} else {
		err = s.persist.Save(u)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("persistir sesión")
	}
}
