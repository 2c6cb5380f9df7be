package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/internal/reactive"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// ToggleUserRolesInput rol y email objetivo del toggle de membresía.
type ToggleUserRolesInput struct {
	Roles entity.UserRoles
	Email string
}

// UserRolesStore CRUD de roles de permisos y sus asignaciones.
// Depende del AuthStore para los headers y para resincronizar los permisos del
// usuario actuante tras un toggle (pudo haberse afectado a sí mismo).
type UserRolesStore struct {
	rest      *rest.Client
	auth      *AuthStore
	log       *logger.Logger
	userRoles *reactive.Cell[[]entity.UserRoles]
}

// NewUserRolesStore construye el store de roles.
func NewUserRolesStore(rc *rest.Client, auth *AuthStore, log *logger.Logger) *UserRolesStore {
	return &UserRolesStore{
		rest:      rc,
		auth:      auth,
		log:       log,
		userRoles: reactive.NewCell([]entity.UserRoles{}),
	}
}

// UserRoles devuelve la lista vigente de roles.
func (s *UserRolesStore) UserRoles() []entity.UserRoles {
	return s.userRoles.Get()
}

// WatchUserRoles registra un watcher sobre los cambios de la lista.
func (s *UserRolesStore) WatchUserRoles(fn func([]entity.UserRoles)) {
	s.userRoles.Watch(fn)
}

// GetUserRoles trae la lista completa de roles y reemplaza el estado local.
func (s *UserRolesStore) GetUserRoles(ctx context.Context) error {
	var out struct {
		UserRoles []entity.UserRoles `json:"userRoles"`
	}
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodGet,
		Path:    "/api/v1/user-roles",
		Headers: s.auth.AuthHeaders(),
	}, &out)
	if err != nil {
		return err
	}

	if out.UserRoles != nil {
		s.userRoles.Set(out.UserRoles)
	}
	return nil
}

// ToggleUserRoles conmuta la membresía del email en el rol y resincroniza
// roles y perfil del usuario actuante, cada uno exactamente una vez: el toggle
// pudo haber cambiado los permisos de quien lo ejecuta.
func (s *UserRolesStore) ToggleUserRoles(ctx context.Context, in ToggleUserRolesInput) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPost,
		Path:    fmt.Sprintf("/api/v1/user-roles/%d/toggle", in.Roles.ID),
		Headers: s.auth.AuthHeaders(),
		Body:    map[string]string{"email": in.Email},
	}, nil)
	if err != nil {
		return err
	}

	rolesErr := s.GetUserRoles(ctx)
	userErr := s.auth.GetUser(ctx)
	if rolesErr != nil {
		return rolesErr
	}
	return userErr
}

// UpdateUserRoles reemplaza nombre y permisos completos del rol (semántica de
// reemplazo total, a diferencia del PATCH parcial de productos) y resincroniza
// la lista.
func (s *UserRolesStore) UpdateUserRoles(ctx context.Context, roles entity.UserRoles) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPatch,
		Path:    fmt.Sprintf("/api/v1/user-roles/%d", roles.ID),
		Headers: s.auth.AuthHeaders(),
		Body: map[string]any{
			"name":        roles.Name,
			"permissions": roles.Permissions,
		},
	}, nil)
	if err != nil {
		return err
	}

	return s.GetUserRoles(ctx)
}

// AddUserRoles crea un rol con el nombre dado y resincroniza la lista. Ante un
// error de privilegio insuficiente vacía la lista local antes de propagar.
func (s *UserRolesStore) AddUserRoles(ctx context.Context, name string) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/user-roles",
		Headers: s.auth.AuthHeaders(),
		Body:    map[string]string{"name": name},
	}, nil)
	if err != nil {
		if apierror.HasInsufficientPrivilege(err) {
			s.ClearUserRoles()
		}
		return err
	}

	return s.GetUserRoles(ctx)
}

// ClearUserRoles vacía la lista local; no hay llamada al servidor.
func (s *UserRolesStore) ClearUserRoles() {
	s.userRoles.Set([]entity.UserRoles{})
}
