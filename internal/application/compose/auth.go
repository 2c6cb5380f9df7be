package compose

import (
	"context"

	"github.com/kongsi/inventory-client/internal/application/store"
	"github.com/kongsi/inventory-client/internal/domain/entity"
)

// AuthView adaptador de vista sobre el AuthStore: expone el modo admin con un
// latch de "conmutando" y notifica los cambios de modo a la UI.
type AuthView struct {
	auth       *store.AuthStore
	isToggling bool
}

// NewAuthView construye el adaptador. onAdminMode (opcional) se invoca con el
// valor nuevo cada vez que cambia la sesión y hay un modo admin conocido.
func NewAuthView(auth *store.AuthStore, onAdminMode func(bool)) *AuthView {
	v := &AuthView{auth: auth}
	auth.WatchUser(func(*entity.User) {
		if val, ok := auth.AdminMode(); ok && onAdminMode != nil {
			onAdminMode(val)
		}
	})
	return v
}

// IsToggling reporta si hay una conmutación de modo en curso.
func (v *AuthView) IsToggling() bool {
	return v.isToggling
}

// AdminMode delega en el store.
func (v *AuthView) AdminMode() (value, ok bool) {
	return v.auth.AdminMode()
}

// Permissions delega en el store.
func (v *AuthView) Permissions() entity.Permissions {
	return v.auth.Permissions()
}

// ToggleAdminMode conmuta el modo admin manteniendo el latch; el error se
// descarta: la vista solo refleja el estado resultante.
func (v *AuthView) ToggleAdminMode(ctx context.Context) {
	v.isToggling = true
	defer func() { v.isToggling = false }()

	_ = v.auth.ToggleAdminMode(ctx)
}
