package entity

// ProductRolePermissions permisos de un rol sobre el módulo de productos.
type ProductRolePermissions struct {
	CanAdd    bool `json:"canAdd"`
	CanView   bool `json:"canView"`
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

// RolePermissions permisos de un rol agrupados por módulo.
// Hoy solo existe el módulo de productos.
type RolePermissions struct {
	Product ProductRolePermissions `json:"product"`
}

// RoleTarget un usuario candidato del rol y si lo tiene aplicado.
type RoleTarget struct {
	Email   string `json:"email"`
	Applied bool   `json:"applied"`
}

// UserRoles rol de permisos con sus usuarios asignables.
type UserRoles struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Permissions RolePermissions `json:"permissions"`
	Targets     []RoleTarget    `json:"targets"`
}
