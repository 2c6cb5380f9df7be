package devserver

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store  *Store
	JWTCfg JWTConfig
}

// Router registra las rutas de la API v1 que consumen los stores del SDK.
func Router(app *fiber.App, deps RouterDeps) {
	st := deps.Store
	authHandler := NewAuthHandler(st, deps.JWTCfg)
	inventoryHandler := NewInventoryHandler(st)
	rolesHandler := NewUserRolesHandler(st)

	api := app.Group("/api/v1")
	auth := AuthMiddleware(deps.JWTCfg.Secret, st)

	// Usuario
	user := api.Group("/user")
	user.Post("/login", authHandler.Login)
	user.Get("/me", auth, authHandler.Me)
	user.Post("/admin-mode", auth, authHandler.ToggleAdminMode)

	// Inventario. Los proveedores son públicos; el resto exige el permiso
	// de producto correspondiente.
	inv := api.Group("/inventory")
	inv.Get("/suppliers", inventoryHandler.Suppliers)
	inv.Get("/", auth, RequirePermission(st, "canViewProduct"), inventoryHandler.List)
	inv.Get("/:id", auth, RequirePermission(st, "canViewProduct"), inventoryHandler.GetByID)
	inv.Post("/add", auth, RequirePermission(st, "canAddProduct"), inventoryHandler.Add)
	inv.Patch("/update/:id", auth, RequirePermission(st, "canEditProduct"), inventoryHandler.Update)
	inv.Delete("/delete/:id", auth, RequirePermission(st, "canDeleteProduct"), inventoryHandler.Delete)
	inv.Post("/populate", auth, RequirePermission(st, "canAddProduct"), inventoryHandler.Populate)

	// Roles: gestión solo en modo admin activo.
	roles := api.Group("/user-roles", auth, RequireAdminMode(st))
	roles.Get("/", rolesHandler.List)
	roles.Post("/", rolesHandler.Add)
	roles.Patch("/:id", rolesHandler.Update)
	roles.Post("/:id/toggle", rolesHandler.Toggle)
}
