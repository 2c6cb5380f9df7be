package devserver

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
)

// UserRolesHandler maneja el CRUD de roles de permisos.
type UserRolesHandler struct {
	st *Store
}

// NewUserRolesHandler construye el handler.
func NewUserRolesHandler(st *Store) *UserRolesHandler {
	return &UserRolesHandler{st: st}
}

// List devuelve todos los roles con sus targets.
func (h *UserRolesHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"userRoles": h.st.Roles()})
}

// Add crea un rol por nombre, sin permisos ni asignaciones.
func (h *UserRolesHandler) Add(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "cuerpo inválido")
	}
	if in.Name == "" {
		return sendError(c, fiber.StatusBadRequest,
			"error.input.addUserRoles.nameRequired", apierror.TypeInput, "name requerido")
	}
	r := h.st.AddRole(in.Name)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"userRoles": r})
}

// Update reemplaza nombre y permisos completos del rol.
func (h *UserRolesHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "id inválido")
	}
	var in struct {
		Name        string                 `json:"name"`
		Permissions entity.RolePermissions `json:"permissions"`
	}
	if err := c.BodyParser(&in); err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "cuerpo inválido")
	}
	if in.Name == "" {
		return sendError(c, fiber.StatusBadRequest,
			"error.input.addUserRoles.nameRequired", apierror.TypeInput, "name requerido")
	}
	if !h.st.UpdateRole(id, in.Name, in.Permissions) {
		return sendError(c, fiber.StatusNotFound,
			apierror.NameGeneral, apierror.TypeGeneral, "rol no encontrado")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Toggle conmuta la membresía de un email en el rol.
func (h *UserRolesHandler) Toggle(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "id inválido")
	}
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "cuerpo inválido")
	}
	if !h.st.ToggleRole(id, in.Email) {
		return sendError(c, fiber.StatusNotFound,
			apierror.NameGeneral, apierror.TypeGeneral, "rol o cuenta no encontrados")
	}
	return c.JSON(fiber.Map{"ok": true})
}
