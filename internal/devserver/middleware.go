package devserver

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/pkg/jwt"
)

// LocalEmail key del email autenticado en c.Locals.
const LocalEmail = "email"

// sendError responde el sobre de error que esperan los stores:
// {errors: [{name, type, message}]}.
func sendError(c *fiber.Ctx, status int, name, typ, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"errors": []apierror.ServerError{{Name: name, Type: typ, Message: message}},
	})
}

// AuthMiddleware valida el Bearer Token JWT, verifica que la cuenta exista y
// deja el email en c.Locals.
func AuthMiddleware(jwtSecret string, st *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return sendError(c, fiber.StatusUnauthorized,
				"error.session.expired", apierror.TypeGeneral, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return sendError(c, fiber.StatusUnauthorized,
				"error.session.expired", apierror.TypeGeneral, "formato: Bearer <token>")
		}
		email, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return sendError(c, fiber.StatusUnauthorized,
				"error.session.expired", apierror.TypeGeneral, "token inválido o expirado")
		}
		if st.User(email) == nil {
			return sendError(c, fiber.StatusUnauthorized,
				"error.session.expired", apierror.TypeGeneral, "cuenta desconocida")
		}
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RequirePermission verifica un permiso efectivo de producto. Debe usarse
// DESPUÉS de AuthMiddleware. El nombre del error lleva el prefijo de
// privilegio insuficiente que los stores usan para vaciar sus colecciones.
func RequirePermission(st *Store, perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := GetEmail(c)
		if email == "" {
			return sendError(c, fiber.StatusUnauthorized,
				"error.session.expired", apierror.TypeGeneral, "email no encontrado en el token")
		}
		perms := st.PermissionsFor(email)
		allowed := false
		switch perm {
		case "canAddProduct":
			allowed = perms.CanAddProduct
		case "canViewProduct":
			allowed = perms.CanViewProduct
		case "canEditProduct":
			allowed = perms.CanEditProduct
		case "canDeleteProduct":
			allowed = perms.CanDeleteProduct
		}
		if !allowed {
			return sendError(c, fiber.StatusForbidden,
				apierror.PrefixInsufficientPrivilege+"."+perm, apierror.TypeGeneral,
				"la cuenta no tiene el permiso "+perm)
		}
		return c.Next()
	}
}

// RequireAdminMode exige la elevación por modo admin (gestión de roles).
func RequireAdminMode(st *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := st.User(GetEmail(c))
		if u == nil || !u.IsAdmin || !u.AdminMode {
			return sendError(c, fiber.StatusForbidden,
				apierror.PrefixInsufficientPrivilege, apierror.TypeGeneral,
				"se requiere modo admin activo")
		}
		return c.Next()
	}
}
