package devserver

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/pkg/jwt"
)

// JWTConfig configuración de emisión de tokens del devserver.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthHandler maneja login, perfil y modo admin.
type AuthHandler struct {
	st     *Store
	jwtCfg JWTConfig
}

// NewAuthHandler construye el handler.
func NewAuthHandler(st *Store, jwtCfg JWTConfig) *AuthHandler {
	return &AuthHandler{st: st, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite el token. El perfil NO viene aquí: el
// cliente hace un segundo viaje a /me por diseño.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "cuerpo inválido")
	}
	if in.Email == "" {
		return sendError(c, fiber.StatusBadRequest,
			"error.invalidEmail", apierror.TypeInput, "email requerido")
	}
	if in.Password == "" {
		return sendError(c, fiber.StatusBadRequest,
			"error.invalidPassword", apierror.TypeInput, "password requerido")
	}

	u := h.st.Authenticate(in.Email, in.Password)
	if u == nil {
		return sendError(c, fiber.StatusUnauthorized,
			"error.invalidCredentials", apierror.TypeGeneral, "credenciales inválidas")
	}

	token, err := jwt.Generate(h.jwtCfg.Secret, u.Email, h.jwtCfg.Issuer, h.jwtCfg.ExpMinutes)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError,
			apierror.NameGeneral, apierror.TypeGeneral, err.Error())
	}

	return c.JSON(fiber.Map{"accessToken": token, "email": u.Email})
}

// Me devuelve el perfil: email, modo admin vigente y permisos efectivos.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email := GetEmail(c)
	u := h.st.User(email)
	if u == nil {
		return sendError(c, fiber.StatusUnauthorized,
			"error.session.expired", apierror.TypeGeneral, "cuenta desconocida")
	}
	return c.JSON(fiber.Map{
		"email":       u.Email,
		"isAdmin":     u.AdminMode,
		"permissions": h.st.PermissionsFor(email),
	})
}

// ToggleAdminMode conmuta la elevación; el cliente resincroniza con /me.
func (h *AuthHandler) ToggleAdminMode(c *fiber.Ctx) error {
	if !h.st.ToggleAdminMode(GetEmail(c)) {
		return sendError(c, fiber.StatusForbidden,
			apierror.PrefixInsufficientPrivilege, apierror.TypeGeneral,
			"la cuenta no puede elevarse a modo admin")
	}
	return c.JSON(fiber.Map{"ok": true})
}
