package devserver

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
)

// InventoryHandler maneja el CRUD de productos y el listado de proveedores.
type InventoryHandler struct {
	st *Store
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(st *Store) *InventoryHandler {
	return &InventoryHandler{st: st}
}

// List devuelve la página pedida con ordenamiento y filtro de precio.
// Query: page, sortBy (id|name|price), sortOrder (asc|desc), price (op:cota).
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	sortBy := c.Query("sortBy", "id")
	sortOrder := c.Query("sortOrder", "desc")
	priceFilter := c.Query("price", "")

	items, pg, err := h.st.ListProducts(page, sortBy, sortOrder, priceFilter)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, err.Error())
	}
	return c.JSON(fiber.Map{"products": items, "pagination": pg})
}

// GetByID devuelve un producto por id.
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "id inválido")
	}
	p := h.st.Product(id)
	if p == nil {
		return sendError(c, fiber.StatusNotFound,
			apierror.NameGeneral, apierror.TypeGeneral, "producto no encontrado")
	}
	return c.JSON(fiber.Map{"product": p})
}

// Add crea un producto. Valida los tres campos con errores de tipo "input"
// para que la vista los muestre por campo.
func (h *InventoryHandler) Add(c *fiber.Ctx) error {
	var in struct {
		Name     string           `json:"name"`
		Price    *decimal.Decimal `json:"price"`
		Supplier *int64           `json:"supplier"`
	}
	if err := c.BodyParser(&in); err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "cuerpo inválido")
	}
	if in.Name == "" {
		return sendError(c, fiber.StatusBadRequest,
			"error.input.addProduct.nameRequired", apierror.TypeInput, "name requerido")
	}
	if in.Price == nil {
		return sendError(c, fiber.StatusBadRequest,
			"error.input.addProduct.priceRequired", apierror.TypeInput, "price requerido")
	}
	if in.Supplier == nil {
		return sendError(c, fiber.StatusBadRequest,
			"error.input.addProduct.supplierRequired", apierror.TypeInput, "supplier requerido")
	}

	p, ok := h.st.AddProduct(in.Name, *in.Price, *in.Supplier)
	if !ok {
		return sendError(c, fiber.StatusBadRequest,
			"error.input.addProduct.supplierRequired", apierror.TypeInput, "proveedor desconocido")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
}

// Update aplica un PATCH parcial: los campos ausentes no se tocan.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "id inválido")
	}
	var in struct {
		Name     *string          `json:"name"`
		Price    *decimal.Decimal `json:"price"`
		Supplier *int64           `json:"supplier"`
	}
	if err := c.BodyParser(&in); err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "cuerpo inválido")
	}
	if !h.st.UpdateProduct(id, in.Name, in.Price, in.Supplier) {
		return sendError(c, fiber.StatusNotFound,
			apierror.NameGeneral, apierror.TypeGeneral, "producto o proveedor no encontrado")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete elimina un producto.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest,
			apierror.NameGeneral, apierror.TypeGeneral, "id inválido")
	}
	if !h.st.DeleteProduct(id) {
		return sendError(c, fiber.StatusNotFound,
			apierror.NameGeneral, apierror.TypeGeneral, "producto no encontrado")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Populate siembra productos de muestra.
func (h *InventoryHandler) Populate(c *fiber.Ctx) error {
	n := h.st.Populate()
	return c.JSON(fiber.Map{"added": n})
}

// Suppliers devuelve la lista de proveedores (endpoint público).
func (h *InventoryHandler) Suppliers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"suppliers": h.st.Suppliers()})
}
