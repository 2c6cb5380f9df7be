// Package devserver implementa el backend de referencia del SDK: todos los
// endpoints que consumen los stores, con estado en memoria, JWT y permisos por
// rol. Sirve para desarrollo local y como doble de pruebas de punta a punta.
package devserver

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kongsi/inventory-client/internal/domain/entity"
)

// pageSize tamaño fijo de página del listado de inventario.
const pageSize = 10

type userRecord struct {
	Email        string
	PasswordHash []byte
	IsAdmin      bool // capacidad de elevarse a modo admin
	AdminMode    bool // elevación vigente
}

type roleRecord struct {
	ID          int64
	Name        string
	Permissions entity.RolePermissions
	Applied     map[string]bool // email -> membresía aplicada
}

// Store estado en memoria del backend de referencia.
// A diferencia de los stores del cliente, aquí sí hay concurrencia (una
// goroutine por petición fiber), de ahí el mutex.
type Store struct {
	mu sync.Mutex

	users     map[string]*userRecord
	suppliers []entity.Supplier
	products  []entity.Product
	roles     []*roleRecord

	nextProductID int64
	nextRoleID    int64
}

// NewStore construye el estado con los datos de arranque: dos cuentas, cuatro
// proveedores y un rol de solo lectura aplicado a la cuenta de staff.
func NewStore() *Store {
	st := &Store{
		users:         map[string]*userRecord{},
		nextProductID: 1,
		nextRoleID:    1,
	}

	st.addUser("admin@kongsi.test", "admin123", true)
	st.addUser("staff@kongsi.test", "staff123", false)

	st.suppliers = []entity.Supplier{
		{ID: 1, Name: "Acme Supplies"},
		{ID: 2, Name: "Borneo Traders"},
		{ID: 3, Name: "Kongsi Wholesale"},
		{ID: 4, Name: "Straits Goods"},
	}

	viewer := &roleRecord{
		ID:   st.nextRoleID,
		Name: "Viewer",
		Permissions: entity.RolePermissions{
			Product: entity.ProductRolePermissions{CanView: true},
		},
		Applied: map[string]bool{"staff@kongsi.test": true},
	}
	st.nextRoleID++
	st.roles = append(st.roles, viewer)

	return st
}

func (st *Store) addUser(email, password string, isAdmin bool) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("devserver: hashear password de arranque: " + err.Error())
	}
	st.users[email] = &userRecord{Email: email, PasswordHash: hash, IsAdmin: isAdmin}
}

// Authenticate verifica credenciales; devuelve el registro o nil.
func (st *Store) Authenticate(email, password string) *userRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	u := st.users[email]
	if u == nil {
		return nil
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil
	}
	return u
}

// User devuelve el registro de la cuenta, o nil.
func (st *Store) User(email string) *userRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.users[email]
}

// ToggleAdminMode conmuta la elevación de la cuenta; false si no es admin.
func (st *Store) ToggleAdminMode(email string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	u := st.users[email]
	if u == nil || !u.IsAdmin {
		return false
	}
	u.AdminMode = !u.AdminMode
	return true
}

// PermissionsFor calcula los permisos efectivos: unión de los roles aplicados
// al email, elevada a todo-permitido cuando el modo admin está activo.
func (st *Store) PermissionsFor(email string) entity.Permissions {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.permissionsForLocked(email)
}

func (st *Store) permissionsForLocked(email string) entity.Permissions {
	if u := st.users[email]; u != nil && u.IsAdmin && u.AdminMode {
		return entity.Permissions{
			CanAddProduct:    true,
			CanViewProduct:   true,
			CanEditProduct:   true,
			CanDeleteProduct: true,
		}
	}
	var perms entity.Permissions
	for _, r := range st.roles {
		if !r.Applied[email] {
			continue
		}
		perms.CanAddProduct = perms.CanAddProduct || r.Permissions.Product.CanAdd
		perms.CanViewProduct = perms.CanViewProduct || r.Permissions.Product.CanView
		perms.CanEditProduct = perms.CanEditProduct || r.Permissions.Product.CanEdit
		perms.CanDeleteProduct = perms.CanDeleteProduct || r.Permissions.Product.CanDelete
	}
	return perms
}

// Suppliers devuelve la lista de proveedores.
func (st *Store) Suppliers() []entity.Supplier {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]entity.Supplier, len(st.suppliers))
	copy(out, st.suppliers)
	return out
}

func (st *Store) supplierByIDLocked(id int64) *entity.Supplier {
	for i := range st.suppliers {
		if st.suppliers[i].ID == id {
			return &st.suppliers[i]
		}
	}
	return nil
}

// AddProduct crea un producto; false si el proveedor no existe.
func (st *Store) AddProduct(name string, price decimal.Decimal, supplierID int64) (entity.Product, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sup := st.supplierByIDLocked(supplierID)
	if sup == nil {
		return entity.Product{}, false
	}
	p := entity.Product{ID: st.nextProductID, Name: name, Price: price, Supplier: *sup}
	st.nextProductID++
	st.products = append(st.products, p)
	return p, true
}

// Product devuelve un producto por id, o nil.
func (st *Store) Product(id int64) *entity.Product {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.products {
		if st.products[i].ID == id {
			p := st.products[i]
			return &p
		}
	}
	return nil
}

// UpdateProduct aplica un PATCH parcial; los campos nil no se tocan.
// Devuelve false si el producto (o el proveedor nuevo) no existe.
func (st *Store) UpdateProduct(id int64, name *string, price *decimal.Decimal, supplierID *int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.products {
		if st.products[i].ID != id {
			continue
		}
		if supplierID != nil {
			sup := st.supplierByIDLocked(*supplierID)
			if sup == nil {
				return false
			}
			st.products[i].Supplier = *sup
		}
		if name != nil {
			st.products[i].Name = *name
		}
		if price != nil {
			st.products[i].Price = *price
		}
		return true
	}
	return false
}

// DeleteProduct elimina un producto; false si no existe.
func (st *Store) DeleteProduct(id int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.products {
		if st.products[i].ID == id {
			st.products = append(st.products[:i], st.products[i+1:]...)
			return true
		}
	}
	return false
}

// Populate siembra el inventario con productos de muestra.
func (st *Store) Populate() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	samples := []struct {
		name  string
		price string
	}{
		{"Rice Cooker", "45.90"}, {"Wok Pan", "28.50"}, {"Ceramic Teapot", "19.90"},
		{"Bamboo Steamer", "12.00"}, {"Chopstick Set", "5.50"}, {"Soy Sauce 1L", "3.20"},
		{"Sesame Oil 500ml", "7.80"}, {"Jasmine Rice 5kg", "15.40"}, {"Dried Noodles", "2.10"},
		{"Clay Pot", "22.00"}, {"Mortar & Pestle", "18.60"}, {"Tea Leaves 250g", "9.90"},
		{"Rattan Basket", "14.30"}, {"Palm Sugar 1kg", "6.70"}, {"Coconut Milk", "1.80"},
		{"Spice Rack", "24.90"}, {"Steel Cleaver", "32.00"}, {"Bamboo Tray", "8.40"},
		{"Fish Sauce 750ml", "4.60"}, {"Sambal Jar", "5.90"}, {"Kuali Stand", "11.20"},
		{"Pandan Extract", "3.90"}, {"Tiffin Carrier", "26.80"}, {"Charcoal Stove", "58.00"},
		{"Grass Broom", "6.10"},
	}
	for i, s := range samples {
		sup := st.suppliers[i%len(st.suppliers)]
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			continue
		}
		st.products = append(st.products, entity.Product{
			ID: st.nextProductID, Name: s.name, Price: price, Supplier: sup,
		})
		st.nextProductID++
	}
	return len(samples)
}

// ListProducts aplica filtro de precio, ordenamiento y paginación.
// El filtro tiene la gramática "lt|lte|gt|gte:<cota>"; inválido devuelve error.
func (st *Store) ListProducts(page int, sortBy, sortOrder, priceFilter string) ([]entity.Product, entity.Pagination, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	items := make([]entity.Product, 0, len(st.products))
	if priceFilter != "" {
		op, bound, err := parsePriceFilter(priceFilter)
		if err != nil {
			return nil, entity.Pagination{}, err
		}
		for _, p := range st.products {
			if matchPrice(p.Price, op, bound) {
				items = append(items, p)
			}
		}
	} else {
		items = append(items, st.products...)
	}

	desc := sortOrder == "desc"
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = items[i].Name < items[j].Name
		case "price":
			less = items[i].Price.LessThan(items[j].Price)
		default:
			less = items[i].ID < items[j].ID
		}
		if desc {
			return !less
		}
		return less
	})

	pages := (len(items) + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	pg := entity.Pagination{Prev: page > 1, Next: page < pages, Pages: pages}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []entity.Product{}, pg, nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pg, nil
}

func parsePriceFilter(s string) (op string, bound decimal.Decimal, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return "", decimal.Zero, fmt.Errorf("filtro de precio inválido: %q", s)
	}
	switch parts[0] {
	case "lt", "lte", "gt", "gte":
	default:
		return "", decimal.Zero, fmt.Errorf("comparador de precio inválido: %q", parts[0])
	}
	bound, err = decimal.NewFromString(parts[1])
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("cota de precio inválida: %q", parts[1])
	}
	return parts[0], bound, nil
}

func matchPrice(price decimal.Decimal, op string, bound decimal.Decimal) bool {
	switch op {
	case "lt":
		return price.LessThan(bound)
	case "lte":
		return price.LessThanOrEqual(bound)
	case "gt":
		return price.GreaterThan(bound)
	case "gte":
		return price.GreaterThanOrEqual(bound)
	}
	return false
}

// Roles devuelve los roles como entidades, con los targets (todas las cuentas
// conocidas) ordenados por email.
func (st *Store) Roles() []entity.UserRoles {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rolesLocked()
}

func (st *Store) rolesLocked() []entity.UserRoles {
	emails := make([]string, 0, len(st.users))
	for e := range st.users {
		emails = append(emails, e)
	}
	sort.Strings(emails)

	out := make([]entity.UserRoles, 0, len(st.roles))
	for _, r := range st.roles {
		targets := make([]entity.RoleTarget, 0, len(emails))
		for _, e := range emails {
			targets = append(targets, entity.RoleTarget{Email: e, Applied: r.Applied[e]})
		}
		out = append(out, entity.UserRoles{
			ID:          r.ID,
			Name:        r.Name,
			Permissions: r.Permissions,
			Targets:     targets,
		})
	}
	return out
}

// AddRole crea un rol sin permisos y sin asignaciones.
func (st *Store) AddRole(name string) entity.UserRoles {
	st.mu.Lock()
	defer st.mu.Unlock()
	r := &roleRecord{ID: st.nextRoleID, Name: name, Applied: map[string]bool{}}
	st.nextRoleID++
	st.roles = append(st.roles, r)
	return entity.UserRoles{ID: r.ID, Name: r.Name}
}

// UpdateRole reemplaza nombre y permisos completos; false si no existe.
func (st *Store) UpdateRole(id int64, name string, perms entity.RolePermissions) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, r := range st.roles {
		if r.ID == id {
			r.Name = name
			r.Permissions = perms
			return true
		}
	}
	return false
}

// ToggleRole conmuta la membresía del email en el rol; false si el rol o la
// cuenta no existen.
func (st *Store) ToggleRole(id int64, email string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.users[email] == nil {
		return false
	}
	for _, r := range st.roles {
		if r.ID == id {
			r.Applied[email] = !r.Applied[email]
			return true
		}
	}
	return false
}
