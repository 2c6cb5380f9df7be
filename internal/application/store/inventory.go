package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/internal/reactive"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// ListErrorHandler estrategia de manejo de fallos del refetch del listado.
// GetProducts es la única operación que no devuelve el error al llamador: el
// refetch suele dispararse desde la cascada reactiva, donde no hay quien lo
// capture de forma síncrona.
type ListErrorHandler func(*apierror.ServerError)

// AddProductInput datos para crear un producto.
type AddProductInput struct {
	Name     string
	Price    decimal.Decimal
	Supplier int64
}

// UpdateProductInput campos del PATCH parcial. Solo se envían los campos con
// valor: Name distinto de vacío, Price distinto de cero, Supplier distinto de
// cero. Un precio 0 legítimo es indistinguible de "sin valor" y se omite;
// ambigüedad heredada del contrato vigente, fijada por test.
type UpdateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Supplier int64
}

// InventoryStore listado de productos con ordenamiento, filtro de precio y
// paginación, más las mutaciones CRUD. Se construye por nombre para que
// convivan instancias independientes.
//
// Cascada reactiva (dos saltos, debe preservarse): la selección del usuario
// (clave de orden o índice de filtro) consolida primero el criterio derivado
// con la paginación ya reseteada, y es el cambio de criterio el que dispara el
// único refetch. La página actual dispara el suyo por separado.
type InventoryStore struct {
	name        string
	rest        *rest.Client
	auth        *AuthStore
	log         *logger.Logger
	onListError ListErrorHandler

	products         *reactive.Cell[[]entity.Product]
	pagination       *reactive.Cell[entity.Pagination]
	currentPage      *reactive.Cell[int]
	sortColumnOrder  *reactive.Cell[entity.SortColumnOrder]
	priceFilterIndex *reactive.Cell[*int]
	sortFilter       *reactive.Cell[entity.SortFilter]

	// Context bajo el que corren los refetch disparados por la cascada;
	// lo fija el método Set* que la inició.
	listCtx context.Context
}

// NewInventoryStore construye un store de inventario. onListError puede ser
// nil (los fallos del listado se descartan tras limpiar estado).
func NewInventoryStore(name string, rc *rest.Client, auth *AuthStore, onListError ListErrorHandler, log *logger.Logger) *InventoryStore {
	if name == "" {
		name = "inventory"
	}
	if onListError == nil {
		onListError = func(*apierror.ServerError) {}
	}
	s := &InventoryStore{
		name:        name,
		rest:        rc,
		auth:        auth,
		log:         log,
		onListError: onListError,

		products:         reactive.NewCell([]entity.Product{}),
		pagination:       reactive.NewCell(entity.DefaultPagination()),
		currentPage:      reactive.NewCell(1),
		sortColumnOrder:  reactive.NewCell(entity.SortIDDesc),
		priceFilterIndex: reactive.NewCell[*int](nil),
		sortFilter: reactive.NewCell(entity.SortFilter{
			SortBy:    entity.SortByID,
			SortOrder: entity.SortDesc,
		}),
		listCtx: context.Background(),
	}

	// Primer salto: la selección consolida el criterio derivado.
	s.sortColumnOrder.Watch(func(key entity.SortColumnOrder) {
		s.ResetPagination()
		v := entity.SortColumnOrderValues[key]
		f := s.sortFilter.Get()
		f.SortBy = v.SortBy
		f.SortOrder = v.SortOrder
		s.sortFilter.Set(f)
	})
	s.priceFilterIndex.Watch(func(idx *int) {
		s.ResetPagination()
		f := s.sortFilter.Get()
		if idx != nil {
			f.PriceFilter = entity.PriceFilterList[*idx].Value
		} else {
			f.PriceFilter = ""
		}
		s.sortFilter.Set(f)
	})

	// Segundo salto: el criterio consolidado y la página disparan el refetch.
	s.sortFilter.Watch(func(entity.SortFilter) {
		s.GetProducts(s.listCtx)
	})
	s.currentPage.Watch(func(int) {
		s.GetProducts(s.listCtx)
	})

	return s
}

// Name devuelve el nombre de la instancia.
func (s *InventoryStore) Name() string { return s.name }

// Products devuelve la página vigente de productos.
func (s *InventoryStore) Products() []entity.Product { return s.products.Get() }

// Pagination devuelve los metadatos de página vigentes.
func (s *InventoryStore) Pagination() entity.Pagination { return s.pagination.Get() }

// CurrentPage devuelve la página actual (>= 1).
func (s *InventoryStore) CurrentPage() int { return s.currentPage.Get() }

// SortColumnOrder devuelve la clave de orden vigente.
func (s *InventoryStore) SortColumnOrder() entity.SortColumnOrder { return s.sortColumnOrder.Get() }

// SortFilter devuelve el criterio consolidado vigente.
func (s *InventoryStore) SortFilter() entity.SortFilter { return s.sortFilter.Get() }

// PriceFilterIndex devuelve el índice seleccionado en PriceFilterList (nil = sin filtro).
func (s *InventoryStore) PriceFilterIndex() *int { return s.priceFilterIndex.Get() }

// WatchProducts registra un watcher sobre la lista de productos.
func (s *InventoryStore) WatchProducts(fn func([]entity.Product)) {
	s.products.Watch(fn)
}

// SetSortColumnOrder cambia la clave de orden: resetea paginación, deriva
// SortBy/SortOrder y dispara exactamente un refetch vía la cascada.
func (s *InventoryStore) SetSortColumnOrder(ctx context.Context, key entity.SortColumnOrder) {
	s.listCtx = ctx
	s.sortColumnOrder.Set(key)
}

// SetPriceFilterIndex selecciona un índice de PriceFilterList (nil limpia el
// filtro): resetea paginación y dispara exactamente un refetch vía la cascada.
func (s *InventoryStore) SetPriceFilterIndex(ctx context.Context, idx *int) {
	s.listCtx = ctx
	s.priceFilterIndex.Set(idx)
}

// SetCurrentPage cambia la página actual y dispara un refetch.
func (s *InventoryStore) SetCurrentPage(ctx context.Context, page int) {
	s.listCtx = ctx
	s.currentPage.Set(page)
}

// ResetPagination vuelve a la página 1 y a los metadatos por defecto, sin
// disparar refetch: se invoca siempre justo antes de un cambio de criterio que
// ya trae el suyo.
func (s *InventoryStore) ResetPagination() {
	s.currentPage.SetSilent(1)
	s.pagination.SetSilent(entity.DefaultPagination())
}

// GetProducts refresca la página vigente del listado. Los fallos no se
// devuelven: van al ListErrorHandler inyectado, tras vaciar la lista si el
// error es de privilegio insuficiente.
func (s *InventoryStore) GetProducts(ctx context.Context) {
	var out struct {
		Products   []entity.Product   `json:"products"`
		Pagination *entity.Pagination `json:"pagination"`
	}
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodGet,
		Path:    "/api/v1/inventory",
		Query:   entity.ListParams(s.sortFilter.Get(), s.currentPage.Get()),
		Headers: s.auth.AuthHeaders(),
	}, &out)
	if err != nil {
		if apierror.HasInsufficientPrivilege(err) {
			s.ClearProducts()
		}
		s.onListError(asServerError(err))
		return
	}

	if out.Products != nil {
		s.products.Set(out.Products)
	}
	if out.Pagination != nil {
		s.pagination.Set(*out.Pagination)
	}
}

// GetProduct trae un producto por id.
func (s *InventoryStore) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var out struct {
		Product entity.Product `json:"product"`
	}
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodGet,
		Path:    fmt.Sprintf("/api/v1/inventory/%d", id),
		Headers: s.auth.AuthHeaders(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// AddProduct crea un producto. Tras el éxito deja el orden en "más reciente
// primero" (idDesc) para que el producto nuevo quede visible, y refresca el
// listado exactamente una vez.
func (s *InventoryStore) AddProduct(ctx context.Context, in AddProductInput) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/inventory/add",
		Headers: s.auth.AuthHeaders(),
		Body: map[string]any{
			"name":     in.Name,
			"price":    in.Price,
			"supplier": in.Supplier,
		},
	}, nil)
	if err != nil {
		return err
	}

	if s.sortColumnOrder.Get() != entity.SortIDDesc {
		s.listCtx = ctx
		s.sortColumnOrder.Set(entity.SortIDDesc) // la cascada refetchea
	} else {
		s.GetProducts(ctx)
	}
	return nil
}

// UpdateProduct envía un PATCH parcial con los campos presentes (ver
// UpdateProductInput) y refresca el listado.
func (s *InventoryStore) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) error {
	data := map[string]any{}
	if in.Name != "" {
		data["name"] = in.Name
	}
	if !in.Price.IsZero() {
		data["price"] = in.Price
	}
	if in.Supplier != 0 {
		data["supplier"] = in.Supplier
	}

	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPatch,
		Path:    fmt.Sprintf("/api/v1/inventory/update/%d", id),
		Headers: s.auth.AuthHeaders(),
		Body:    data,
	}, nil)
	if err != nil {
		return err
	}

	s.GetProducts(ctx)
	return nil
}

// DeleteProduct elimina un producto y refresca el listado.
func (s *InventoryStore) DeleteProduct(ctx context.Context, id int64) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodDelete,
		Path:    fmt.Sprintf("/api/v1/inventory/delete/%d", id),
		Headers: s.auth.AuthHeaders(),
	}, nil)
	if err != nil {
		return err
	}

	s.GetProducts(ctx)
	return nil
}

// PopulateInventory dispara el sembrado del inventario en el servidor y
// refresca el listado.
func (s *InventoryStore) PopulateInventory(ctx context.Context) error {
	err := s.rest.Do(ctx, rest.Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/inventory/populate",
		Headers: s.auth.AuthHeaders(),
	}, nil)
	if err != nil {
		return err
	}

	s.GetProducts(ctx)
	return nil
}

// ClearProducts vacía la lista local.
func (s *InventoryStore) ClearProducts() {
	s.products.Set([]entity.Product{})
}

// asServerError garantiza la forma normalizada del error; el transporte ya
// normaliza todo, esto cubre errores ajenos por si acaso.
func asServerError(err error) *apierror.ServerError {
	var se *apierror.ServerError
	if errors.As(err, &se) {
		return se
	}
	return apierror.General(err.Error())
}
