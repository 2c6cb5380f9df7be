package store

import (
	"context"
	"net/http"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/internal/reactive"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// SelectionItem par clave/etiqueta para selectores de la UI.
type SelectionItem struct {
	Key   int64
	Value string
}

// SupplierStore lista de proveedores, solo lectura desde el cliente.
type SupplierStore struct {
	rest      *rest.Client
	log       *logger.Logger
	suppliers *reactive.Cell[[]entity.Supplier]
}

// NewSupplierStore construye el store de proveedores.
func NewSupplierStore(rc *rest.Client, log *logger.Logger) *SupplierStore {
	return &SupplierStore{
		rest:      rc,
		log:       log,
		suppliers: reactive.NewCell([]entity.Supplier{}),
	}
}

// Suppliers devuelve la lista vigente.
func (s *SupplierStore) Suppliers() []entity.Supplier {
	return s.suppliers.Get()
}

// WatchSuppliers registra un watcher sobre los cambios de la lista.
func (s *SupplierStore) WatchSuppliers(fn func([]entity.Supplier)) {
	s.suppliers.Watch(fn)
}

// Selection proyección {Key, Value} para el selector de proveedor, recalculada
// sobre el estado vigente.
func (s *SupplierStore) Selection() []SelectionItem {
	suppliers := s.suppliers.Get()
	items := make([]SelectionItem, 0, len(suppliers))
	for _, sup := range suppliers {
		items = append(items, SelectionItem{Key: sup.ID, Value: sup.Name})
	}
	return items
}

// GetSuppliers trae la lista (endpoint público) y reemplaza el estado local.
// Ante un error de privilegio insuficiente vacía la lista antes de propagar:
// la UI no debe mostrar datos que el usuario ya no puede ver.
func (s *SupplierStore) GetSuppliers(ctx context.Context) error {
	var out struct {
		Suppliers []entity.Supplier `json:"suppliers"`
	}
	err := s.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/inventory/suppliers",
	}, &out)
	if err != nil {
		if apierror.HasInsufficientPrivilege(err) {
			s.ClearSuppliers()
		}
		return err
	}

	if out.Suppliers != nil {
		s.suppliers.Set(out.Suppliers)
	}
	return nil
}

// ClearSuppliers vacía la lista local.
func (s *SupplierStore) ClearSuppliers() {
	s.suppliers.Set([]entity.Supplier{})
}
