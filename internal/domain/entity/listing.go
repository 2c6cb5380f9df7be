package entity

import (
	"net/url"
	"strconv"
)

// SortByColumn columna de ordenamiento aceptada por el backend.
type SortByColumn string

// SortOrder dirección de ordenamiento.
type SortOrder string

const (
	SortByID    SortByColumn = "id"
	SortByName  SortByColumn = "name"
	SortByPrice SortByColumn = "price"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortColumnOrder clave enumerada de ordenamiento seleccionable por el usuario.
// SortBy y SortOrder siempre se derivan juntos de una de estas claves; la UI
// nunca los fija por separado.
type SortColumnOrder string

const (
	SortIDAsc     SortColumnOrder = "idAsc"
	SortIDDesc    SortColumnOrder = "idDesc"
	SortNameAsc   SortColumnOrder = "nameAsc"
	SortNameDesc  SortColumnOrder = "nameDesc"
	SortPriceAsc  SortColumnOrder = "priceAsc"
	SortPriceDesc SortColumnOrder = "priceDesc"
)

// SortColumnOrderValues mapea cada clave a su par {SortBy, SortOrder}.
var SortColumnOrderValues = map[SortColumnOrder]struct {
	SortBy    SortByColumn
	SortOrder SortOrder
}{
	SortIDAsc:     {SortByID, SortAsc},
	SortIDDesc:    {SortByID, SortDesc},
	SortNameAsc:   {SortByName, SortAsc},
	SortNameDesc:  {SortByName, SortDesc},
	SortPriceAsc:  {SortByPrice, SortAsc},
	SortPriceDesc: {SortByPrice, SortDesc},
}

// SortFilter criterio vigente de ordenamiento y filtro de precio.
// PriceFilter es un string comparador ("lt:10"); vacío = sin filtro.
type SortFilter struct {
	SortBy      SortByColumn
	SortOrder   SortOrder
	PriceFilter string
}

// PriceFilterOption una opción del selector de filtro de precio.
type PriceFilterOption struct {
	Value string // se envía tal cual al backend
	Label string
}

// PriceFilterList opciones fijas del selector de precio, indexadas por posición.
var PriceFilterList = []PriceFilterOption{
	{"lt:10", "< $10"},
	{"lt:20", "< $20"},
	{"lt:30", "< $30"},
	{"lt:40", "< $40"},
	{"lt:50", "< $50"},
	{"lt:60", "< $60"},
	{"lt:70", "< $70"},
	{"lt:80", "< $80"},
	{"lt:90", "< $90"},
	{"lt:100", "< $100"},
}

// Pagination metadatos de página devueltos por el backend.
type Pagination struct {
	Next  bool `json:"next"`
	Prev  bool `json:"prev"`
	Pages int  `json:"pages"`
}

// DefaultPagination estado inicial de la paginación.
func DefaultPagination() Pagination {
	return Pagination{Next: false, Prev: false, Pages: 1}
}

// ListParams construye el query string del listado de inventario a partir del
// criterio vigente y la página actual.
func ListParams(f SortFilter, currentPage int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(currentPage))
	params.Set("sortBy", string(f.SortBy))
	params.Set("sortOrder", string(f.SortOrder))
	if f.PriceFilter != "" {
		params.Set("price", f.PriceFilter)
	}
	return params
}
