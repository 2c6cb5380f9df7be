package entity

import "github.com/shopspring/decimal"

// Supplier proveedor de productos. Solo lectura desde el cliente.
type Supplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product producto del inventario tal como lo devuelve el backend.
// El cliente nunca calcula campos localmente; solo refleja la respuesta.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Supplier Supplier        `json:"supplier"`
}
