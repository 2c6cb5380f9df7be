// Package report genera el listado PDF de la página vigente de productos
// (comando export del CLI) usando Maroto v2.
//
// Layout de la página A4:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación          │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Proveedor | Precio     │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: cantidad de productos / suma precios │
//	└───────────────────────────────────────────────┘
package report

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/kongsi/inventory-client/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// InventoryReport generador del listado PDF de inventario.
type InventoryReport struct{}

// NewInventoryReport construye el generador.
func NewInventoryReport() *InventoryReport { return &InventoryReport{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *InventoryReport) Generate(title string, products []entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(detailRow(p))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right}
	return row.New(8).Add(
		col.New(2).Add(text.New("ID", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(3).Add(text.New("Proveedor", header)),
		col.New(2).Add(text.New("Precio", headerRight)),
	)
}

func detailRow(p entity.Product) core.Row {
	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.ID), cell)),
		col.New(5).Add(text.New(p.Name, cell)),
		col.New(3).Add(text.New(p.Supplier.Name, cell)),
		col.New(2).Add(text.New("$"+p.Price.StringFixed(2), cellRight)),
	)
}

func totalsRow(products []entity.Product) core.Row {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 10}
	boldRight := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}
	return row.New(10).Add(
		col.New(7).Add(text.New(fmt.Sprintf("Productos: %d", len(products)), bold)),
		col.New(5).Add(text.New("Total página: $"+total.StringFixed(2), boldRight)),
	)
}
