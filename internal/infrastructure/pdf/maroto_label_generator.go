// Package pdf implementa la generación de etiquetas de envío con Maroto v2.
//
// Cada venta ocupa una página de 100×150 mm (tamaño de etiqueta térmica):
//
//	┌───────────────────────────────┐
//	│        VENTA Nº<id>000        │
//	│          LUNITA VAL           │
//	│   tel  ·  email de contacto   │
//	│  ───────────────────────────  │
//	│  Cliente:    Nombre Apellido  │
//	│  Localidad:  ...              │
//	│  Dirección:  ...              │
//	│  Teléfono:   ...              │
//	│  Fecha:      dd/mm/aaaa       │
//	│  ───────────────────────────  │
//	│        Total: $12.345         │
//	│  ┌─────────────────────────┐  │
//	│  │ notas                   │  │
//	│  └─────────────────────────┘  │
//	└───────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lunitaval/ventas-api/internal/application/labels"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

// Dimensiones de la etiqueta en milímetros.
const (
	labelWidth  = 100
	labelHeight = 150
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// es para el formato de miles es-AR del total ($12.345, sin decimales).
var es = message.NewPrinter(language.Spanish)

var _ labels.Generator = (*MarotoLabelGenerator)(nil)

// ShopInfo datos del local impresos en cada etiqueta.
type ShopInfo struct {
	Name  string
	Phone string
	Email string
}

// MarotoLabelGenerator implementa labels.Generator usando Maroto v2.
type MarotoLabelGenerator struct {
	shop ShopInfo
}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator(shop ShopInfo) *MarotoLabelGenerator {
	return &MarotoLabelGenerator{shop: shop}
}

// Generate renderiza una página de etiqueta por venta y devuelve los bytes del PDF.
func (g *MarotoLabelGenerator) Generate(_ context.Context, items []repository.SaleWithCustomer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(labelWidth, labelHeight).
		WithLeftMargin(5).WithRightMargin(5).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiquetas de envío", true).
		WithAuthor(g.shop.Name, true).
		Build()

	m := maroto.New(cfg)
	for i := range items {
		m.AddPages(g.labelPage(&items[i]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoLabelGenerator) labelPage(sc *repository.SaleWithCustomer) core.Page {
	s, c := &sc.Sale, &sc.Customer

	p := page.New()
	p.Add(
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("VENTA Nº%d000", s.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(g.shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(g.shop.Phone+"   ·   "+g.shop.Email, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
		)),
		line.NewRow(3, props.Line{Thickness: 0.4}),
	)

	p.Add(fieldRow("Cliente:", c.FullName()))
	p.Add(fieldRow("Localidad:", c.City))
	p.Add(fieldRow("Dirección:", c.Address))
	p.Add(fieldRow("Teléfono:", c.Phone))
	if c.Description != "" {
		p.Add(fieldRow("Descripción:", c.Description))
	}
	p.Add(fieldRow("Fecha:", s.CreatedAt.Format("02/01/2006")))

	p.Add(
		line.NewRow(3, props.Line{Thickness: 0.4}),
		row.New(10).Add(col.New(12).Add(
			text.New("Total: "+formatAmount(s.Amount), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 2,
			}),
		)),
		notesRow(s.Notes),
	)
	return p
}

// fieldRow: etiqueta en negrita más valor, alineados en dos columnas.
func fieldRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 9, Top: 1.5})),
	)
}

// notesRow: recuadro de notas al pie de la etiqueta.
func notesRow(notes string) core.Row {
	return row.New(25).Add(
		col.New(12).Add(
			text.New(notes, props.Text{Size: 9, Top: 2, Left: 2, Right: 2}),
		).WithStyle(&props.Cell{BorderType: border.Full}),
	)
}

// formatAmount formatea el total sin decimales con separador de miles es-AR.
func formatAmount(d decimal.Decimal) string {
	return es.Sprintf("$%d", d.Round(0).IntPart())
}
