// Package pdf genera la orden de trabajo imprimible de un pedido de producción.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: RFM Apparel    │  Ref. + etapa actual │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE / FECHA / CANTIDAD        │    QR     │
//	│  ───────────────────────────────────────────  │
//	│  ETAPAS: check de cada etapa del tablero      │
//	│  HISTORIAL: fecha | de -> a | usuario         │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/rfm-api/internal/application/ports"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

var _ ports.TicketRenderer = (*TicketGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TicketGenerator implementa ports.TicketRenderer usando Maroto v2.
type TicketGenerator struct {
	company string
}

// NewTicketGenerator construye el generador; company aparece en el encabezado.
func NewTicketGenerator(company string) *TicketGenerator {
	return &TicketGenerator{company: company}
}

// RenderOrderTicket genera el PDF y devuelve sus bytes.
func (g *TicketGenerator) RenderOrderTicket(_ context.Context, order *entity.Order, history []*entity.StageChange) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de trabajo "+order.OrderRef, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(stagesRows(order.Stage)...)
	m.AddRows(historyRows(history)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("ORDEN DE TRABAJO", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(order.OrderRef, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1}),
			text.New("Etapa: "+order.Stage.Title(), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

// detailRow: datos del pedido a la izquierda, QR con la referencia a la derecha.
func detailRow(order *entity.Order) core.Row {
	fecha := "-"
	if order.OrderDate != nil {
		fecha = order.OrderDate.Format("02/01/2006")
	}
	return row.New(34).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 2}),
			text.New(order.Client, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
			text.New("Fecha: "+fecha, props.Text{Size: 9, Top: 15}),
			text.New(fmt.Sprintf("Cantidad: %d", order.Qty), props.Text{Size: 9, Top: 21}),
		),
		col.New(4).Add(code.NewQr(order.OrderRef, props.Rect{Percent: 90, Center: true})),
	)
}

// stagesRows: una línea por etapa, marcando las ya superadas.
func stagesRows(current entity.Stage) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("ETAPAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	reached := true
	for _, st := range entity.Stages() {
		mark := "[x]"
		if !reached {
			mark = "[ ]"
		}
		if st == current {
			reached = false
		}
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(text.New(mark, props.Text{Size: 8, Top: 0.5})),
			col.New(11).Add(text.New(st.Title(), props.Text{Size: 8, Top: 0.5})),
		))
	}
	return rows
}

func historyRows(history []*entity.StageChange) []core.Row {
	if len(history) == 0 {
		return nil
	}
	rows := []core.Row{
		row.New(9).Add(col.New(12).Add(
			text.New("HISTORIAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 4}),
		)),
	}
	for _, h := range history {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(h.ChangedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Color: colorGray})),
			col.New(5).Add(text.New(h.FromStage.Title()+" -> "+h.ToStage.Title(), props.Text{Size: 7})),
			col.New(3).Add(text.New(h.ChangedBy, props.Text{Size: 7, Align: align.Right, Color: colorGray})),
		))
	}
	return rows
}
