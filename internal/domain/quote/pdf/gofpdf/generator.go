package gofpdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"obramat/go_backend/internal/domain/quote"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(p quote.PdfPayload) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Cotización", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Cotización"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Folio %d — %s", p.QuoteID, p.Date.Format("02/01/2006"))))
	pdf.Ln(8)

	if p.Client.Name != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, tr("Cliente: "+p.Client.Name))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, line := range []string{p.Client.Address, p.Client.Phone, p.Client.Email} {
			if line != "" {
				pdf.Cell(0, 5, tr(line))
				pdf.Ln(5)
			}
		}
	}
	pdf.Ln(4)

	switch p.QuoteType {
	case quote.KindMaterials:
		g.materialsTable(pdf, tr, p.Items)
	case quote.KindLabor:
		if p.Labor != nil {
			g.laborBlock(pdf, tr, *p.Labor)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Subtotal: %s", p.Subtotal.StringFixed(2))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("IVA: %s", p.Tax.StringFixed(2))))
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Total: %s", p.Total.StringFixed(2))))
	pdf.Ln(8)

	if strings.TrimSpace(p.Note) != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, tr("Nota: "+p.Note), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, tr("Obramat • Materiales para construcción"))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Generado: %s", time.Now().Format(time.RFC3339))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) materialsTable(pdf *gofpdf.Fpdf, tr func(string) string, items []quote.PayloadItem) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(90, 7, tr("Producto"))
	pdf.Cell(20, 7, tr("Cant."))
	pdf.Cell(20, 7, tr("Unidad"))
	pdf.Cell(30, 7, tr("P. Unitario"))
	pdf.Cell(30, 7, tr("Importe"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, it := range items {
		pdf.Cell(90, 6, tr(trim(it.Name, 48)))
		pdf.Cell(20, 6, fmt.Sprintf("%d", it.Quantity))
		pdf.Cell(20, 6, tr(it.Unit))
		pdf.Cell(30, 6, it.UnitPrice.StringFixed(2))
		pdf.Cell(30, 6, it.Subtotal.StringFixed(2))
		pdf.Ln(6)
	}
}

func (g *Generator) laborBlock(pdf *gofpdf.Fpdf, tr func(string) string, l quote.LaborData) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, tr("Estimación de mano de obra"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Descripción", l.Description},
		{"Sistema", l.System},
		{"Acabado", l.Finish},
		{"Superficie (m²)", l.Surface.String()},
		{"Precio unitario", l.UnitPrice.StringFixed(2)},
		{"Estimación", l.Estimation.StringFixed(2)},
		{"Anticipo (%)", l.AdvancePercent.String()},
		{"Saldo (%)", l.BalancePercent.String()},
		{"Garantía (años)", fmt.Sprintf("%d", l.WarrantyYears)},
	}
	for _, r := range rows {
		if strings.TrimSpace(r[1]) == "" {
			continue
		}
		pdf.Cell(50, 6, tr(r[0]))
		pdf.Cell(0, 6, tr(r[1]))
		pdf.Ln(6)
	}
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
