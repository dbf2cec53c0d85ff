package quote

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"obramat/go_backend/internal/domain/money"
)

// PdfPayload is the flat structure the document renderer consumes. Per-line
// numbers the renderer does not compute itself (discounted unit price, line
// subtotal) are already filled in.
type PdfPayload struct {
	QuoteType Kind
	QuoteID   int64
	Client    ClientInfo
	Items     []PayloadItem
	Labor     *LaborData
	Note      string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Date      time.Time
}

type PayloadItem struct {
	ProductID   int64
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	ProductType string
	Unit        string
}

type LaborData struct {
	Description    string
	System         string
	Finish         string
	Surface        decimal.Decimal
	UnitPrice      decimal.Decimal
	Estimation     decimal.Decimal
	AdvancePercent decimal.Decimal
	BalancePercent decimal.Decimal
	WarrantyYears  int
}

// Assembler maps quotes, freshly submitted or re-read from persistence, into
// renderer payloads.
type Assembler struct {
	gateway Gateway
	clients ClientDirectory
}

func NewAssembler(gw Gateway, clients ClientDirectory) *Assembler {
	return &Assembler{gateway: gw, clients: clients}
}

// AssembleSubmitted builds the payload for a quote that was just persisted,
// reusing the normalized in-memory shape instead of re-reading rows.
func (a *Assembler) AssembleSubmitted(ctx context.Context, quoteID int64, n NormalizedQuote) (PdfPayload, error) {
	var clientID int64
	if n.Kind == KindMaterials {
		clientID = n.Materials.ClientID
	} else {
		clientID = n.Labor.ClientID
	}
	client, err := a.clients.GetClient(ctx, clientID)
	if err != nil {
		return PdfPayload{}, &AssemblyError{Step: "resolve client", Err: err}
	}

	p := PdfPayload{
		QuoteType: n.Kind,
		QuoteID:   quoteID,
		Client:    client,
		Subtotal:  n.Totals.Subtotal,
		Tax:       n.Totals.Tax,
		Total:     n.Totals.Total,
		Date:      time.Now(),
	}
	switch n.Kind {
	case KindMaterials:
		p.Note = n.Materials.Note
		for _, d := range n.Materials.Details {
			p.Items = append(p.Items, PayloadItem{
				ProductID:   d.ProductID,
				Name:        d.ProductName,
				Quantity:    d.Quantity,
				UnitPrice:   money.Round2(d.UnitPrice),
				Subtotal:    money.Round2(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))),
				ProductType: d.ProductType,
				Unit:        d.Unit,
			})
		}
	case KindLabor:
		p.Note = n.Labor.Note
		p.Labor = &LaborData{
			Description:    n.Labor.Description,
			System:         n.Labor.System,
			Finish:         n.Labor.Finish,
			Surface:        n.Labor.Surface,
			UnitPrice:      n.Labor.Price,
			Estimation:     money.Round2(n.Labor.Surface.Mul(n.Labor.Price)),
			AdvancePercent: n.Labor.Advance,
			BalancePercent: n.Labor.Balance,
			WarrantyYears:  n.Labor.WarrantyYears,
		}
	}
	return p, nil
}

// AssembleExisting rebuilds the payload for a persisted quote. Per-line
// subtotals and the quote totals are recomputed from raw quantity and price;
// stored subtotal columns are never trusted, so the document always follows
// the current pricing rules.
func (a *Assembler) AssembleExisting(ctx context.Context, quoteID int64) (PdfPayload, error) {
	rec, err := a.gateway.GetQuote(ctx, quoteID)
	if err != nil {
		return PdfPayload{}, &AssemblyError{Step: "load quote", Err: err}
	}

	p := PdfPayload{
		QuoteType: rec.Kind,
		QuoteID:   rec.ID,
		Note:      rec.Note,
		Date:      rec.CreatedAt,
	}

	switch rec.Kind {
	case KindMaterials:
		rows, err := a.gateway.GetQuoteDetails(ctx, quoteID)
		if err != nil {
			return PdfPayload{}, &AssemblyError{Step: "load details", Err: err}
		}
		if len(rows) == 0 {
			return PdfPayload{}, &AssemblyError{Step: "load details", Err: errors.New("quote has no detail rows")}
		}
		lines := make([]TotalLine, 0, len(rows))
		for _, r := range rows {
			p.Items = append(p.Items, PayloadItem{
				ProductID:   r.ProductID,
				Name:        r.ProductName,
				Quantity:    r.Quantity,
				UnitPrice:   money.Round2(r.UnitPrice),
				Subtotal:    money.Round2(r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))),
				ProductType: r.ProductType,
				Unit:        r.Unit,
			})
			lines = append(lines, TotalLine{Quantity: r.Quantity, UnitPrice: r.UnitPrice})
		}
		totals := CalculateTotals(lines, rec.TaxPercent)
		p.Subtotal, p.Tax, p.Total = totals.Subtotal, totals.Tax, totals.Total

	case KindLabor:
		row, err := a.gateway.GetLaborQuote(ctx, quoteID)
		if err != nil {
			return PdfPayload{}, &AssemblyError{Step: "load labor estimate", Err: err}
		}
		estimation := money.Round2(row.Surface.Mul(row.Price))
		p.Labor = &LaborData{
			Description:    row.Description,
			System:         row.System,
			Finish:         row.Finish,
			Surface:        row.Surface,
			UnitPrice:      row.Price,
			Estimation:     estimation,
			AdvancePercent: row.Advance,
			BalancePercent: row.Balance,
			WarrantyYears:  row.WarrantyYears,
		}
		totals := CalculateTotals([]TotalLine{{Quantity: 1, UnitPrice: estimation}}, rec.TaxPercent)
		p.Subtotal, p.Tax, p.Total = totals.Subtotal, totals.Tax, totals.Total

	default:
		return PdfPayload{}, &AssemblyError{Step: "load quote", Err: errors.New("unknown quote kind " + string(rec.Kind))}
	}

	client, err := a.clients.GetClient(ctx, rec.ClientID)
	if err != nil {
		return PdfPayload{}, &AssemblyError{Step: "resolve client", Err: err}
	}
	p.Client = client
	return p, nil
}
