package quote

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Gateway persists quotes and reads them back for document regeneration.
type Gateway interface {
	CreateQuote(ctx context.Context, p CreateQuoteParams) (int64, error)
	CreateLaborQuote(ctx context.Context, p CreateLaborQuoteParams) (int64, error)
	GetQuote(ctx context.Context, quoteID int64) (Record, error)
	GetQuoteDetails(ctx context.Context, quoteID int64) ([]DetailRow, error)
	GetLaborQuote(ctx context.Context, quoteID int64) (LaborRow, error)
}

// ClientDirectory resolves the client-identification block for documents.
type ClientDirectory interface {
	GetClient(ctx context.Context, clientID int64) (ClientInfo, error)
}

// Renderer turns an assembled payload into a retrievable document location.
type Renderer interface {
	Render(ctx context.Context, p PdfPayload) (string, error)
}

// CreateQuoteParams is the gateway shape for a materials quote. Detail unit
// prices are already discounted; the list price is not stored server-side.
type CreateQuoteParams struct {
	ClientID   int64
	UserID     int64
	Note       string
	TaxPercent decimal.Decimal
	Total      decimal.Decimal
	Details    []CreateDetailParams
}

type CreateDetailParams struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductType string
	Unit        string
}

// CreateLaborQuoteParams is the gateway shape for a labor quote.
type CreateLaborQuoteParams struct {
	ClientID      int64
	UserID        int64
	Note          string
	TaxPercent    decimal.Decimal
	Total         decimal.Decimal
	Description   string
	System        string
	Finish        string
	Surface       decimal.Decimal
	Price         decimal.Decimal
	Advance       decimal.Decimal
	Balance       decimal.Decimal
	WarrantyYears int
}

// NormalizedQuote is a validated aggregate frozen for persistence. Exactly
// one of Materials or Labor is set.
type NormalizedQuote struct {
	Kind      Kind
	Totals    Totals
	Materials *CreateQuoteParams
	Labor     *CreateLaborQuoteParams
}

// SubmitResult reports the persisted id and, when rendering succeeded, the
// document location. QuoteID is set even when the document step failed.
type SubmitResult struct {
	QuoteID     int64
	DocumentURL string
}

// Builder is the single submission path for both quote shapes.
type Builder struct {
	gateway   Gateway
	assembler *Assembler
	renderer  Renderer
}

func NewBuilder(gw Gateway, clients ClientDirectory, r Renderer) *Builder {
	return &Builder{
		gateway:   gw,
		assembler: NewAssembler(gw, clients),
		renderer:  r,
	}
}

// BuildForSubmission validates the aggregate and freezes it into the gateway
// shape. Validation failures surface here, before any gateway call.
func BuildForSubmission(agg *Aggregate) (NormalizedQuote, error) {
	if agg.ClientID <= 0 {
		return NormalizedQuote{}, ErrClientRequired
	}
	if agg.TaxPercent.IsNegative() {
		return NormalizedQuote{}, validationf("tax percent cannot be negative, got %s", agg.TaxPercent)
	}

	switch agg.Kind {
	case KindMaterials:
		if agg.Cart == nil || agg.Cart.Len() == 0 {
			return NormalizedQuote{}, ErrEmptyCart
		}
		totals, err := agg.Cart.Totals(agg.TaxPercent)
		if err != nil {
			return NormalizedQuote{}, err
		}
		details := make([]CreateDetailParams, 0, agg.Cart.Len())
		for _, li := range agg.Cart.Items() {
			p, err := li.DiscountedUnitPrice()
			if err != nil {
				return NormalizedQuote{}, err
			}
			details = append(details, CreateDetailParams{
				ProductID:   li.ProductID,
				ProductName: li.ProductName,
				Quantity:    li.Quantity,
				UnitPrice:   p,
				ProductType: li.ProductType,
				Unit:        li.Unit,
			})
		}
		return NormalizedQuote{
			Kind:   KindMaterials,
			Totals: totals,
			Materials: &CreateQuoteParams{
				ClientID:   agg.ClientID,
				UserID:     agg.UserID,
				Note:       agg.Note,
				TaxPercent: agg.TaxPercent,
				Total:      totals.Total,
				Details:    details,
			},
		}, nil

	case KindLabor:
		if agg.Labor == nil || strings.TrimSpace(agg.Labor.System) == "" {
			return NormalizedQuote{}, ErrSystemRequired
		}
		l := agg.Labor
		if l.Surface.IsNegative() || l.UnitPrice.IsNegative() || l.AdvancePercent.IsNegative() || l.BalancePercent.IsNegative() {
			return NormalizedQuote{}, validationf("labor estimate fields cannot be negative")
		}
		totals := CalculateTotals([]TotalLine{{Quantity: 1, UnitPrice: l.Estimation()}}, agg.TaxPercent)
		return NormalizedQuote{
			Kind:   KindLabor,
			Totals: totals,
			Labor: &CreateLaborQuoteParams{
				ClientID:      agg.ClientID,
				UserID:        agg.UserID,
				Note:          agg.Note,
				TaxPercent:    agg.TaxPercent,
				Total:         totals.Total,
				Description:   l.Description,
				System:        l.System,
				Finish:        l.Finish,
				Surface:       l.Surface,
				Price:         l.UnitPrice,
				Advance:       l.AdvancePercent,
				Balance:       l.BalancePercent,
				WarrantyYears: l.WarrantyYears,
			},
		}, nil
	}
	return NormalizedQuote{}, validationf("unknown quote kind %q", agg.Kind)
}

// Submit runs the full pipeline: validate, persist, assemble, render. The
// steps are sequential; the document is only generated after the quote row
// exists. Submit is not idempotent; a second call persists a second quote.
func (b *Builder) Submit(ctx context.Context, agg *Aggregate) (SubmitResult, error) {
	n, err := BuildForSubmission(agg)
	if err != nil {
		return SubmitResult{}, err
	}

	var quoteID int64
	switch n.Kind {
	case KindMaterials:
		quoteID, err = b.gateway.CreateQuote(ctx, *n.Materials)
		if err != nil {
			return SubmitResult{}, &GatewayError{Op: "create quote", Err: err}
		}
	case KindLabor:
		quoteID, err = b.gateway.CreateLaborQuote(ctx, *n.Labor)
		if err != nil {
			return SubmitResult{}, &GatewayError{Op: "create labor quote", Err: err}
		}
	}

	payload, err := b.assembler.AssembleSubmitted(ctx, quoteID, n)
	if err != nil {
		return SubmitResult{QuoteID: quoteID}, err
	}
	url, err := b.renderer.Render(ctx, payload)
	if err != nil {
		return SubmitResult{QuoteID: quoteID}, &AssemblyError{Step: "render", Err: err}
	}
	return SubmitResult{QuoteID: quoteID, DocumentURL: url}, nil
}

// RegenerateDocument rebuilds the PDF for an existing quote from persisted
// rows: Pending -> DetailsLoaded -> Assembled -> Rendered. Any failed step
// halts the pipeline with no partial output.
func (b *Builder) RegenerateDocument(ctx context.Context, quoteID int64) (string, error) {
	payload, err := b.assembler.AssembleExisting(ctx, quoteID)
	if err != nil {
		return "", err
	}
	url, err := b.renderer.Render(ctx, payload)
	if err != nil {
		return "", &AssemblyError{Step: "render", Err: err}
	}
	return url, nil
}
