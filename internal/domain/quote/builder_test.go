package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	createQuoteCalls      int
	createLaborQuoteCalls int
	lastQuote             CreateQuoteParams
	lastLabor             CreateLaborQuoteParams
	createErr             error

	record    Record
	recordErr error
	details   []DetailRow
	labor     LaborRow
}

func (f *fakeGateway) CreateQuote(ctx context.Context, p CreateQuoteParams) (int64, error) {
	f.createQuoteCalls++
	f.lastQuote = p
	if f.createErr != nil {
		return 0, f.createErr
	}
	return 41, nil
}

func (f *fakeGateway) CreateLaborQuote(ctx context.Context, p CreateLaborQuoteParams) (int64, error) {
	f.createLaborQuoteCalls++
	f.lastLabor = p
	if f.createErr != nil {
		return 0, f.createErr
	}
	return 42, nil
}

func (f *fakeGateway) GetQuote(ctx context.Context, id int64) (Record, error) {
	if f.recordErr != nil {
		return Record{}, f.recordErr
	}
	return f.record, nil
}

func (f *fakeGateway) GetQuoteDetails(ctx context.Context, id int64) ([]DetailRow, error) {
	return f.details, nil
}

func (f *fakeGateway) GetLaborQuote(ctx context.Context, id int64) (LaborRow, error) {
	return f.labor, nil
}

type fakeDirectory struct {
	client ClientInfo
	err    error
}

func (f *fakeDirectory) GetClient(ctx context.Context, id int64) (ClientInfo, error) {
	if f.err != nil {
		return ClientInfo{}, f.err
	}
	return f.client, nil
}

type fakeRenderer struct {
	calls int
	last  PdfPayload
	err   error
	url   string
}

func (f *fakeRenderer) Render(ctx context.Context, p PdfPayload) (string, error) {
	f.calls++
	f.last = p
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func materialsAggregate(t *testing.T) *Aggregate {
	t.Helper()
	agg := NewMaterialsQuote(3, 1, decimal.NewFromInt(16))
	li, err := agg.Cart.AddItem(cementProduct(), 2)
	require.NoError(t, err)
	require.NoError(t, agg.Cart.SetDiscount(li.ID, decimal.NewFromInt(10)))
	_, err = agg.Cart.AddItem(ProductSnapshot{ID: 8, Name: "Varilla 3/8", Price: decimal.NewFromInt(50)}, 1)
	require.NoError(t, err)
	agg.Note = "entrega en obra"
	return agg
}

func TestSubmitMaterials(t *testing.T) {
	gw := &fakeGateway{}
	dir := &fakeDirectory{client: ClientInfo{ID: 3, Name: "Constructora Ruiz", Phone: "555 123"}}
	rend := &fakeRenderer{url: "/documents/cotizacion-41.pdf"}
	b := NewBuilder(gw, dir, rend)

	res, err := b.Submit(context.Background(), materialsAggregate(t))
	require.NoError(t, err)
	assert.Equal(t, int64(41), res.QuoteID)
	assert.Equal(t, "/documents/cotizacion-41.pdf", res.DocumentURL)

	require.Equal(t, 1, gw.createQuoteCalls)
	require.Len(t, gw.lastQuote.Details, 2)
	// The discounted price is what gets persisted, not the list price.
	assert.Equal(t, "90.00", gw.lastQuote.Details[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "266.80", gw.lastQuote.Total.StringFixed(2))

	require.Equal(t, 1, rend.calls)
	assert.Equal(t, KindMaterials, rend.last.QuoteType)
	assert.Equal(t, int64(41), rend.last.QuoteID)
	assert.Equal(t, "Constructora Ruiz", rend.last.Client.Name)
	require.Len(t, rend.last.Items, 2)
	assert.Equal(t, "180.00", rend.last.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "36.80", rend.last.Tax.StringFixed(2))
	// The catalog snapshot travels all the way to the document, so the first
	// render matches a later regeneration from the joined product row.
	assert.Equal(t, "cemento", rend.last.Items[0].ProductType)
	assert.Equal(t, "saco", rend.last.Items[0].Unit)
	assert.Equal(t, "saco", gw.lastQuote.Details[0].Unit)
}

func TestSubmitRoundsDiscountedPrice(t *testing.T) {
	gw := &fakeGateway{}
	rend := &fakeRenderer{url: "/documents/cotizacion-41.pdf"}
	b := NewBuilder(gw, &fakeDirectory{client: ClientInfo{ID: 3, Name: "Constructora Ruiz"}}, rend)

	// 99.99 at 33.33% is 66.663333; only the cent-rounded 66.66 may reach
	// persistence and the document.
	agg := NewMaterialsQuote(3, 1, decimal.NewFromInt(16))
	li, err := agg.Cart.AddItem(ProductSnapshot{ID: 9, Name: "Impermeabilizante 19L", Price: decimal.RequireFromString("99.99")}, 3)
	require.NoError(t, err)
	require.NoError(t, agg.Cart.SetDiscount(li.ID, decimal.RequireFromString("33.33")))

	_, err = b.Submit(context.Background(), agg)
	require.NoError(t, err)

	require.Len(t, gw.lastQuote.Details, 1)
	stored := gw.lastQuote.Details[0].UnitPrice
	assert.Equal(t, "66.66", stored.StringFixed(2))
	assert.GreaterOrEqual(t, stored.Exponent(), int32(-2), "stored price carries more than 2 decimals: %s", stored)

	require.Len(t, rend.last.Items, 1)
	line := rend.last.Items[0]
	// The printed line must be internally consistent: unit * qty == subtotal.
	product := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	assert.True(t, product.Equal(line.Subtotal), "unit %s x %d = %s, subtotal says %s", line.UnitPrice, line.Quantity, product, line.Subtotal)
	assert.Equal(t, "199.98", line.Subtotal.StringFixed(2))
}

func TestSubmitLabor(t *testing.T) {
	gw := &fakeGateway{}
	dir := &fakeDirectory{client: ClientInfo{ID: 3, Name: "Constructora Ruiz"}}
	rend := &fakeRenderer{url: "/documents/cotizacion-42.pdf"}
	b := NewBuilder(gw, dir, rend)

	agg := NewLaborQuote(3, 1, decimal.NewFromInt(16))
	agg.Labor.System = "losa aligerada"
	agg.Labor.Finish = "pulido"
	require.NoError(t, agg.Labor.SetSurface(decimal.NewFromInt(150)))
	require.NoError(t, agg.Labor.SetUnitPrice(decimal.RequireFromString("45.5")))
	require.NoError(t, agg.Labor.SetAdvancePercent(decimal.NewFromInt(50)))
	require.NoError(t, agg.Labor.SetBalancePercent(decimal.NewFromInt(50)))
	agg.Labor.WarrantyYears = 2

	res, err := b.Submit(context.Background(), agg)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.QuoteID)

	require.Equal(t, 1, gw.createLaborQuoteCalls)
	assert.Equal(t, "6825.00", gw.lastLabor.Surface.Mul(gw.lastLabor.Price).StringFixed(2))

	require.NotNil(t, rend.last.Labor)
	assert.Equal(t, "6825.00", rend.last.Labor.Estimation.StringFixed(2))
	assert.Equal(t, "6825.00", rend.last.Subtotal.StringFixed(2))
	assert.Equal(t, "1092.00", rend.last.Tax.StringFixed(2))
	assert.Equal(t, "7917.00", rend.last.Total.StringFixed(2))
}

func TestSubmitValidationBeforeGateway(t *testing.T) {
	gw := &fakeGateway{}
	dir := &fakeDirectory{}
	rend := &fakeRenderer{}
	b := NewBuilder(gw, dir, rend)

	t.Run("empty cart", func(t *testing.T) {
		agg := NewMaterialsQuote(3, 1, decimal.NewFromInt(16))
		_, err := b.Submit(context.Background(), agg)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("missing client", func(t *testing.T) {
		agg := materialsAggregate(t)
		agg.ClientID = 0
		_, err := b.Submit(context.Background(), agg)
		assert.ErrorIs(t, err, ErrClientRequired)
	})

	t.Run("labor without system", func(t *testing.T) {
		agg := NewLaborQuote(3, 1, decimal.NewFromInt(16))
		agg.Labor.System = "   "
		_, err := b.Submit(context.Background(), agg)
		assert.ErrorIs(t, err, ErrSystemRequired)
	})

	// No validation failure may reach the gateway or the renderer.
	assert.Equal(t, 0, gw.createQuoteCalls)
	assert.Equal(t, 0, gw.createLaborQuoteCalls)
	assert.Equal(t, 0, rend.calls)
}

func TestSubmitGatewayFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("connection refused")}
	rend := &fakeRenderer{}
	b := NewBuilder(gw, &fakeDirectory{}, rend)

	agg := materialsAggregate(t)
	_, err := b.Submit(context.Background(), agg)

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 0, rend.calls, "render must not run when persistence failed")
	// The cart survives for retry.
	assert.Equal(t, 2, agg.Cart.Len())
}

func TestSubmitRenderFailureAfterPersist(t *testing.T) {
	gw := &fakeGateway{}
	rend := &fakeRenderer{err: errors.New("disk full")}
	b := NewBuilder(gw, &fakeDirectory{}, rend)

	res, err := b.Submit(context.Background(), materialsAggregate(t))

	var aerr *AssemblyError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, int64(41), res.QuoteID, "caller must learn the quote was saved")
	assert.Empty(t, res.DocumentURL)
}

func TestRegenerateDocumentRecomputesFromRawRows(t *testing.T) {
	gw := &fakeGateway{
		record: Record{
			ID:         41,
			ClientID:   3,
			Kind:       KindMaterials,
			TaxPercent: decimal.NewFromInt(16),
			Note:       "entrega en obra",
			CreatedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		details: []DetailRow{
			// Stored LineSubtotal is wrong on purpose; the assembler must
			// recompute from quantity and unit price.
			{ProductID: 7, ProductName: "Cemento gris 50kg", Quantity: 2, UnitPrice: decimal.NewFromInt(90), LineSubtotal: decimal.NewFromInt(999)},
			{ProductID: 8, ProductName: "Varilla 3/8", Quantity: 1, UnitPrice: decimal.NewFromInt(50), LineSubtotal: decimal.NewFromInt(999)},
		},
	}
	dir := &fakeDirectory{client: ClientInfo{ID: 3, Name: "Constructora Ruiz"}}
	rend := &fakeRenderer{url: "/documents/cotizacion-41.pdf"}
	b := NewBuilder(gw, dir, rend)

	url, err := b.RegenerateDocument(context.Background(), 41)
	require.NoError(t, err)
	assert.Equal(t, "/documents/cotizacion-41.pdf", url)

	require.Len(t, rend.last.Items, 2)
	assert.Equal(t, "180.00", rend.last.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "230.00", rend.last.Subtotal.StringFixed(2))
	assert.Equal(t, "266.80", rend.last.Total.StringFixed(2))
	assert.Equal(t, "Constructora Ruiz", rend.last.Client.Name)
}

func TestRegenerateLaborDocument(t *testing.T) {
	gw := &fakeGateway{
		record: Record{
			ID:         42,
			ClientID:   3,
			Kind:       KindLabor,
			TaxPercent: decimal.NewFromInt(16),
			CreatedAt:  time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
		},
		labor: LaborRow{
			System:        "impermeabilización",
			Surface:       decimal.NewFromInt(150),
			Price:         decimal.RequireFromString("45.5"),
			Advance:       decimal.NewFromInt(60),
			Balance:       decimal.NewFromInt(40),
			WarrantyYears: 3,
		},
	}
	rend := &fakeRenderer{url: "/documents/cotizacion-42.pdf"}
	b := NewBuilder(gw, &fakeDirectory{client: ClientInfo{ID: 3, Name: "Constructora Ruiz"}}, rend)

	_, err := b.RegenerateDocument(context.Background(), 42)
	require.NoError(t, err)

	require.NotNil(t, rend.last.Labor)
	assert.Equal(t, "6825.00", rend.last.Labor.Estimation.StringFixed(2))
	assert.Equal(t, "7917.00", rend.last.Total.StringFixed(2))
	assert.Equal(t, "60", rend.last.Labor.AdvancePercent.String())
	assert.Equal(t, "40", rend.last.Labor.BalancePercent.String())
}

func TestRegenerateDocumentFailures(t *testing.T) {
	t.Run("missing detail rows", func(t *testing.T) {
		gw := &fakeGateway{record: Record{ID: 41, ClientID: 3, Kind: KindMaterials, TaxPercent: decimal.NewFromInt(16)}}
		b := NewBuilder(gw, &fakeDirectory{}, &fakeRenderer{})
		_, err := b.RegenerateDocument(context.Background(), 41)
		var aerr *AssemblyError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, "load details", aerr.Step)
	})

	t.Run("unresolved client halts before render", func(t *testing.T) {
		gw := &fakeGateway{
			record:  Record{ID: 41, ClientID: 3, Kind: KindMaterials, TaxPercent: decimal.NewFromInt(16)},
			details: []DetailRow{{ProductID: 7, Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
		}
		rend := &fakeRenderer{}
		b := NewBuilder(gw, &fakeDirectory{err: errors.New("no rows")}, rend)
		_, err := b.RegenerateDocument(context.Background(), 41)
		var aerr *AssemblyError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, "resolve client", aerr.Step)
		assert.Equal(t, 0, rend.calls)
	})
}

func TestBuildForSubmissionIsReadOnly(t *testing.T) {
	agg := materialsAggregate(t)
	before := agg.Cart.Items()

	_, err := BuildForSubmission(agg)
	require.NoError(t, err)

	after := agg.Cart.Items()
	require.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i], after[i])
	}
}
