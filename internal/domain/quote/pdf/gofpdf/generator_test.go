package gofpdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obramat/go_backend/internal/domain/quote"
)

func TestGenerateMaterials(t *testing.T) {
	p := quote.PdfPayload{
		QuoteType: quote.KindMaterials,
		QuoteID:   41,
		Client:    quote.ClientInfo{Name: "Constructora Ruiz", Phone: "555 123"},
		Items: []quote.PayloadItem{
			{Name: "Cemento gris 50kg", Quantity: 2, UnitPrice: decimal.NewFromInt(90), Subtotal: decimal.NewFromInt(180), Unit: "saco"},
		},
		Note:     "entrega en obra",
		Subtotal: decimal.NewFromInt(230),
		Tax:      decimal.RequireFromString("36.80"),
		Total:    decimal.RequireFromString("266.80"),
		Date:     time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}

	data, err := New().Generate(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}

func TestGenerateLabor(t *testing.T) {
	p := quote.PdfPayload{
		QuoteType: quote.KindLabor,
		QuoteID:   42,
		Client:    quote.ClientInfo{Name: "Constructora Ruiz"},
		Labor: &quote.LaborData{
			System:        "impermeabilización",
			Surface:       decimal.NewFromInt(150),
			UnitPrice:     decimal.RequireFromString("45.5"),
			Estimation:    decimal.NewFromInt(6825),
			WarrantyYears: 3,
		},
		Subtotal: decimal.NewFromInt(6825),
		Tax:      decimal.NewFromInt(1092),
		Total:    decimal.NewFromInt(7917),
		Date:     time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
	}

	data, err := New().Generate(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
