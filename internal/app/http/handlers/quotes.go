package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"obramat/go_backend/internal/domain/quote"
)

type quoteItemRequest struct {
	ProductID       int64            `json:"product_id"`
	Quantity        int              `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

type createQuoteRequest struct {
	ClientID   int64              `json:"client_id"`
	UserID     int64              `json:"user_id"`
	Note       string             `json:"note"`
	TaxPercent *decimal.Decimal   `json:"tax_percent,omitempty"`
	Items      []quoteItemRequest `json:"items"`
}

type createLaborQuoteRequest struct {
	ClientID       int64            `json:"client_id"`
	UserID         int64            `json:"user_id"`
	Note           string           `json:"note"`
	TaxPercent     *decimal.Decimal `json:"tax_percent,omitempty"`
	Description    string           `json:"description"`
	System         string           `json:"system"`
	Finish         string           `json:"finish"`
	Surface        decimal.Decimal  `json:"surface"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	AdvancePercent decimal.Decimal  `json:"advance_percent"`
	BalancePercent decimal.Decimal  `json:"balance_percent"`
	WarrantyYears  int              `json:"warranty_years"`
}

type submitResponse struct {
	QuoteID     int64  `json:"quote_id"`
	DocumentURL string `json:"document_url"`
}

// CreateQuote builds a materials cart from the request, prices it and runs
// the submission pipeline. Catalog name and price are snapshotted per line;
// unit_price in the request overrides the catalog price for that line.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	agg := quote.NewMaterialsQuote(req.ClientID, req.UserID, h.taxPercent(req.TaxPercent))
	agg.Note = req.Note
	for _, it := range req.Items {
		p, err := h.Products.Get(r.Context(), it.ProductID)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		snap := quote.ProductSnapshot{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Type:  p.ProductType,
			Color: p.Color,
			Unit:  p.Unit,
		}
		if it.UnitPrice != nil {
			snap.Price = *it.UnitPrice
		}
		li, err := agg.Cart.AddItem(snap, it.Quantity)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		if !it.DiscountPercent.IsZero() {
			if err := agg.Cart.SetDiscount(li.ID, it.DiscountPercent); err != nil {
				h.writeDomainError(w, err)
				return
			}
		}
	}

	h.submit(w, r, agg)
}

func (h *Handlers) CreateLaborQuote(w http.ResponseWriter, r *http.Request) {
	var req createLaborQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	agg := quote.NewLaborQuote(req.ClientID, req.UserID, h.taxPercent(req.TaxPercent))
	agg.Note = req.Note
	agg.Labor.Description = req.Description
	agg.Labor.System = req.System
	agg.Labor.Finish = req.Finish
	agg.Labor.WarrantyYears = req.WarrantyYears
	for _, set := range []error{
		agg.Labor.SetSurface(req.Surface),
		agg.Labor.SetUnitPrice(req.UnitPrice),
		agg.Labor.SetAdvancePercent(req.AdvancePercent),
		agg.Labor.SetBalancePercent(req.BalancePercent),
	} {
		if set != nil {
			h.writeDomainError(w, set)
			return
		}
	}

	h.submit(w, r, agg)
}

// submit runs the pipeline and translates its three failure modes: validation
// (nothing saved), gateway (nothing saved, retry with the same cart), and
// assembly (quote saved, document failed; the id is reported so the caller
// can regenerate).
func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, agg *quote.Aggregate) {
	res, err := h.Builder.Submit(r.Context(), agg)
	if err != nil {
		var aerr *quote.AssemblyError
		if errors.As(err, &aerr) && res.QuoteID != 0 {
			h.Log.Error().Err(err).Int64("quote_id", res.QuoteID).Msg("document generation failed")
			h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":    "quote saved but document generation failed",
				"quote_id": res.QuoteID,
			})
			return
		}
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, submitResponse{QuoteID: res.QuoteID, DocumentURL: res.DocumentURL})
}

type quoteResponse struct {
	ID         int64             `json:"id"`
	ClientID   int64             `json:"client_id"`
	Kind       quote.Kind        `json:"kind"`
	TaxPercent decimal.Decimal   `json:"tax_percent"`
	Note       string            `json:"note"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Tax        decimal.Decimal   `json:"tax"`
	Total      decimal.Decimal   `json:"total"`
	Items      []quote.DetailRow `json:"items,omitempty"`
	Labor      *quote.LaborRow   `json:"labor,omitempty"`
}

// GetQuote returns a persisted quote with totals re-derived from its rows.
func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	rec, err := h.Quotes.GetQuote(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "quote not found")
		return
	}

	resp := quoteResponse{
		ID:         rec.ID,
		ClientID:   rec.ClientID,
		Kind:       rec.Kind,
		TaxPercent: rec.TaxPercent,
		Note:       rec.Note,
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt,
	}

	switch rec.Kind {
	case quote.KindMaterials:
		details, err := h.Quotes.GetQuoteDetails(r.Context(), id)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		lines := make([]quote.TotalLine, 0, len(details))
		for _, d := range details {
			lines = append(lines, quote.TotalLine{Quantity: d.Quantity, UnitPrice: d.UnitPrice})
		}
		totals := quote.CalculateTotals(lines, rec.TaxPercent)
		resp.Items = details
		resp.Subtotal, resp.Tax, resp.Total = totals.Subtotal, totals.Tax, totals.Total
	case quote.KindLabor:
		labor, err := h.Quotes.GetLaborQuote(r.Context(), id)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		estimation := labor.Surface.Mul(labor.Price)
		totals := quote.CalculateTotals([]quote.TotalLine{{Quantity: 1, UnitPrice: estimation}}, rec.TaxPercent)
		resp.Labor = &labor
		resp.Subtotal, resp.Tax, resp.Total = totals.Subtotal, totals.Tax, totals.Total
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// QuotePDF regenerates the document for an existing quote and returns its
// location.
func (h *Handlers) QuotePDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	url, err := h.Builder.RegenerateDocument(r.Context(), id)
	if err != nil {
		var aerr *quote.AssemblyError
		if errors.As(err, &aerr) {
			h.Log.Error().Err(err).Int64("quote_id", id).Msg("document regeneration failed")
			h.writeError(w, http.StatusInternalServerError, aerr.Error())
			return
		}
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handlers) taxPercent(override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return h.Cfg.DefaultTaxPercent
}
