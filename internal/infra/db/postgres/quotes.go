package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"obramat/go_backend/internal/domain/money"
	"obramat/go_backend/internal/domain/quote"
)

// QuoteRepo implements quote.Gateway on Postgres.
type QuoteRepo struct {
	db *DB
}

func NewQuoteRepo(db *DB) *QuoteRepo { return &QuoteRepo{db: db} }

func (r *QuoteRepo) CreateQuote(ctx context.Context, p quote.CreateQuoteParams) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO quotes (client_id, user_id, kind, tax_percent, note, total, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.ClientID, p.UserID, string(quote.KindMaterials), p.TaxPercent, p.Note, p.Total,
		quote.StatusIssued, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, d := range p.Details {
		lineSubtotal := money.Round2(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))))
		_, err = tx.Exec(ctx,
			`INSERT INTO quote_details (quote_id, product_id, product_name, quantity, unit_price, line_subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, d.ProductID, d.ProductName, d.Quantity, d.UnitPrice, lineSubtotal,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *QuoteRepo) CreateLaborQuote(ctx context.Context, p quote.CreateLaborQuoteParams) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO quotes (client_id, user_id, kind, tax_percent, note, total, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.ClientID, p.UserID, string(quote.KindLabor), p.TaxPercent, p.Note, p.Total,
		quote.StatusIssued, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO labor_quotes (quote_id, description, system, finish, surface, price, advance, balance, warranty_years)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, p.Description, p.System, p.Finish, p.Surface, p.Price, p.Advance, p.Balance, p.WarrantyYears,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *QuoteRepo) GetQuote(ctx context.Context, quoteID int64) (quote.Record, error) {
	var rec quote.Record
	var kind string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, client_id, user_id, kind, tax_percent, COALESCE(note, ''), total, status, created_at
		 FROM quotes WHERE id = $1`,
		quoteID,
	).Scan(&rec.ID, &rec.ClientID, &rec.UserID, &kind, &rec.TaxPercent, &rec.Note, &rec.Total, &rec.Status, &rec.CreatedAt)
	if err != nil {
		return quote.Record{}, err
	}
	rec.Kind = quote.Kind(kind)
	return rec, nil
}

func (r *QuoteRepo) GetQuoteDetails(ctx context.Context, quoteID int64) ([]quote.DetailRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT d.product_id, d.product_name, d.quantity, d.unit_price, d.line_subtotal,
		        COALESCE(p.product_type, ''), COALESCE(p.unit, '')
		 FROM quote_details d
		 LEFT JOIN products p ON p.id = d.product_id
		 WHERE d.quote_id = $1
		 ORDER BY d.id`,
		quoteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quote.DetailRow
	for rows.Next() {
		var d quote.DetailRow
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice, &d.LineSubtotal, &d.ProductType, &d.Unit); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *QuoteRepo) GetLaborQuote(ctx context.Context, quoteID int64) (quote.LaborRow, error) {
	var row quote.LaborRow
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(description, ''), system, COALESCE(finish, ''), surface, price, advance, balance, warranty_years
		 FROM labor_quotes WHERE quote_id = $1`,
		quoteID,
	).Scan(&row.Description, &row.System, &row.Finish, &row.Surface, &row.Price, &row.Advance, &row.Balance, &row.WarrantyYears)
	if err != nil {
		return quote.LaborRow{}, err
	}
	return row, nil
}
