package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"obramat/go_backend/internal/domain/stock"
)

// StockRepo records stock movements and keeps the product stock column in
// step, inside one transaction.
type StockRepo struct {
	db *DB
}

func NewStockRepo(db *DB) *StockRepo { return &StockRepo{db: db} }

// RegisterMovement applies a movement and returns the resulting stock level.
// The product row is locked for the duration so concurrent movements cannot
// take stock below zero.
func (r *StockRepo) RegisterMovement(ctx context.Context, m stock.Movement) (int, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var current int
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, m.ProductID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	next, err := stock.Apply(current, m)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, m.ProductID, next); err != nil {
		return 0, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO stock_movements (product_id, direction, quantity, created_at) VALUES ($1, $2, $3, $4)`,
		m.ProductID, string(m.Direction), m.Quantity, time.Now(),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return next, nil
}
