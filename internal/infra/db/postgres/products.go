package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

type Product struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ProductType string          `json:"product_type"`
	Color       string          `json:"color"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type ProductRepo struct {
	db *DB
}

func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, code, name, COALESCE(description, ''), COALESCE(product_type, ''), COALESCE(color, ''), COALESCE(unit, ''), price, stock`

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := scanProduct(
		r.db.Pool.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id).Scan, &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Create(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO products (code, name, description, product_type, color, unit, price, stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.Code, p.Name, p.Description, p.ProductType, p.Color, p.Unit, p.Price, p.Stock,
	).Scan(&id)
	return id, err
}

func (r *ProductRepo) Update(ctx context.Context, p Product) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE products
		 SET code = $2, name = $3, description = $4, product_type = $5, color = $6, unit = $7, price = $8
		 WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Description, p.ProductType, p.Color, p.Unit, p.Price,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(scan func(dest ...any) error, p *Product) error {
	return scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.ProductType, &p.Color, &p.Unit, &p.Price, &p.Stock)
}
