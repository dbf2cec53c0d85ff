package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"obramat/go_backend/internal/domain/quote"
)

type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ClientRepo is the client registry. It also serves as the quote pipeline's
// ClientDirectory.
type ClientRepo struct {
	db *DB
}

func NewClientRepo(db *DB) *ClientRepo { return &ClientRepo{db: db} }

const clientCols = `id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, '')`

func (r *ClientRepo) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+clientCols+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Get(ctx context.Context, id int64) (Client, error) {
	var c Client
	err := r.db.Pool.QueryRow(ctx, `SELECT `+clientCols+` FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrNotFound
	}
	return c, err
}

// GetClient implements quote.ClientDirectory.
func (r *ClientRepo) GetClient(ctx context.Context, id int64) (quote.ClientInfo, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return quote.ClientInfo{}, err
	}
	return quote.ClientInfo{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
	}, nil
}

func (r *ClientRepo) Create(ctx context.Context, c Client) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO clients (name, address, phone, email) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.Name, c.Address, c.Phone, c.Email,
	).Scan(&id)
	return id, err
}

func (r *ClientRepo) Update(ctx context.Context, c Client) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE clients SET name = $2, address = $3, phone = $4, email = $5 WHERE id = $1`,
		c.ID, c.Name, c.Address, c.Phone, c.Email,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
