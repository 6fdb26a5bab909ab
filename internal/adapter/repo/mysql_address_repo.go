package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type MySQLAddressRepo struct{ db *sql.DB }

func NewMySQLAddressRepo(db *sql.DB) *MySQLAddressRepo { return &MySQLAddressRepo{db: db} }

const addressColumns = `id,user_id,street,city,state,zip,is_default,created_at`

func (r *MySQLAddressRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+addressColumns+` FROM addresses WHERE user_id=? ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *MySQLAddressRepo) GetByID(ctx context.Context, id string) (domain.Address, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+addressColumns+` FROM addresses WHERE id=?`, id)
	a, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, ErrNotFound
	}
	return a, err
}

func (r *MySQLAddressRepo) Create(ctx context.Context, a *domain.Address) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO addresses (id,user_id,street,city,state,zip,is_default,created_at)
VALUES (?,?,?,?,?,?,?,?)
`, a.ID, a.UserID, a.Street, a.City, nullable(a.State), a.Zip, a.IsDefault, a.CreatedAt)
	return err
}

func (r *MySQLAddressRepo) Update(ctx context.Context, a *domain.Address) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE addresses
        SET street=?, city=?, state=?, zip=?, is_default=?
        WHERE id=?`,
		a.Street, a.City, nullable(a.State), a.Zip, a.IsDefault, a.ID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQLAddressRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id=?`, id)
	return err
}

// ClearDefault keeps the at-most-one-default invariant: callers clear
// first, then create/update the new default.
func (r *MySQLAddressRepo) ClearDefault(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE addresses SET is_default = 0 WHERE user_id = ?`, userID)
	return err
}

func scanAddress(row rowScanner) (domain.Address, error) {
	var a domain.Address
	var state sql.NullString
	if err := row.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &state, &a.Zip, &a.IsDefault, &a.CreatedAt); err != nil {
		return domain.Address{}, err
	}
	a.State = state.String
	return a, nil
}

var _ usecase.AddressRepo = (*MySQLAddressRepo)(nil)
