package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

const orderColumns = `id,user_id,status,total_cents,currency,items_json,payment_method,payment_status,address_id,created_at`

func (r *MySQLOrderRepo) Create(ctx context.Context, o *usecase.OrderRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id,user_id,status,total_cents,currency,items_json,payment_method,payment_status,address_id,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,NOW())
`, o.ID, o.UserID, o.Status, o.TotalCents, o.Currency, o.ItemsJSON, o.PaymentMethod, o.PaymentStatus, nullable(o.AddressID), o.CreatedAt)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE id=?`, id)
	rec, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string) ([]usecase.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *MySQLOrderRepo) ListAll(ctx context.Context, status string) ([]usecase.OrderRecord, error) {
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if status != "" {
		q += ` WHERE status=?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ? AND status = ?`,
		toStatus, id, fromStatus,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	// rows == 0 → nothing matched (either not found or status mismatch)
	return rows > 0, nil
}

func (r *MySQLOrderRepo) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET payment_status = ?, updated_at = NOW()
        WHERE id = ?`,
		paymentStatus, id,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*usecase.OrderRecord, error) {
	var rec usecase.OrderRecord
	var addressID sql.NullString
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Status, &rec.TotalCents, &rec.Currency,
		&rec.ItemsJSON, &rec.PaymentMethod, &rec.PaymentStatus, &addressID, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.AddressID = addressID.String
	return &rec, nil
}

func collectOrders(rows *sql.Rows) ([]usecase.OrderRecord, error) {
	var out []usecase.OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
