package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type MySQLMenuRepo struct {
	db       *sql.DB
	currency string
}

func NewMySQLMenuRepo(db *sql.DB, currency string) *MySQLMenuRepo {
	return &MySQLMenuRepo{db: db, currency: currency}
}

const menuColumns = `id,name,description,price_cents,category,stock_quantity,low_stock_threshold,unit,is_available,created_at,updated_at`

func (r *MySQLMenuRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+menuColumns+` FROM menu_items ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *MySQLMenuRepo) GetByID(ctx context.Context, id string) (domain.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+menuColumns+` FROM menu_items WHERE id=?`, id)
	item, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, ErrNotFound
	}
	return item, err
}

// ReserveStock is the placement-time stock check: the guard in the
// WHERE clause makes check-and-decrement one atomic statement.
func (r *MySQLMenuRepo) ReserveStock(ctx context.Context, id string, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE menu_items
        SET stock_quantity = stock_quantity - ?, updated_at = NOW()
        WHERE id = ? AND is_available = 1 AND stock_quantity >= ?`,
		qty, id, qty,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLMenuRepo) ReleaseStock(ctx context.Context, id string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE menu_items
        SET stock_quantity = stock_quantity + ?, updated_at = NOW()
        WHERE id = ?`,
		qty, id,
	)
	return err
}

func (r *MySQLMenuRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE menu_items
        SET name=?, description=?, price_cents=?, category=?, stock_quantity=?,
            low_stock_threshold=?, is_available=?, updated_at=NOW()
        WHERE id=?`,
		item.Name, item.Description, item.Price.Cents, item.Category,
		item.StockQuantity, item.LowStockThreshold, item.IsAvailable, item.ID,
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

func (r *MySQLMenuRepo) scan(row rowScanner) (domain.MenuItem, error) {
	var item domain.MenuItem
	var desc, unit sql.NullString
	var cents int64
	if err := row.Scan(&item.ID, &item.Name, &desc, &cents, &item.Category,
		&item.StockQuantity, &item.LowStockThreshold, &unit, &item.IsAvailable,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return domain.MenuItem{}, err
	}
	item.Description = desc.String
	item.Unit = unit.String
	item.Price = domain.NewMoney(cents, r.currency)
	return item, nil
}

var _ usecase.MenuRepo = (*MySQLMenuRepo)(nil)
