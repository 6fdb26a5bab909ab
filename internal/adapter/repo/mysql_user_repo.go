package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

const userColumns = `id,name,email,phone,password_hash,role,is_verified`

func (r *MySQLUserRepo) Create(ctx context.Context, u *usecase.UserRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id,name,email,phone,password_hash,role,is_verified,created_at)
VALUES (?,?,?,?,?,?,?,NOW())
`, u.ID, u.Name, u.Email, nullable(u.Phone), u.PasswordHash, u.Role, u.IsVerified)
	return err
}

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*usecase.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+` FROM users WHERE email=?`, email)
	return scanUser(row)
}

func (r *MySQLUserRepo) GetByID(ctx context.Context, id string) (*usecase.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row rowScanner) (*usecase.UserRecord, error) {
	var u usecase.UserRecord
	var phone sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.Role, &u.IsVerified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Phone = phone.String
	return &u, nil
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)
