package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerCols = `id::text, phone_number, nickname, birthday, current_stamps, total_stamps, coupons, visit_count, version, first_visit, last_visit, deleted_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (phone_number, nickname, birthday)
VALUES ($1, $2, $3)
RETURNING ` + customerCols
	return r.scanCustomer(r.pool.QueryRow(ctx, q, in.PhoneNumber, in.Nickname, in.Birthday))
}

func (r *postgresRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerCols + `
FROM customers
WHERE phone_number = $1 AND deleted_at IS NULL
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, phone))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerCols + `
FROM customers
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerCols + `
FROM customers
WHERE deleted_at IS NULL
ORDER BY last_visit DESC
`
	return r.listCustomers(ctx, q)
}

func (r *postgresRepo) ListWithBirthday(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerCols + `
FROM customers
WHERE birthday IS NOT NULL AND deleted_at IS NULL
ORDER BY last_visit DESC
`
	return r.listCustomers(ctx, q)
}

// ConditionalUpdate applies the non-nil changes only when expectedVersion
// still matches. A vanished row and a lost race are indistinguishable here;
// callers have a fresh read in hand, so no-rows is reported as ErrConflict.
func (r *postgresRepo) ConditionalUpdate(ctx context.Context, id string, ch Changes, expectedVersion int64) (*domain.Customer, error) {
	const q = `
UPDATE customers SET
    nickname       = COALESCE($3, nickname),
    birthday       = COALESCE($4, birthday),
    current_stamps = COALESCE($5, current_stamps),
    total_stamps   = COALESCE($6, total_stamps),
    coupons        = COALESCE($7, coupons),
    visit_count    = COALESCE($8, visit_count),
    last_visit     = COALESCE($9, last_visit),
    version        = version + 1
WHERE id = $1 AND version = $2 AND deleted_at IS NULL
RETURNING ` + customerCols
	c, err := r.scanCustomer(r.pool.QueryRow(ctx, q, id, expectedVersion,
		ch.Nickname, ch.Birthday, ch.CurrentStamps, ch.TotalStamps, ch.Coupons, ch.VisitCount, ch.LastVisit))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConflict
	}
	return c, err
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE customers SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepo) listCustomers(ctx context.Context, q string) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.PhoneNumber,
		&c.Nickname,
		&c.Birthday,
		&c.CurrentStamps,
		&c.TotalStamps,
		&c.Coupons,
		&c.VisitCount,
		&c.Version,
		&c.FirstVisit,
		&c.LastVisit,
		&c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}
