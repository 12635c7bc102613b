package coupon

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const couponCols = `id::text, customer_id::text, coupon_code, issued_at, valid_from, valid_until, is_used, used_at`

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

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupon_history (customer_id, coupon_code, valid_from, valid_until)
VALUES ($1, $2, $3, $4)
RETURNING ` + couponCols
	return r.scanCoupon(r.pool.QueryRow(ctx, q, in.CustomerID, in.Code, in.ValidFrom, in.ValidUntil))
}

func (r *postgresRepo) IssueWithReset(ctx context.Context, in CreateInput, expectedVersion int64, newCouponCount int) (*domain.Coupon, *domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	const insertQ = `
INSERT INTO coupon_history (customer_id, coupon_code, valid_from, valid_until)
VALUES ($1, $2, $3, $4)
RETURNING ` + couponCols
	c, err := r.scanCoupon(tx.QueryRow(ctx, insertQ, in.CustomerID, in.Code, in.ValidFrom, in.ValidUntil))
	if err != nil {
		return nil, nil, err
	}

	const resetQ = `
UPDATE customers
SET current_stamps = 0,
    coupons = $3,
    version = version + 1
WHERE id = $1 AND version = $2 AND deleted_at IS NULL
RETURNING id::text, phone_number, nickname, birthday, current_stamps, total_stamps, coupons, visit_count, version, first_visit, last_visit, deleted_at
`
	var cust domain.Customer
	err = tx.QueryRow(ctx, resetQ, in.CustomerID, expectedVersion, newCouponCount).Scan(
		&cust.ID, &cust.PhoneNumber, &cust.Nickname, &cust.Birthday,
		&cust.CurrentStamps, &cust.TotalStamps, &cust.Coupons, &cust.VisitCount,
		&cust.Version, &cust.FirstVisit, &cust.LastVisit, &cust.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrConflict
		}
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return c, &cust, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	const q = `SELECT ` + couponCols + ` FROM coupon_history WHERE id = $1`
	return r.scanCoupon(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Coupon, error) {
	const q = `
SELECT ` + couponCols + `
FROM coupon_history
WHERE customer_id = $1
ORDER BY issued_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Coupon
	for rows.Next() {
		c, err := r.scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter, now time.Time) ([]WithCustomer, error) {
	q := `
SELECT h.id::text, h.customer_id::text, h.coupon_code, h.issued_at, h.valid_from, h.valid_until, h.is_used, h.used_at,
       c.nickname, c.phone_number
FROM coupon_history h
JOIN customers c ON c.id = h.customer_id
`
	switch filter {
	case FilterValid:
		q += `WHERE (h.valid_from IS NULL OR h.valid_from <= $1) AND (h.valid_until IS NULL OR h.valid_until >= $1)
`
	case FilterExpired:
		q += `WHERE h.valid_until IS NOT NULL AND h.valid_until < $1
`
	default:
		q += `WHERE $1::timestamptz IS NOT NULL
`
	}
	q += `ORDER BY h.issued_at DESC`

	rows, err := r.pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WithCustomer
	for rows.Next() {
		var wc WithCustomer
		if err := rows.Scan(
			&wc.ID, &wc.CustomerID, &wc.Code, &wc.IssuedAt,
			&wc.ValidFrom, &wc.ValidUntil, &wc.IsUsed, &wc.UsedAt,
			&wc.Nickname, &wc.PhoneNumber,
		); err != nil {
			return nil, err
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

func (r *postgresRepo) FindPendingStamp(ctx context.Context, customerID string, since time.Time) (*domain.Coupon, error) {
	const q = `
SELECT ` + couponCols + `
FROM coupon_history
WHERE customer_id = $1
  AND coupon_code LIKE 'COUPON%'
  AND is_used = false
  AND issued_at >= $2
ORDER BY issued_at DESC
LIMIT 1
`
	return r.scanCoupon(r.pool.QueryRow(ctx, q, customerID, since))
}

func (r *postgresRepo) CountBirthdaySince(ctx context.Context, customerID string, since time.Time) (int, error) {
	const q = `
SELECT count(*)
FROM coupon_history
WHERE customer_id = $1 AND coupon_code LIKE 'BIRTHDAY%' AND issued_at >= $2
`
	var n int
	if err := r.pool.QueryRow(ctx, q, customerID, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) SetUsed(ctx context.Context, id string, used bool) (*domain.Coupon, error) {
	const q = `
UPDATE coupon_history
SET is_used = $2,
    used_at = CASE WHEN $2 THEN now() ELSE NULL END
WHERE id = $1
RETURNING ` + couponCols
	return r.scanCoupon(r.pool.QueryRow(ctx, q, id, used))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupon_history WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupon_history WHERE valid_until IS NOT NULL AND valid_until < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepo) scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(
		&c.ID,
		&c.CustomerID,
		&c.Code,
		&c.IssuedAt,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.IsUsed,
		&c.UsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("coupon repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}
