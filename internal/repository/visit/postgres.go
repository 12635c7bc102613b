package visit

import (
	"context"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Insert(ctx context.Context, customerID string, stampsAdded int) (*domain.Visit, error) {
	const q = `
INSERT INTO visit_history (customer_id, stamps_added)
VALUES ($1, $2)
RETURNING id, customer_id::text, visit_date, stamps_added
`
	var v domain.Visit
	if err := r.pool.QueryRow(ctx, q, customerID, stampsAdded).Scan(&v.ID, &v.CustomerID, &v.VisitDate, &v.StampsAdded); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) ListRecent(ctx context.Context, customerID string, limit int) ([]domain.Visit, error) {
	if limit <= 0 {
		limit = 3
	}
	const q = `
SELECT id, customer_id::text, visit_date, stamps_added
FROM visit_history
WHERE customer_id = $1
ORDER BY visit_date DESC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.VisitDate, &v.StampsAdded); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
