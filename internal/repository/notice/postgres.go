package notice

import (
	"context"
	"errors"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const noticeCols = `id::text, title, content, is_pinned, is_published, scheduled_at, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in Input) (*domain.Notice, error) {
	const q = `
INSERT INTO notices (title, content, is_pinned, is_published, scheduled_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + noticeCols
	return r.scanNotice(r.pool.QueryRow(ctx, q, in.Title, in.Content, in.IsPinned, in.IsPublished, in.ScheduledAt))
}

func (r *postgresRepo) Update(ctx context.Context, id string, in Input) (*domain.Notice, error) {
	const q = `
UPDATE notices
SET title = $2, content = $3, is_pinned = $4, is_published = $5, scheduled_at = $6, updated_at = now()
WHERE id = $1
RETURNING ` + noticeCols
	return r.scanNotice(r.pool.QueryRow(ctx, q, id, in.Title, in.Content, in.IsPinned, in.IsPublished, in.ScheduledAt))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Notice, error) {
	const q = `SELECT ` + noticeCols + ` FROM notices WHERE id = $1`
	return r.scanNotice(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Notice, error) {
	const q = `
SELECT ` + noticeCols + `
FROM notices
ORDER BY is_pinned DESC, created_at DESC
`
	return r.listNotices(ctx, q)
}

func (r *postgresRepo) ListVisible(ctx context.Context, now time.Time) ([]domain.Notice, error) {
	const q = `
SELECT ` + noticeCols + `
FROM notices
WHERE is_published = true AND (scheduled_at IS NULL OR scheduled_at <= $1)
ORDER BY is_pinned DESC, created_at DESC
`
	return r.listNotices(ctx, q, now)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) listNotices(ctx context.Context, q string, args ...any) ([]domain.Notice, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notice
	for rows.Next() {
		n, err := r.scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *postgresRepo) scanNotice(row pgx.Row) (*domain.Notice, error) {
	var n domain.Notice
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.IsPinned,
		&n.IsPublished,
		&n.ScheduledAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}
