package suggestion

import (
	"context"
	"errors"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const suggestionCols = `id::text, content, COALESCE(phone_number, ''), COALESCE(nickname, ''), status, COALESCE(admin_response, ''), responded_at, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Suggestion, error) {
	const q = `
INSERT INTO bug_reports (content, phone_number, nickname)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
RETURNING ` + suggestionCols
	return r.scanSuggestion(r.pool.QueryRow(ctx, q, in.Content, in.PhoneNumber, in.Nickname))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Suggestion, error) {
	const q = `SELECT ` + suggestionCols + ` FROM bug_reports WHERE id = $1`
	return r.scanSuggestion(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Suggestion, error) {
	const q = `SELECT ` + suggestionCols + ` FROM bug_reports ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Suggestion
	for rows.Next() {
		s, err := r.scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Respond(ctx context.Context, id, response string) (*domain.Suggestion, error) {
	const q = `
UPDATE bug_reports
SET admin_response = $2, responded_at = now(), status = 'answered'
WHERE id = $1
RETURNING ` + suggestionCols
	return r.scanSuggestion(r.pool.QueryRow(ctx, q, id, response))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bug_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanSuggestion(row pgx.Row) (*domain.Suggestion, error) {
	var s domain.Suggestion
	err := row.Scan(
		&s.ID,
		&s.Content,
		&s.PhoneNumber,
		&s.Nickname,
		&s.Status,
		&s.AdminResponse,
		&s.RespondedAt,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
