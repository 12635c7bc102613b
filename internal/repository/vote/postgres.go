package vote

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const voteCols = `id::text, title, COALESCE(description, ''), options, ends_at, allow_multiple, max_selections, is_active, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in Input) (*domain.Vote, error) {
	optJSON, err := json.Marshal(in.Options)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO votes (title, description, options, ends_at, allow_multiple, max_selections, is_active)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
RETURNING ` + voteCols
	return r.scanVote(r.pool.QueryRow(ctx, q, in.Title, in.Description, optJSON, in.EndsAt, in.AllowMultiple, in.MaxSelections, in.IsActive))
}

func (r *postgresRepo) Update(ctx context.Context, id string, in Input) (*domain.Vote, error) {
	optJSON, err := json.Marshal(in.Options)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE votes
SET title = $2, description = NULLIF($3, ''), options = $4, ends_at = $5,
    allow_multiple = $6, max_selections = $7, is_active = $8
WHERE id = $1
RETURNING ` + voteCols
	return r.scanVote(r.pool.QueryRow(ctx, q, id, in.Title, in.Description, optJSON, in.EndsAt, in.AllowMultiple, in.MaxSelections, in.IsActive))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Vote, error) {
	const q = `SELECT ` + voteCols + ` FROM votes WHERE id = $1`
	return r.scanVote(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.Vote, error) {
	q := `SELECT ` + voteCols + ` FROM votes`
	if activeOnly {
		q += ` WHERE is_active = true`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vote
	for rows.Next() {
		v, err := r.scanVote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) (*domain.Vote, error) {
	const q = `UPDATE votes SET is_active = $2 WHERE id = $1 RETURNING ` + voteCols
	return r.scanVote(r.pool.QueryRow(ctx, q, id, active))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) InsertBallots(ctx context.Context, voteID, phoneNumber string, optionIDs []int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, optID := range optionIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO vote_responses (vote_id, option_id, phone_number)
VALUES ($1, $2, $3)
`, voteID, optID, phoneNumber); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domain.ErrAlreadyExists
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) HasBallot(ctx context.Context, voteID, phoneNumber string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM vote_responses WHERE vote_id = $1 AND phone_number = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, voteID, phoneNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Counts(ctx context.Context, voteID string) (map[int]int, int, error) {
	const q = `
SELECT option_id, count(*)
FROM vote_responses
WHERE vote_id = $1
GROUP BY option_id
`
	rows, err := r.pool.Query(ctx, q, voteID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var optID, n int
		if err := rows.Scan(&optID, &n); err != nil {
			return nil, 0, err
		}
		counts[optID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const totalQ = `SELECT count(DISTINCT phone_number) FROM vote_responses WHERE vote_id = $1`
	var total int
	if err := r.pool.QueryRow(ctx, totalQ, voteID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return counts, total, nil
}

func (r *postgresRepo) scanVote(row pgx.Row) (*domain.Vote, error) {
	var v domain.Vote
	var optJSON []byte
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&optJSON,
		&v.EndsAt,
		&v.AllowMultiple,
		&v.MaxSelections,
		&v.IsActive,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(optJSON) > 0 {
		if err := json.Unmarshal(optJSON, &v.Options); err != nil {
			return nil, err
		}
	}
	return &v, nil
}
