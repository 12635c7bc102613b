package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type customerSeed struct {
	PhoneNumber   string
	Nickname      string
	Birthday      string
	CurrentStamps int
	TotalStamps   int
	VisitCount    int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	customers := []customerSeed{
		{
			PhoneNumber:   "010-1234-5678",
			Nickname:      "달토끼",
			Birthday:      "1995-03-14",
			CurrentStamps: 4,
			TotalStamps:   14,
			VisitCount:    7,
		},
		{
			PhoneNumber:   "010-9876-5432",
			Nickname:      "별자리",
			CurrentStamps: 9,
			TotalStamps:   9,
			VisitCount:    5,
		},
		{
			PhoneNumber: "010-5555-0001",
			Nickname:    "고객",
			Birthday:    "2000-12-24",
			VisitCount:  1,
		},
	}

	for _, c := range customers {
		if err := upsertCustomer(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.PhoneNumber, err)
		}
	}

	if err := ensureNotice(ctx, pool, "오픈 안내", "매주 월요일은 정기 휴무입니다.", true); err != nil {
		return fmt.Errorf("ensure notice: %w", err)
	}
	if err := ensureNotice(ctx, pool, "쿠폰 사용 안내", "스탬프 10개를 모으면 무료 타로 1회 쿠폰이 발급됩니다.", false); err != nil {
		return fmt.Errorf("ensure notice: %w", err)
	}

	return nil
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) error {
	const q = `
INSERT INTO customers (phone_number, nickname, birthday, current_stamps, total_stamps, visit_count)
VALUES ($1, $2, NULLIF($3, '')::date, $4, $5, $6)
ON CONFLICT (phone_number) DO UPDATE
SET nickname = EXCLUDED.nickname,
    birthday = EXCLUDED.birthday,
    current_stamps = EXCLUDED.current_stamps,
    total_stamps = EXCLUDED.total_stamps,
    visit_count = EXCLUDED.visit_count
`
	_, err := pool.Exec(ctx, q, c.PhoneNumber, c.Nickname, c.Birthday, c.CurrentStamps, c.TotalStamps, c.VisitCount)
	return err
}

// ensureNotice inserts a notice once, keyed by title. The notices table has no
// natural unique column, so the guard is a WHERE NOT EXISTS instead of ON CONFLICT.
func ensureNotice(ctx context.Context, pool *pgxpool.Pool, title, content string, pinned bool) error {
	const q = `
INSERT INTO notices (title, content, is_pinned, is_published, created_at)
SELECT $1, $2, $3, true, $4
WHERE NOT EXISTS (SELECT 1 FROM notices WHERE title = $1)
`
	_, err := pool.Exec(ctx, q, title, content, pinned, time.Now().UTC())
	return err
}
