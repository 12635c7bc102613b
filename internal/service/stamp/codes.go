package stamp

import (
	"fmt"
	"sync/atomic"
	"time"
)

// codeSeq seeds from the clock so restarts land on a fresh range; each
// issued code advances it, keeping suffixes distinct within a process.
var codeSeq atomic.Uint64

func init() {
	codeSeq.Store(uint64(time.Now().UnixNano()))
}

// NewCode builds a coupon code: prefix, yymmdd, and a six-digit suffix.
// The coupon_code unique constraint backstops the suffix across processes.
func NewCode(prefix string, t time.Time) string {
	seq := codeSeq.Add(1)
	return fmt.Sprintf("%s%s%06d", prefix, t.Format("060102"), seq%1000000)
}

// endOfDay returns the last second of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
