package domain

import "context"

// Entry types. Focus sessions are the classic pomodoro; project sessions
// accumulate into "project hours" on the stats side.
const (
	TypeFocus   int64 = 1
	TypeProject int64 = 2
)

// TimerEntry is a single recorded timer session. Start and End are unix
// timestamps; End stays nil until the session is closed. An entry is mutable
// exactly once: the end operation moves End from nil to a value, after which
// the row is read-only forever. Rows are never deleted.
type TimerEntry struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Start  int64  `json:"start"`
	End    *int64 `json:"end"`
	TypeID int64  `json:"type_id"`
}

// Duration returns End-Start in seconds, or 0 for a still-open entry.
func (e TimerEntry) Duration() int64 {
	if e.End == nil {
		return 0
	}
	return *e.End - e.Start
}

// EntryRepository is the write/read surface over the pomodoros table. The
// recorder is the sole writer; the stats service only uses the range queries.
//
// CountInRange and ListInRange share the qualification rule: an entry counts
// only when its end lies strictly inside (rangeMin, rangeMax) and its
// duration is strictly greater than minDuration. CountInRange additionally
// filters on typeID unless typeID is zero.
type EntryRepository interface {
	Insert(ctx context.Context, userID, start, typeID int64) (int64, error)
	GetForUser(ctx context.Context, id, userID int64) (*TimerEntry, error)
	// SetEnd closes the entry matching both id and userID and reports the
	// number of rows touched. A foreign id matches nothing; callers treat
	// that as a silent no-op, not an error.
	SetEnd(ctx context.Context, id, userID, end int64) (int64, error)
	ListAll(ctx context.Context) ([]TimerEntry, error)
	CountInRange(ctx context.Context, userID, rangeMin, rangeMax, minDuration, typeID int64) (int64, error)
	ListInRange(ctx context.Context, userID, rangeMin, rangeMax, minDuration int64) ([]TimerEntry, error)
}
