package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaron7/pomodoro/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// entryColumns must match the Scan order in scanEntry.
const entryColumns = `id, user_id, start, "end", type_id`

// EntryRepo implements domain.EntryRepository backed by PostgreSQL.
// Every call acquires a pooled connection for the duration of the query and
// releases it unconditionally, including on error paths.
type EntryRepo struct {
	pool *pgxpool.Pool
}

func NewEntryRepo(pool *pgxpool.Pool) *EntryRepo {
	return &EntryRepo{pool: pool}
}

func scanEntry(row pgx.Row) (*domain.TimerEntry, error) {
	var entry domain.TimerEntry
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Start, &entry.End, &entry.TypeID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func collectEntries(rows pgx.Rows) ([]domain.TimerEntry, error) {
	defer rows.Close()

	var entries []domain.TimerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

func (r *EntryRepo) Insert(ctx context.Context, userID, start, typeID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO pomodoros (user_id, start, type_id) VALUES ($1, $2, $3) RETURNING id`,
		userID, start, typeID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}
	return id, nil
}

func (r *EntryRepo) GetForUser(ctx context.Context, id, userID int64) (*domain.TimerEntry, error) {
	entry, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM pomodoros WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// SetEnd closes the entry owned by userID. A foreign or unknown id matches
// zero rows; that is reported, not treated as an error.
func (r *EntryRepo) SetEnd(ctx context.Context, id, userID, end int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pomodoros SET "end" = $1 WHERE id = $2 AND user_id = $3`,
		end, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to set entry end: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *EntryRepo) ListAll(ctx context.Context) ([]domain.TimerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM pomodoros ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return collectEntries(rows)
}

// CountInRange counts qualifying entries: end strictly inside
// (rangeMin, rangeMax) and duration strictly above minDuration. A typeID of
// zero disables the type filter.
func (r *EntryRepo) CountInRange(ctx context.Context, userID, rangeMin, rangeMax, minDuration, typeID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM pomodoros
		WHERE user_id = $1 AND "end" > $2 AND "end" < $3 AND ("end" - start) > $4`
	args := []any{userID, rangeMin, rangeMax, minDuration}
	if typeID != 0 {
		query += ` AND type_id = $5`
		args = append(args, typeID)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (r *EntryRepo) ListInRange(ctx context.Context, userID, rangeMin, rangeMax, minDuration int64) ([]domain.TimerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM pomodoros
		WHERE user_id = $1 AND "end" > $2 AND "end" < $3 AND ("end" - start) > $4
		ORDER BY id ASC`,
		userID, rangeMin, rangeMax, minDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries in range: %w", err)
	}
	return collectEntries(rows)
}
