// Package stats computes per-user aggregates over recorded timer entries:
// daily counts, project hours, trailing day series, and rolling-week
// bucketing. All date arithmetic happens in a single configured
// time.Location; day boundaries are that location's midnights. The location
// defaults to the host's local zone, so results for the same data differ
// between hosts unless TIMEZONE is pinned.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/aaron7/pomodoro/internal/domain"
	"github.com/jonboulle/clockwork"
)

const secondsPerDay int64 = 24 * 60 * 60

// EntryStore is the read surface the engine needs. Both methods apply the
// shared qualification rule: end strictly inside the range and duration
// strictly above the minimum.
type EntryStore interface {
	CountInRange(ctx context.Context, userID, rangeMin, rangeMax, minDuration, typeID int64) (int64, error)
	ListInRange(ctx context.Context, userID, rangeMin, rangeMax, minDuration int64) ([]domain.TimerEntry, error)
}

// DayPoint is one calendar day of a series. Date is the unix timestamp of
// that day's midnight in the engine's location.
type DayPoint struct {
	Date         int64   `json:"date"`
	Pomodoros    int64   `json:"pomodoros"`
	ProjectHours float64 `json:"projectHours"`
}

// Summary is the full aggregate payload for one user.
type Summary struct {
	Weekday   int   `json:"weekday"` // 0 = Monday
	Today     int64 `json:"today"`
	Yesterday int64 `json:"yesterday"`
	// DaySeries covers the trailing 14 days, most recent day first.
	DaySeries []DayPoint `json:"daySeries"`
	// DayEntries maps day-midnight timestamps of the trailing 7 days to the
	// entries that ended on that day.
	DayEntries map[int64][]domain.TimerEntry `json:"dayEntries"`
	// LastWeek maps day offsets 0..6 of the rolling week ending at the most
	// recent midnight to entries whose start/end are rewritten as offsets
	// from their day bucket's start.
	LastWeek map[int][]domain.TimerEntry `json:"lastWeek"`
}

// Engine answers aggregate queries over the shared pomodoros table. It is
// read-only and safe for concurrent use.
type Engine struct {
	store       EntryStore
	clock       clockwork.Clock
	loc         *time.Location
	minDuration int64
	typeFilter  bool
}

// NewEngine creates an aggregation engine. minDuration is the threshold in
// seconds a closed entry must strictly exceed to count anywhere. With
// typeFilter disabled, counts ignore the type column entirely.
func NewEngine(store EntryStore, clock clockwork.Clock, loc *time.Location, minDuration int64, typeFilter bool) *Engine {
	return &Engine{
		store:       store,
		clock:       clock,
		loc:         loc,
		minDuration: minDuration,
		typeFilter:  typeFilter,
	}
}

// Now returns the current time in the engine's location.
func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.loc)
}

// midnight truncates t to its calendar day's midnight in the engine's location.
func (e *Engine) midnight(t time.Time) time.Time {
	t = t.In(e.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
}

// nextMidnight returns the midnight of the calendar day after t.
func (e *Engine) nextMidnight(t time.Time) time.Time {
	t = t.In(e.loc)
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, e.loc)
}

// CountInRange counts qualifying entries of the given type with end strictly
// inside (rangeMin, rangeMax).
func (e *Engine) CountInRange(ctx context.Context, userID, rangeMin, rangeMax, typeID int64) (int64, error) {
	if !e.typeFilter {
		typeID = 0
	}
	return e.store.CountInRange(ctx, userID, rangeMin, rangeMax, e.minDuration, typeID)
}

// CountForDate counts focus entries ending on day's calendar date.
func (e *Engine) CountForDate(ctx context.Context, userID int64, day time.Time) (int64, error) {
	return e.CountInRange(ctx, userID, e.midnight(day).Unix(), e.nextMidnight(day).Unix(), domain.TypeFocus)
}

// ProjectHoursForDate sums the hours of project entries ending on day's date.
func (e *Engine) ProjectHoursForDate(ctx context.Context, userID int64, day time.Time) (float64, error) {
	entries, err := e.store.ListInRange(ctx, userID, e.midnight(day).Unix(), e.nextMidnight(day).Unix(), e.minDuration)
	if err != nil {
		return 0, fmt.Errorf("failed to list project entries: %w", err)
	}

	var seconds int64
	for _, entry := range entries {
		if entry.TypeID == domain.TypeProject {
			seconds += entry.Duration()
		}
	}
	return float64(seconds) / 3600.0, nil
}

// DaySeries returns one DayPoint per calendar day in [startDate, endDate),
// in ascending day order.
func (e *Engine) DaySeries(ctx context.Context, userID int64, startDate, endDate time.Time) ([]DayPoint, error) {
	start := e.midnight(startDate)
	end := e.midnight(endDate)

	var series []DayPoint
	for day := start; day.Before(end); day = e.nextMidnight(day) {
		pomodoros, err := e.CountForDate(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		hours, err := e.ProjectHoursForDate(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		series = append(series, DayPoint{
			Date:         day.Unix(),
			Pomodoros:    pomodoros,
			ProjectHours: hours,
		})
	}
	return series, nil
}

// EntriesByDay buckets every qualifying entry in [startDate, endDate) by the
// midnight of the calendar day its end timestamp falls on. An entry that ran
// over midnight belongs to the day it ended, not the day it started.
func (e *Engine) EntriesByDay(ctx context.Context, userID int64, startDate, endDate time.Time) (map[int64][]domain.TimerEntry, error) {
	entries, err := e.store.ListInRange(ctx, userID, e.midnight(startDate).Unix(), e.midnight(endDate).Unix(), e.minDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	buckets := make(map[int64][]domain.TimerEntry)
	for _, entry := range entries {
		day := e.midnight(time.Unix(*entry.End, 0)).Unix()
		buckets[day] = append(buckets[day], entry)
	}
	return buckets, nil
}

// LastCalendarWeek returns the rolling 7-day window ending at the most recent
// midnight, as day buckets 0..6. Each qualifying entry lands in the bucket
// containing its end timestamp (upper bounds exclusive), with start and end
// rewritten as second offsets from that bucket's start. Day buckets are
// uniform 86400-second slices of the window.
func (e *Engine) LastCalendarWeek(ctx context.Context, userID int64) (map[int][]domain.TimerEntry, error) {
	weekEnd := e.midnight(e.Now()).Unix()
	weekStart := weekEnd - 7*secondsPerDay

	entries, err := e.store.ListInRange(ctx, userID, weekStart, weekEnd, e.minDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to list week entries: %w", err)
	}

	buckets := make(map[int][]domain.TimerEntry)
	for _, entry := range entries {
		idx := int((*entry.End - weekStart) / secondsPerDay)
		if idx < 0 || idx > 6 {
			continue
		}
		bucketStart := weekStart + int64(idx)*secondsPerDay

		rewritten := entry
		rewritten.Start = entry.Start - bucketStart
		endOffset := *entry.End - bucketStart
		rewritten.End = &endOffset

		buckets[idx] = append(buckets[idx], rewritten)
	}
	return buckets, nil
}

// TodayCount counts focus entries ending today.
func (e *Engine) TodayCount(ctx context.Context, userID int64) (int64, error) {
	return e.CountForDate(ctx, userID, e.Now())
}

// YesterdayCount counts focus entries ending yesterday.
func (e *Engine) YesterdayCount(ctx context.Context, userID int64) (int64, error) {
	return e.CountForDate(ctx, userID, e.Now().AddDate(0, 0, -1))
}

// Summary composes the full aggregate payload for one user: today and
// yesterday counts, the trailing 14-day series (most recent day first), the
// trailing 7-day entry buckets, and the rolling-week offsets.
func (e *Engine) Summary(ctx context.Context, userID int64) (*Summary, error) {
	now := e.Now()

	today, err := e.TodayCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	yesterday, err := e.YesterdayCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Computed ascending, served most-recent-first.
	series, err := e.DaySeries(ctx, userID, now.AddDate(0, 0, -13), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}

	dayEntries, err := e.EntriesByDay(ctx, userID, now.AddDate(0, 0, -6), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	lastWeek, err := e.LastCalendarWeek(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Weekday:    (int(now.Weekday()) + 6) % 7,
		Today:      today,
		Yesterday:  yesterday,
		DaySeries:  series,
		DayEntries: dayEntries,
		LastWeek:   lastWeek,
	}, nil
}
