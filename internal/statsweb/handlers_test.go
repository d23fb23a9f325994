package statsweb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaron7/pomodoro/internal/config"
	"github.com/aaron7/pomodoro/internal/domain"
	"github.com/aaron7/pomodoro/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	users map[string]*domain.User
}

func (m *mockUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	if user, ok := m.users[name]; ok {
		return user, nil
	}
	return nil, domain.ErrUnknownUser
}

func (m *mockUserRepo) Create(_ context.Context, name, pass string) (*domain.User, error) {
	user := &domain.User{ID: int64(len(m.users) + 1), Name: name, Pass: pass}
	m.users[name] = user
	return user, nil
}

type mockSummarizer struct {
	summary *stats.Summary
	err     error

	lastUserID int64
}

func (m *mockSummarizer) Summary(_ context.Context, userID int64) (*stats.Summary, error) {
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

type pingFail struct{}

func (pingFail) Ping(context.Context) error { return errors.New("connection refused") }

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          "test",
		StatsPort:       "0",
		MinPomodoroTime: 900,
		StatsTypeFilter: true,
	}
}

func aaronRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{
		"aaron": {ID: 42, Name: "aaron", Pass: "secret"},
	}}
}

func fixedSummary() *stats.Summary {
	end := int64(3600)
	return &stats.Summary{
		Weekday:   5,
		Today:     3,
		Yesterday: 7,
		DaySeries: []stats.DayPoint{
			{Date: 1718409600, Pomodoros: 3, ProjectHours: 1.5},
			{Date: 1718323200, Pomodoros: 7},
		},
		DayEntries: map[int64][]domain.TimerEntry{
			1718409600: {{ID: 1, UserID: 42, Start: 1718410000, End: &end, TypeID: domain.TypeFocus}},
		},
		LastWeek: map[int][]domain.TimerEntry{
			6: {{ID: 1, UserID: 42, Start: 36000, End: &end, TypeID: domain.TypeFocus}},
		},
	}
}

func doRequest(srv *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleWelcome(t *testing.T) {
	srv := NewServer(testConfig(), aaronRepo(), &mockSummarizer{summary: fixedSummary()}, pingOK{})

	rec := doRequest(srv, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello, world!", rec.Body.String())
}

func TestHandleUserStats(t *testing.T) {
	engine := &mockSummarizer{summary: fixedSummary()}
	srv := NewServer(testConfig(), aaronRepo(), engine, pingOK{})

	rec := doRequest(srv, "/aaron")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), engine.lastUserID)

	var payload struct {
		Username  string           `json:"username"`
		Weekday   int              `json:"weekday"`
		Today     int64            `json:"today"`
		Yesterday int64            `json:"yesterday"`
		DaySeries []stats.DayPoint `json:"daySeries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "aaron", payload.Username)
	assert.Equal(t, 5, payload.Weekday)
	assert.Equal(t, int64(3), payload.Today)
	assert.Equal(t, int64(7), payload.Yesterday)
	require.Len(t, payload.DaySeries, 2)
	assert.Equal(t, int64(1718409600), payload.DaySeries[0].Date)
	assert.Equal(t, 1.5, payload.DaySeries[0].ProjectHours)
}

func TestHandleUserStatsUnknownUser(t *testing.T) {
	engine := &mockSummarizer{summary: fixedSummary()}
	srv := NewServer(testConfig(), aaronRepo(), engine, pingOK{})

	rec := doRequest(srv, "/nobody")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user nobody does not exist")
	assert.Zero(t, engine.lastUserID)
}

func TestHandleUserStatsEngineFailure(t *testing.T) {
	engine := &mockSummarizer{err: errors.New("store unavailable")}
	srv := NewServer(testConfig(), aaronRepo(), engine, pingOK{})

	rec := doRequest(srv, "/aaron")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to build user stats")
}

func TestHandleLiveness(t *testing.T) {
	srv := NewServer(testConfig(), aaronRepo(), &mockSummarizer{summary: fixedSummary()}, pingOK{})

	rec := doRequest(srv, "/health/live")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadinessFailure(t *testing.T) {
	srv := NewServer(testConfig(), aaronRepo(), &mockSummarizer{summary: fixedSummary()}, pingFail{})

	rec := doRequest(srv, "/health/ready")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "postgres")
}
