package recorder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aaron7/pomodoro/internal/config"
	"github.com/aaron7/pomodoro/internal/domain"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockUserRepo struct {
	users map[string]*domain.User
}

func (m *mockUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	user, ok := m.users[name]
	if !ok {
		return nil, domain.ErrUnknownUser
	}
	return user, nil
}

func (m *mockUserRepo) Create(_ context.Context, name, pass string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

type mockEntryRepo struct {
	mu      sync.Mutex
	entries []domain.TimerEntry
	nextID  int64
}

func (m *mockEntryRepo) Insert(_ context.Context, userID, start, typeID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.entries = append(m.entries, domain.TimerEntry{
		ID:     m.nextID,
		UserID: userID,
		Start:  start,
		TypeID: typeID,
	})
	return m.nextID, nil
}

func (m *mockEntryRepo) GetForUser(_ context.Context, id, userID int64) (*domain.TimerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			entry := e
			return &entry, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *mockEntryRepo) SetEnd(_ context.Context, id, userID, end int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			m.entries[i].End = &end
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockEntryRepo) ListAll(_ context.Context) ([]domain.TimerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]domain.TimerEntry, len(m.entries))
	copy(entries, m.entries)
	return entries, nil
}

func (m *mockEntryRepo) CountInRange(_ context.Context, _, _, _, _, _ int64) (int64, error) {
	return 0, errors.New("not implemented")
}

func (m *mockEntryRepo) ListInRange(_ context.Context, _, _, _, _ int64) ([]domain.TimerEntry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockEntryRepo) get(t *testing.T, id int64) domain.TimerEntry {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("entry %d not found", id)
	return domain.TimerEntry{}
}

func (m *mockEntryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

type pingFail struct{}

func (pingFail) Ping(context.Context) error { return errors.New("connection refused") }

// --- Test server helpers ---

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		RecorderPort:       "0",
		SessionSecret:      "test-secret",
		SessionMaxAge:      time.Hour,
		LoginRatePerSecond: 1000,
		LoginBurst:         1000,
	}
}

func newTestServer(t *testing.T, users domain.UserRepository, entries domain.EntryRepository) *Server {
	t.Helper()
	return NewServer(testConfig(), users, entries, pingOK{})
}

// sessionCookies builds a valid session for userID using the server's own
// cookie store.
func sessionCookies(t *testing.T, srv *Server, userID int64) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	session, err := srv.sessionStore.New(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionKeyUserID] = userID
	require.NoError(t, session.Save(req, rec))

	return rec.Result().Cookies()
}
