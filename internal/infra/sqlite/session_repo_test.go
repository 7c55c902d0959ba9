package sqlite

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-triage-telegram-bot/internal/usecase"
)

func newTestRepo(t *testing.T, logger *slog.Logger) *SessionRepo {
	t.Helper()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r, err := NewSessionRepo(filepath.Join(t.TempDir(), "sessions.db"), logger)
	require.NoError(t, err)
	return r
}

func TestSessionRepoMissing(t *testing.T) {
	r := newTestRepo(t, nil)

	_, ok := r.Get(100)
	assert.False(t, ok)
}

func TestSessionRepoPutGet(t *testing.T) {
	r := newTestRepo(t, nil)

	require.NoError(t, r.Put(100, usecase.ReviewSession{State: usecase.StateHasAssignment, LeadID: 7}))
	s, ok := r.Get(100)
	require.True(t, ok)
	assert.Equal(t, usecase.StateHasAssignment, s.State)
	assert.Equal(t, int64(7), s.LeadID)
}

func TestSessionRepoUpsert(t *testing.T) {
	r := newTestRepo(t, nil)

	require.NoError(t, r.Put(100, usecase.ReviewSession{State: usecase.StateHasAssignment, LeadID: 7}))
	require.NoError(t, r.Put(100, usecase.ReviewSession{State: usecase.StateAwaitingComment, LeadID: 8}))

	s, ok := r.Get(100)
	require.True(t, ok)
	assert.Equal(t, usecase.StateAwaitingComment, s.State)
	assert.Equal(t, int64(8), s.LeadID)
}

// Сбой БД при чтении не выдается за отсутствие сессии молча
func TestSessionRepoGetLogsDBError(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepo(t, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, r.Put(100, usecase.ReviewSession{State: usecase.StateHasAssignment, LeadID: 7}))

	_, err := r.db.Exec(`DROP TABLE review_sessions`)
	require.NoError(t, err)

	_, ok := r.Get(100)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "session lookup failed")

	// отсутствие строки логом не сопровождается
	buf.Reset()
	r2 := newTestRepo(t, slog.New(slog.NewTextHandler(&buf, nil)))
	_, ok = r2.Get(100)
	assert.False(t, ok)
	assert.NotContains(t, buf.String(), "session lookup failed")
}
