package sqlite

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"lead-triage-telegram-bot/internal/usecase"
)

// SessionRepo — долговечное хранилище сессий разбора; включается
// через SESSIONS_SQLITE_DSN
type SessionRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSessionRepo(dsn string, logger *slog.Logger) (*SessionRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &SessionRepo{db: db, logger: logger}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS review_sessions (
    operator_id INTEGER PRIMARY KEY,
    state TEXT NOT NULL,
    lead_id INTEGER NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`)
	return err
}

func (r *SessionRepo) Get(operatorID int64) (usecase.ReviewSession, bool) {
	var state string
	var leadID int64
	err := r.db.QueryRow(`SELECT state, lead_id FROM review_sessions WHERE operator_id = ?`, operatorID).
		Scan(&state, &leadID)
	if errors.Is(err, sql.ErrNoRows) {
		return usecase.ReviewSession{}, false
	}
	if err != nil {
		// сбой БД — не "нет сессии"; логируем, но оператору придется /next
		r.logger.Error("session lookup failed", "operator_id", operatorID, "error", err)
		return usecase.ReviewSession{}, false
	}
	return usecase.ReviewSession{State: usecase.ReviewState(state), LeadID: leadID}, true
}

func (r *SessionRepo) Put(operatorID int64, s usecase.ReviewSession) error {
	_, err := r.db.Exec(`INSERT INTO review_sessions(operator_id, state, lead_id, updated_at) VALUES(?,?,?,?)
ON CONFLICT(operator_id) DO UPDATE SET state = excluded.state, lead_id = excluded.lead_id, updated_at = excluded.updated_at`,
		operatorID, string(s.State), s.LeadID, time.Now())
	return err
}
