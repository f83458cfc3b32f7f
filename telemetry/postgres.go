package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	_ "github.com/lib/pq"

	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
)

// Schema creates the session and task outcome tables
const Schema = `
	CREATE TABLE IF NOT EXISTS deskrush_sessions (
		session_id   TEXT PRIMARY KEY,
		started_at   TIMESTAMPTZ NOT NULL,
		seed         BIGINT NOT NULL,
		ended_at     TIMESTAMPTZ,
		outcome      TEXT,
		resolved     INTEGER,
		expired      INTEGER,
		remaining_ms BIGINT
	);
	CREATE TABLE IF NOT EXISTS deskrush_tasks (
		task_id    BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES deskrush_sessions(session_id),
		ts         TIMESTAMPTZ NOT NULL,
		station    TEXT NOT NULL,
		task       TEXT NOT NULL,
		required   TEXT NOT NULL,
		outcome    TEXT NOT NULL,
		activation BIGINT NOT NULL,
		amount_ms  BIGINT NOT NULL,
		elapsed_ms BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_deskrush_tasks_session ON deskrush_tasks(session_id);
`

const (
	insertSession = `INSERT INTO deskrush_sessions (session_id, started_at, seed) VALUES ($1, $2, $3)`
	insertTask    = `
		INSERT INTO deskrush_tasks (session_id, ts, station, task, required, outcome, activation, amount_ms, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	finishSession = `
		UPDATE deskrush_sessions
		SET ended_at = $2, outcome = $3, resolved = $4, expired = $5, remaining_ms = $6
		WHERE session_id = $1`

	recordBuffer = 128
)

// Execer is the part of *sql.DB the recorder writes through
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// OpenPostgres connects with a lib/pq URL and ensures the schema exists
func OpenPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: schema: %w", err)
	}
	return db, nil
}

type statement struct {
	query string
	args  []any
}

// Recorder writes one row per session and one per finished task activation
type Recorder struct {
	db      Execer
	session string
	box     *outbox[statement]
	failed  atomic.Int64
}

// NewRecorder queues the session row; nothing is written until Run
func NewRecorder(db Execer, session string, started time.Time, seed uint64) *Recorder {
	r := &Recorder{
		db:      db,
		session: session,
		box:     newOutbox[statement](recordBuffer),
	}
	r.box.offer(statement{insertSession, []any{session, started, int64(seed)}})
	return r
}

func (r *Recorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTaskResolved,
		event.EventTaskExpired,
		event.EventTimeOut,
		event.EventLevelCleared,
	}
}

func (r *Recorder) HandleEvent(w *engine.World, ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.TaskPayload:
		r.box.offer(statement{insertTask, []any{
			r.session, w.Now(), string(p.Station), p.Task, string(p.Required), p.State.String(),
			int64(p.Activation), p.Amount.Milliseconds(), p.Elapsed.Milliseconds(),
		}})
	case *event.LevelPayload:
		outcome := "cleared"
		if ev.Type == event.EventTimeOut {
			outcome = "time_out"
		}
		r.box.offer(statement{finishSession, []any{
			r.session, w.Now(), outcome, p.Resolved, p.Expired, p.Remaining.Milliseconds(),
		}})
	}
}

// Run executes queued statements until ctx is done, then flushes
func (r *Recorder) Run(ctx context.Context) error {
	r.box.run(ctx, func(st statement) {
		// Flushing after cancellation still needs a live context
		execCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if _, err := r.db.ExecContext(execCtx, st.query, st.args...); err != nil {
			if r.failed.Add(1) == 1 {
				log.Printf("postgres: write failed (further errors suppressed): %v", err)
			}
		}
	})
	return nil
}

// Stats returns written, dropped and failed statement counts
func (r *Recorder) Stats() (sent, dropped, failed int64) {
	return r.box.sent.Load(), r.box.dropped.Load(), r.failed.Load()
}
