package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestWorld() *engine.World {
	return engine.NewWorld(engine.WorldOptions{Epoch: testEpoch})
}

// stoppedContext makes Run flush the queue and return
func stoppedContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
	bodies [][]byte
	err    error
}

func (p *fakePublisher) Publish(topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.bodies = append(p.bodies, payload)
	return p.err
}

type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

type fakeExecer struct {
	mu      sync.Mutex
	queries []string
	args    [][]any
	err     error
}

func (e *fakeExecer) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queries = append(e.queries, query)
	e.args = append(e.args, args)
	if e.err != nil {
		return nil, e.err
	}
	return fakeResult{}, nil
}

func resolvedPayload() *event.TaskPayload {
	return &event.TaskPayload{
		Station:    "desk",
		Task:       "file report",
		Required:   "Blue",
		State:      component.TaskResolved,
		Activation: 2,
		Amount:     5 * time.Second,
		Elapsed:    4 * time.Second,
	}
}

func TestStatusCounter(t *testing.T) {
	w := newTestWorld()
	w.RegisterHandler(NewStatusCounter(w))

	w.PushEvent(event.EventTaskResolved, resolvedPayload())
	w.PushEvent(event.EventTaskResolved, resolvedPayload())
	w.PushEvent(event.EventSpawnSkipped, &event.SpawnPayload{Interval: time.Second})
	w.Step(0)

	snap := w.Status.Snapshot()
	if snap["events.task_resolved"] != int64(2) {
		t.Errorf("Expected 2 resolved events counted, got %v", snap["events.task_resolved"])
	}
	if snap["events.spawn_skipped"] != int64(1) {
		t.Errorf("Expected 1 skip counted, got %v", snap["events.spawn_skipped"])
	}
	if snap["events.time_out"] != int64(0) {
		t.Errorf("Expected registered zero counter, got %v", snap["events.time_out"])
	}
	if snap["task.last_resolved"] != "desk/file report" {
		t.Errorf("Expected last resolved task, got %v", snap["task.last_resolved"])
	}
}

func TestEventStreamPublishesJSON(t *testing.T) {
	w := newTestWorld()
	pub := &fakePublisher{}
	stream := NewEventStream(pub, "deskrush/events", "s-1")
	w.RegisterHandler(stream)

	w.PushEvent(event.EventTaskResolved, resolvedPayload())
	w.Step(100 * time.Millisecond)

	if err := stream.Run(stoppedContext()); err != nil {
		t.Fatal(err)
	}

	if len(pub.topics) != 1 || pub.topics[0] != "deskrush/events/task_resolved" {
		t.Fatalf("Expected one task_resolved publish, got %v", pub.topics)
	}

	var msg struct {
		Session string          `json:"session"`
		Event   string          `json:"event"`
		Frame   int64           `json:"frame"`
		Time    time.Time       `json:"ts"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(pub.bodies[0], &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Session != "s-1" || msg.Event != "task_resolved" || msg.Frame != 0 {
		t.Errorf("Unexpected envelope %+v", msg)
	}
	if !msg.Time.Equal(testEpoch.Add(100 * time.Millisecond)) {
		t.Errorf("Expected game clock timestamp, got %v", msg.Time)
	}
	if !strings.Contains(string(msg.Payload), `"station":"desk"`) {
		t.Errorf("Expected task payload, got %s", msg.Payload)
	}

	sent, dropped, failed := stream.Stats()
	if sent != 1 || dropped != 0 || failed != 0 {
		t.Errorf("Expected 1/0/0, got %d/%d/%d", sent, dropped, failed)
	}
}

func TestEventStreamDropsWhenFull(t *testing.T) {
	w := newTestWorld()
	pub := &fakePublisher{err: errors.New("broker down")}
	stream := NewEventStream(pub, "t", "s")
	w.RegisterHandler(stream)

	for i := 0; i < streamBuffer+10; i++ {
		stream.HandleEvent(w, event.GameEvent{Type: event.EventSpawnSkipped, Payload: &event.SpawnPayload{}})
	}
	stream.Run(stoppedContext())

	sent, dropped, failed := stream.Stats()
	if sent != streamBuffer || dropped != 10 {
		t.Errorf("Expected %d sent and 10 dropped, got %d/%d", streamBuffer, sent, dropped)
	}
	if failed != streamBuffer {
		t.Errorf("Expected every publish failed, got %d", failed)
	}
}

func TestRecorderWritesRows(t *testing.T) {
	w := newTestWorld()
	db := &fakeExecer{}
	rec := NewRecorder(db, "s-1", testEpoch, 42)
	w.RegisterHandler(rec)

	w.PushEvent(event.EventTaskResolved, resolvedPayload())
	w.PushEvent(event.EventTaskActivated, resolvedPayload())
	w.PushEvent(event.EventTimeOut, &event.LevelPayload{Resolved: 1, Expired: 3, Elapsed: time.Minute})
	w.Step(0)

	rec.Run(stoppedContext())

	if len(db.queries) != 3 {
		t.Fatalf("Expected session, task and finish statements, got %d", len(db.queries))
	}
	if db.queries[0] != insertSession || db.args[0][2] != int64(42) {
		t.Errorf("Expected session insert first, got %q %v", db.queries[0], db.args[0])
	}
	if db.queries[1] != insertTask {
		t.Errorf("Expected task insert, got %q", db.queries[1])
	}
	task := db.args[1]
	if task[2] != "desk" || task[5] != "Resolved" || task[7] != int64(5000) {
		t.Errorf("Unexpected task row %v", task)
	}
	if db.queries[2] != finishSession || db.args[2][2] != "time_out" || db.args[2][4] != 3 {
		t.Errorf("Unexpected finish row %q %v", db.queries[2], db.args[2])
	}
}

func TestRecorderSurvivesWriteErrors(t *testing.T) {
	db := &fakeExecer{err: errors.New("connection refused")}
	rec := NewRecorder(db, "s", testEpoch, 1)
	rec.Run(stoppedContext())

	if _, _, failed := rec.Stats(); failed != 1 {
		t.Errorf("Expected one failed write, got %d", failed)
	}
}

func TestSchemaCoversStatements(t *testing.T) {
	for _, table := range []string{"deskrush_sessions", "deskrush_tasks"} {
		if !strings.Contains(Schema, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("Schema missing %s", table)
		}
	}
}
