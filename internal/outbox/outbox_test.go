package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "smokesense.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedLogs(t *testing.T, st *store.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ev := &model.LogEvent{
			ID:        fmt.Sprintf("ob-%d", i),
			Timestamp: int64(1000 * (i + 1)),
		}
		if err := st.InsertLog(ev); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDrain_LocalOnly(t *testing.T) {
	st := newTestStore(t)
	seedLogs(t, st, 3)

	ob := New(st, nil, time.Minute, zap.NewNop())
	if err := ob.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	pending, err := ob.UnsyncedCount()
	if err != nil {
		t.Fatal(err)
	}
	if pending != 0 {
		t.Errorf("pending = %d, want 0 (local-only marks synced directly)", pending)
	}

	if _, ok, err := ob.LastSync(); err != nil || !ok {
		t.Errorf("LastSync after drain: ok=%t err=%v, want recorded", ok, err)
	}
}

func TestDrain_EmptySkipsLastSync(t *testing.T) {
	st := newTestStore(t)

	ob := New(st, nil, time.Minute, zap.NewNop())
	if err := ob.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if _, ok, _ := ob.LastSync(); ok {
		t.Error("LastSync recorded for a drain that pushed nothing")
	}
}

func TestDrain_PushesToRemote(t *testing.T) {
	st := newTestStore(t)
	seedLogs(t, st, 2)

	var mu sync.Mutex
	var gotIDs []string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logs" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var ev model.LogEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		mu.Lock()
		gotIDs = append(gotIDs, ev.ID)
		gotAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second)
	ob := New(st, client, time.Minute, zap.NewNop())

	if err := ob.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(gotIDs) != 2 {
		t.Fatalf("remote received %d events, want 2", len(gotIDs))
	}
	// Oldest first.
	if gotIDs[0] != "ob-0" || gotIDs[1] != "ob-1" {
		t.Errorf("order = %v, want [ob-0 ob-1]", gotIDs)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	pending, err := ob.UnsyncedCount()
	if err != nil {
		t.Fatal(err)
	}
	if pending != 0 {
		t.Errorf("pending = %d, want 0", pending)
	}
}

func TestDrain_FailureIsolation(t *testing.T) {
	st := newTestStore(t)
	seedLogs(t, st, 3)

	// Reject only the middle event; the others must still sync.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev model.LogEvent
		_ = json.NewDecoder(r.Body).Decode(&ev)
		if ev.ID == "ob-1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ob := New(st, NewClient(srv.URL, "", time.Second), time.Minute, zap.NewNop())
	if err := ob.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	pending, err := st.UnsyncedLogs()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != "ob-1" {
		t.Fatalf("pending = %+v, want only ob-1", pending)
	}

	// Last sync is still recorded after a pass with failures.
	if _, ok, _ := ob.LastSync(); !ok {
		t.Error("LastSync missing after partial drain")
	}
}

func TestDrain_OverlapIsNoOp(t *testing.T) {
	st := newTestStore(t)
	seedLogs(t, st, 1)

	release := make(chan struct{})
	var requests int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ob := New(st, NewClient(srv.URL, "", 5*time.Second), time.Minute, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- ob.Drain(context.Background()) }()

	// Wait for the first drain to reach the remote, then overlap.
	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := requests
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first drain never reached the server")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := ob.Drain(context.Background()); err != nil {
		t.Fatalf("overlapping Drain: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Drain: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requests != 1 {
		t.Errorf("requests = %d, overlapping drain should not have pushed", requests)
	}
}

func TestSchedule_CoalescesAndStops(t *testing.T) {
	st := newTestStore(t)
	seedLogs(t, st, 1)

	ob := New(st, nil, time.Hour, zap.NewNop())
	if err := ob.Schedule(false); err != nil {
		t.Fatal(err)
	}
	if err := ob.Schedule(false); err != nil {
		t.Fatal(err)
	}
	ob.Stop()

	ob.mu.Lock()
	defer ob.mu.Unlock()
	if ob.timer != nil {
		t.Error("timer survived Stop")
	}
}

func TestSchedule_Immediate(t *testing.T) {
	st := newTestStore(t)
	seedLogs(t, st, 2)

	ob := New(st, nil, time.Hour, zap.NewNop())
	if err := ob.Schedule(true); err != nil {
		t.Fatalf("Schedule(true): %v", err)
	}

	pending, err := ob.UnsyncedCount()
	if err != nil {
		t.Fatal(err)
	}
	if pending != 0 {
		t.Errorf("pending = %d, immediate schedule should have drained", pending)
	}
}

func TestClient_NilOnEmptyEndpoint(t *testing.T) {
	if c := NewClient("", "key", time.Second); c != nil {
		t.Error("NewClient with empty endpoint should be nil")
	}
	if c := NewClient("   ", "", 0); c != nil {
		t.Error("NewClient with blank endpoint should be nil")
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", time.Second)
	err := c.PushLog(context.Background(), &model.LogEvent{ID: "x", Timestamp: 1})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
