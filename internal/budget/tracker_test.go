package budget

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "smokesense.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return New(st), st
}

func logToday(t *testing.T, st *store.Store, n int) {
	t.Helper()
	now := time.Now()
	for i := 0; i < n; i++ {
		ev := &model.LogEvent{
			ID:        fmt.Sprintf("b-%d-%d", now.UnixMilli(), i),
			Timestamp: now.UnixMilli() + int64(i),
		}
		if err := st.InsertLog(ev); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSetLimitAndGet(t *testing.T) {
	tr, _ := newTestTracker(t)

	b, err := tr.SetLimit(10)
	if err != nil {
		t.Fatalf("SetLimit: %v", err)
	}
	if b.DailyLimit != 10 || b.CreatedAt == 0 {
		t.Fatalf("budget = %+v", b)
	}

	// Updating keeps the original creation time.
	time.Sleep(2 * time.Millisecond)
	updated, err := tr.SetLimit(8)
	if err != nil {
		t.Fatal(err)
	}
	if updated.CreatedAt != b.CreatedAt {
		t.Errorf("CreatedAt changed: %d -> %d", b.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt < b.UpdatedAt {
		t.Errorf("UpdatedAt went backwards")
	}

	got, err := tr.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.DailyLimit != 8 {
		t.Fatalf("Get = %+v, want limit 8", got)
	}
}

func TestSetLimit_Invalid(t *testing.T) {
	tr, _ := newTestTracker(t)

	for _, limit := range []int{0, -3} {
		if _, err := tr.SetLimit(limit); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("SetLimit(%d) err = %v, want ErrInvalidLimit", limit, err)
		}
	}
}

func TestGet_NoBudget(t *testing.T) {
	tr, _ := newTestTracker(t)

	b, err := tr.Get()
	if err != nil {
		t.Fatal(err)
	}
	if b != nil {
		t.Fatalf("Get = %+v, want nil", b)
	}
}

func TestStatus(t *testing.T) {
	tr, st := newTestTracker(t)

	if _, err := tr.SetLimit(10); err != nil {
		t.Fatal(err)
	}
	logToday(t, st, 3)

	status, err := tr.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.TodayCount != 3 {
		t.Errorf("TodayCount = %d, want 3", status.TodayCount)
	}
	if status.Percentage != 30 {
		t.Errorf("Percentage = %v, want 30", status.Percentage)
	}
	if status.Remaining != 7 {
		t.Errorf("Remaining = %d, want 7", status.Remaining)
	}
}

func TestStatus_OverLimitCaps(t *testing.T) {
	tr, st := newTestTracker(t)

	if _, err := tr.SetLimit(2); err != nil {
		t.Fatal(err)
	}
	logToday(t, st, 5)

	status, err := tr.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.Percentage != 100 {
		t.Errorf("Percentage = %v, want capped at 100", status.Percentage)
	}
	if status.Remaining != 0 {
		t.Errorf("Remaining = %d, want floored at 0", status.Remaining)
	}

	over, err := tr.IsOverBudget()
	if err != nil {
		t.Fatal(err)
	}
	if !over {
		t.Error("IsOverBudget = false, want true")
	}
}

func TestStatus_NoBudget(t *testing.T) {
	tr, st := newTestTracker(t)
	logToday(t, st, 2)

	status, err := tr.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status != nil {
		t.Fatalf("Status = %+v, want nil without a budget", status)
	}

	over, err := tr.IsOverBudget()
	if err != nil {
		t.Fatal(err)
	}
	if over {
		t.Error("IsOverBudget without budget = true, want false")
	}
}

func TestClear(t *testing.T) {
	tr, _ := newTestTracker(t)

	if _, err := tr.SetLimit(5); err != nil {
		t.Fatal(err)
	}
	if err := tr.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	b, err := tr.Get()
	if err != nil {
		t.Fatal(err)
	}
	if b != nil {
		t.Fatalf("budget survived Clear: %+v", b)
	}
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2026, 8, 20, 14, 30, 0, 0, time.Local)
	start, end := DayBounds(ts)

	wantStart := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local).UnixMilli()
	if start != wantStart {
		t.Errorf("start = %d, want %d", start, wantStart)
	}
	if end-start != 24*60*60*1000-1 {
		t.Errorf("span = %d ms, want 86399999", end-start)
	}
}
