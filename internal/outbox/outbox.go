package outbox

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/smokesense/internal/store"
)

const (
	lastSyncKey     = "last_sync_timestamp"
	defaultInterval = 5 * time.Minute
)

// Outbox tracks per-event sync state and drains unsynced events on a
// schedule. One Outbox per process; every event stays retryable until the
// remote accepts it, with no attempt cap.
type Outbox struct {
	store    *store.Store
	client   *Client
	log      *zap.Logger
	interval time.Duration

	mu       sync.Mutex
	draining bool
	timer    *time.Timer
}

// New returns an outbox over the given store. client may be nil; the
// outbox then degrades to local-only mode and marks events synced without
// any network call.
func New(st *store.Store, client *Client, interval time.Duration, log *zap.Logger) *Outbox {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Outbox{
		store:    st,
		client:   client,
		log:      log,
		interval: interval,
	}
}

// Schedule arms a single debounced drain. Repeated calls coalesce into one
// pending timer rather than queueing. With immediate set, any pending
// timer is cancelled and the drain runs synchronously now.
func (o *Outbox) Schedule(immediate bool) error {
	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	if !immediate {
		o.timer = time.AfterFunc(o.interval, func() {
			if err := o.Drain(context.Background()); err != nil {
				o.log.Warn("scheduled drain failed", zap.Error(err))
			}
		})
		o.mu.Unlock()
		return nil
	}
	o.mu.Unlock()

	return o.Drain(context.Background())
}

// Drain pushes every unsynced event, oldest first. A drain arriving while
// one is in progress is a no-op, not queued. Each event's outcome is
// independent: a failed POST leaves that event unsynced and the pass
// continues. Storage failures abort and propagate; network failures never
// do.
func (o *Outbox) Drain(ctx context.Context) error {
	o.mu.Lock()
	if o.draining {
		o.mu.Unlock()
		o.log.Debug("drain already in progress, skipping")
		return nil
	}
	o.draining = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.draining = false
		o.mu.Unlock()
	}()

	events, err := o.store.UnsyncedLogs()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		o.log.Debug("nothing to sync")
		return nil
	}

	o.log.Debug("draining outbox", zap.Int("events", len(events)))

	synced := 0
	for i := range events {
		ev := &events[i]
		if o.client != nil {
			if err := o.client.PushLog(ctx, ev); err != nil {
				// Stays unsynced; retried on the next drain.
				o.log.Warn("sync failed", zap.String("id", ev.ID), zap.Error(err))
				continue
			}
		}
		if err := o.store.MarkLogSynced(ev.ID); err != nil {
			return err
		}
		synced++
	}

	// Recorded after every full pass regardless of per-item outcomes.
	if err := o.store.SetSetting(lastSyncKey, strconv.FormatInt(time.Now().UnixMilli(), 10)); err != nil {
		return err
	}

	o.log.Info("drain complete",
		zap.Int("synced", synced),
		zap.Int("pending", len(events)-synced))
	return nil
}

// UnsyncedCount returns how many events still await the remote.
func (o *Outbox) UnsyncedCount() (int, error) {
	return o.store.CountUnsyncedLogs()
}

// LastSync returns when the last drain pass finished. ok is false when no
// drain has completed yet.
func (o *Outbox) LastSync() (t time.Time, ok bool, err error) {
	raw, ok, err := o.store.GetSetting(lastSyncKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	millis, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(millis), true, nil
}

// Stop clears any pending timer. An in-flight drain is not aborted.
func (o *Outbox) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}
