// Package poll provides the synchronization loop shared by every client
// process: a timer drives fetch, recompute and publish against the shared
// store, with an optional out-of-cycle nudge fed by change notifications.
// Each client runs its own Poller; there is no shared state across
// processes, and every loop computes the same mapping from the same
// snapshot because the reconciler is pure.
package poll

import (
    "context"
    "log"
    "sync"
    "time"

    "github.com/emirsoy/lal-floor/internal/floor"
    "github.com/emirsoy/lal-floor/internal/model"
)

// State is the published result of the most recent reconciliation pass.
// When a fetch fails the previous Tables mapping is retained unchanged and
// Stale is set; tables are never silently reset to available.
type State struct {
    Tables     map[int]model.TableStatus // total mapping over 1..N
    ComputedAt time.Time                 // when Tables was last successfully recomputed
    Stale      bool                      // true while the latest fetch has failed
    Err        error                     // error from the latest cycle, nil on success
}

// SnapshotFunc fetches one consistent snapshot of the three signal
// sources.  An error means the whole fetch failed; the poller never
// applies a partial snapshot.
type SnapshotFunc func(ctx context.Context) (floor.Snapshot, error)

// Poller runs the loop.  Construct with New, then Run on a goroutine (or
// let it block, for display-style clients).
type Poller struct {
    interval   time.Duration
    tableCount int
    fetch      SnapshotFunc
    prepare    func(ctx context.Context) error
    onState    func(State)
    nudge      chan struct{}

    mu    sync.RWMutex
    state State
}

// New builds a Poller.  interval falls back to the reference 3 seconds
// when non-positive; fetch must be non-nil.
func New(interval time.Duration, tableCount int, fetch SnapshotFunc) *Poller {
    if fetch == nil {
        panic("nil fetch passed to poll.New")
    }
    if interval <= 0 {
        interval = 3 * time.Second
    }
    return &Poller{
        interval:   interval,
        tableCount: tableCount,
        fetch:      fetch,
        nudge:      make(chan struct{}, 1),
    }
}

// WithPrepare installs a housekeeping hook that runs before each fetch.
// The server loop uses it for retention-driven auto-settlement.  A hook
// error is logged and the pass continues; housekeeping never stops the
// loop.
func (p *Poller) WithPrepare(fn func(ctx context.Context) error) *Poller {
    p.prepare = fn
    return p
}

// WithObserver installs a callback invoked with the state after every
// pass, including stale ones.  Display clients render from it.
func (p *Poller) WithObserver(fn func(State)) *Poller {
    p.onState = fn
    return p
}

// Nudge requests an out-of-cycle pass.  It never blocks; while a nudge is
// already pending, further nudges collapse into it.  Change-notification
// consumers call this, and handlers call it after their own writes.
func (p *Poller) Nudge() {
    select {
    case p.nudge <- struct{}{}:
    default:
    }
}

// State returns the most recently published state.  The Tables map is
// replaced wholesale on each successful pass and never mutated in place,
// so callers may read it without copying.
func (p *Poller) State() State {
    p.mu.RLock()
    defer p.mu.RUnlock()
    return p.state
}

// Run executes one pass immediately, then keeps ticking until ctx is
// cancelled.  No cycle outcome terminates the loop: fetch failures retain
// the previous mapping and the next tick proceeds as normal.
func (p *Poller) Run(ctx context.Context) {
    p.pass(ctx)
    t := time.NewTicker(p.interval)
    defer t.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-t.C:
        case <-p.nudge:
        }
        p.pass(ctx)
    }
}

func (p *Poller) pass(ctx context.Context) {
    if p.prepare != nil {
        if err := p.prepare(ctx); err != nil {
            log.Printf("floor-sync: pre-pass housekeeping failed: %v", err)
        }
    }
    now := time.Now()
    snap, err := p.fetch(ctx)

    p.mu.Lock()
    if err != nil {
        p.state.Stale = true
        p.state.Err = err
    } else {
        p.state = State{
            Tables:     floor.Reconcile(snap, now, p.tableCount),
            ComputedAt: now,
        }
    }
    st := p.state
    p.mu.Unlock()

    if err != nil {
        log.Printf("floor-sync: fetch failed, keeping previous floor state: %v", err)
    }
    if p.onState != nil {
        p.onState(st)
    }
}
