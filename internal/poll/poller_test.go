package poll

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/emirsoy/lal-floor/internal/floor"
    "github.com/emirsoy/lal-floor/internal/model"
)

// flakySnapshot serves a fixed snapshot and can be switched to failing.
type flakySnapshot struct {
    mu     sync.Mutex
    snap   floor.Snapshot
    err    error
    calls  int
}

func (f *flakySnapshot) fetch(ctx context.Context) (floor.Snapshot, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.calls++
    return f.snap, f.err
}

func (f *flakySnapshot) set(snap floor.Snapshot, err error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.snap, f.err = snap, err
}

func (f *flakySnapshot) fetchCount() int {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.calls
}

func TestRunPublishesImmediately(t *testing.T) {
    src := &flakySnapshot{snap: floor.Snapshot{
        ActiveOrders: []model.Order{{ID: 1, TableNo: 5, Status: model.OrderPending}},
    }}
    p := New(time.Hour, 10, src.fetch)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go p.Run(ctx)

    require.Eventually(t, func() bool {
        return p.State().Tables != nil
    }, time.Second, 10*time.Millisecond)

    st := p.State()
    assert.Equal(t, model.TableOccupied, st.Tables[5])
    assert.Equal(t, model.TableAvailable, st.Tables[1])
    assert.False(t, st.Stale)
    assert.Len(t, st.Tables, 10)
}

func TestFetchFailureRetainsPreviousState(t *testing.T) {
    src := &flakySnapshot{snap: floor.Snapshot{
        ActiveOrders: []model.Order{{ID: 1, TableNo: 5, Status: model.OrderPending}},
    }}
    p := New(time.Hour, 10, src.fetch)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go p.Run(ctx)

    require.Eventually(t, func() bool {
        return p.State().Tables != nil
    }, time.Second, 10*time.Millisecond)
    healthy := p.State()

    src.set(floor.Snapshot{}, errors.New("connection refused"))
    p.Nudge()

    require.Eventually(t, func() bool {
        return p.State().Stale
    }, time.Second, 10*time.Millisecond)

    st := p.State()
    assert.Equal(t, healthy.Tables, st.Tables, "previous mapping must survive a failed fetch")
    assert.Equal(t, healthy.ComputedAt, st.ComputedAt)
    assert.Error(t, st.Err)

    // The loop keeps going: a recovered source clears the stale flag.
    src.set(floor.Snapshot{}, nil)
    p.Nudge()
    require.Eventually(t, func() bool {
        return !p.State().Stale
    }, time.Second, 10*time.Millisecond)
    assert.Equal(t, model.TableAvailable, p.State().Tables[5])
}

func TestNudgeTriggersOutOfCyclePass(t *testing.T) {
    src := &flakySnapshot{}
    // An hour-long interval: any extra pass must come from the nudge.
    p := New(time.Hour, 4, src.fetch)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go p.Run(ctx)

    require.Eventually(t, func() bool {
        return src.fetchCount() == 1
    }, time.Second, 10*time.Millisecond)

    p.Nudge()
    require.Eventually(t, func() bool {
        return src.fetchCount() >= 2
    }, time.Second, 10*time.Millisecond)
}

func TestNudgeNeverBlocks(t *testing.T) {
    src := &flakySnapshot{}
    p := New(time.Hour, 4, src.fetch)

    // No Run loop is draining; repeated nudges must still return.
    for i := 0; i < 100; i++ {
        p.Nudge()
    }
}

func TestPrepareHookRunsBeforeFetch(t *testing.T) {
    var mu sync.Mutex
    var order []string

    src := &flakySnapshot{}
    p := New(time.Hour, 4, func(ctx context.Context) (floor.Snapshot, error) {
        mu.Lock()
        order = append(order, "fetch")
        mu.Unlock()
        return src.fetch(ctx)
    }).WithPrepare(func(ctx context.Context) error {
        mu.Lock()
        order = append(order, "prepare")
        mu.Unlock()
        return nil
    })

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go p.Run(ctx)

    require.Eventually(t, func() bool {
        mu.Lock()
        defer mu.Unlock()
        return len(order) >= 2
    }, time.Second, 10*time.Millisecond)

    mu.Lock()
    defer mu.Unlock()
    assert.Equal(t, []string{"prepare", "fetch"}, order[:2])
}

func TestPrepareErrorDoesNotStopThePass(t *testing.T) {
    src := &flakySnapshot{}
    p := New(time.Hour, 4, src.fetch).WithPrepare(func(ctx context.Context) error {
        return errors.New("sweep failed")
    })

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go p.Run(ctx)

    require.Eventually(t, func() bool {
        st := p.State()
        return st.Tables != nil && !st.Stale
    }, time.Second, 10*time.Millisecond)
}

func TestObserverSeesEveryPass(t *testing.T) {
    var mu sync.Mutex
    var seen []State

    src := &flakySnapshot{}
    p := New(time.Hour, 4, src.fetch).WithObserver(func(st State) {
        mu.Lock()
        seen = append(seen, st)
        mu.Unlock()
    })

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go p.Run(ctx)

    require.Eventually(t, func() bool {
        mu.Lock()
        defer mu.Unlock()
        return len(seen) >= 1
    }, time.Second, 10*time.Millisecond)

    src.set(floor.Snapshot{}, errors.New("down"))
    p.Nudge()

    require.Eventually(t, func() bool {
        mu.Lock()
        defer mu.Unlock()
        return len(seen) >= 2 && seen[len(seen)-1].Stale
    }, time.Second, 10*time.Millisecond, "stale passes reach the observer too")
}

func TestNewRequiresFetch(t *testing.T) {
    assert.Panics(t, func() { New(time.Second, 4, nil) })
}
