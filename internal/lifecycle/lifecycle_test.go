package lifecycle

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/mock"
    "github.com/stretchr/testify/require"

    "github.com/emirsoy/lal-floor/internal/model"
    "github.com/emirsoy/lal-floor/internal/repository"
)

type mockStore struct {
    mock.Mock
}

func (m *mockStore) GetOrder(ctx context.Context, id uint64) (model.Order, error) {
    args := m.Called(ctx, id)
    return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockStore) UpdateOrderStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
    args := m.Called(ctx, id, status)
    return args.Error(0)
}

func (m *mockStore) SettleTableOrders(ctx context.Context, tableNo int) (int64, error) {
    args := m.Called(ctx, tableNo)
    return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) SettleCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
    args := m.Called(ctx, cutoff)
    return args.Get(0).(int64), args.Error(1)
}

func TestAdvanceLegalSteps(t *testing.T) {
    steps := []struct {
        from model.OrderStatus
        to   model.OrderStatus
    }{
        {model.OrderPending, model.OrderPreparing},
        {model.OrderPreparing, model.OrderServed},
        {model.OrderServed, model.OrderCompleted},
        {model.OrderCompleted, model.OrderSettled},
    }
    for _, s := range steps {
        t.Run(string(s.from)+" to "+string(s.to), func(t *testing.T) {
            store := new(mockStore)
            store.On("GetOrder", mock.Anything, uint64(7)).
                Return(model.Order{ID: 7, TableNo: 3, Status: s.from}, nil)
            store.On("UpdateOrderStatus", mock.Anything, uint64(7), s.to).Return(nil)

            got, err := NewManager(store).Advance(context.Background(), 7, s.to)
            require.NoError(t, err)
            assert.Equal(t, s.to, got.Status)
            assert.Equal(t, 3, got.TableNo)
            store.AssertExpectations(t)
        })
    }
}

func TestAdvanceRejectsSkip(t *testing.T) {
    store := new(mockStore)
    store.On("GetOrder", mock.Anything, uint64(7)).
        Return(model.Order{ID: 7, Status: model.OrderPending}, nil)

    _, err := NewManager(store).Advance(context.Background(), 7, model.OrderServed)
    require.ErrorIs(t, err, ErrIllegalTransition)

    // The store must never see a write for a rejected transition.
    store.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceRejectsRepeat(t *testing.T) {
    store := new(mockStore)
    store.On("GetOrder", mock.Anything, uint64(7)).
        Return(model.Order{ID: 7, Status: model.OrderPreparing}, nil)

    _, err := NewManager(store).Advance(context.Background(), 7, model.OrderPreparing)
    assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestAdvanceRejectsLeavingSettled(t *testing.T) {
    store := new(mockStore)
    store.On("GetOrder", mock.Anything, uint64(7)).
        Return(model.Order{ID: 7, Status: model.OrderSettled}, nil)

    _, err := NewManager(store).Advance(context.Background(), 7, model.OrderPending)
    assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestAdvanceMissingOrder(t *testing.T) {
    store := new(mockStore)
    store.On("GetOrder", mock.Anything, uint64(99)).
        Return(model.Order{}, repository.ErrNotFound)

    _, err := NewManager(store).Advance(context.Background(), 99, model.OrderPreparing)
    assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettleTable(t *testing.T) {
    store := new(mockStore)
    store.On("SettleTableOrders", mock.Anything, 12).Return(int64(3), nil)

    n, err := NewManager(store).SettleTable(context.Background(), 12)
    require.NoError(t, err)
    assert.Equal(t, int64(3), n)
}

func TestSettleTableAlreadyClean(t *testing.T) {
    store := new(mockStore)
    store.On("SettleTableOrders", mock.Anything, 12).Return(int64(0), nil)

    n, err := NewManager(store).SettleTable(context.Background(), 12)
    require.NoError(t, err)
    assert.Zero(t, n)
}

// retentionStore keeps orders in memory and settles the way the SQL
// does: only completed rows created strictly before the cutoff.
type retentionStore struct {
    orders map[uint64]*model.Order
}

func (s *retentionStore) GetOrder(ctx context.Context, id uint64) (model.Order, error) {
    if o, ok := s.orders[id]; ok {
        return *o, nil
    }
    return model.Order{}, repository.ErrNotFound
}

func (s *retentionStore) UpdateOrderStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
    if o, ok := s.orders[id]; ok {
        o.Status = status
        return nil
    }
    return repository.ErrNotFound
}

func (s *retentionStore) SettleTableOrders(ctx context.Context, tableNo int) (int64, error) {
    var n int64
    for _, o := range s.orders {
        if o.TableNo == tableNo && o.Status != model.OrderSettled {
            o.Status = model.OrderSettled
            n++
        }
    }
    return n, nil
}

func (s *retentionStore) SettleCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
    var n int64
    for _, o := range s.orders {
        if o.Status == model.OrderCompleted && o.CreatedAt.Before(cutoff) {
            o.Status = model.OrderSettled
            n++
        }
    }
    return n, nil
}

func TestAutoSettleRetentionBoundary(t *testing.T) {
    now := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
    store := &retentionStore{orders: map[uint64]*model.Order{
        1: {ID: 1, Status: model.OrderCompleted, CreatedAt: now.Add(-24*time.Hour - time.Minute)},
        2: {ID: 2, Status: model.OrderCompleted, CreatedAt: now.Add(-23*time.Hour - 59*time.Minute)},
        3: {ID: 3, Status: model.OrderServed, CreatedAt: now.Add(-25 * time.Hour)},
    }}

    n, err := NewManager(store).AutoSettle(context.Background(), now)
    require.NoError(t, err)
    assert.Equal(t, int64(1), n)

    assert.Equal(t, model.OrderSettled, store.orders[1].Status, "completed 24h01m ago must settle")
    assert.Equal(t, model.OrderCompleted, store.orders[2].Status, "completed 23h59m ago must not settle")
    assert.Equal(t, model.OrderServed, store.orders[3].Status, "non-completed orders are never swept")
}

func TestAutoSettleCutoff(t *testing.T) {
    now := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)

    store := new(mockStore)
    store.On("SettleCompletedBefore", mock.Anything, now.Add(-RetentionWindow)).
        Return(int64(2), nil)

    n, err := NewManager(store).AutoSettle(context.Background(), now)
    require.NoError(t, err)
    assert.Equal(t, int64(2), n)
    store.AssertExpectations(t)
}

func TestNewManagerRequiresStore(t *testing.T) {
    assert.Panics(t, func() { NewManager(nil) })
}
