package session

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/presenter"
	"github.com/NetLive5/weblarek/pkg/errors"
)

type stubShop struct {
	release chan struct{} // when set, GetLotList waits for it
}

func (s *stubShop) GetLotList(ctx context.Context) ([]domain.Item, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []domain.Item{
		{ID: "a", Title: "Timer", Price: decimal.NewNullDecimal(decimal.NewFromInt(750))},
	}, nil
}

func (s *stubShop) GetLotItem(_ context.Context, id string) (domain.Item, error) {
	return domain.Item{ID: id, Title: "Timer", Description: "desc", Price: decimal.NewNullDecimal(decimal.NewFromInt(750))}, nil
}

func (s *stubShop) OrderLots(_ context.Context, order domain.Order) (domain.OrderResult, error) {
	return domain.OrderResult{ID: "1", Total: order.Total.Decimal}, nil
}

func factoryFor(shop presenter.Shop) Factory {
	return func(sched presenter.Scheduler) (*presenter.Presenter, error) {
		return presenter.Build(shop, sched, presenter.Options{}, nil)
	}
}

func TestLoop_Do(t *testing.T) {
	l := NewLoop(context.Background(), nil)
	defer l.Close()

	ran := false
	require.NoError(t, l.Do(context.Background(), func() error { ran = true; return nil }))
	assert.True(t, ran)

	boom := stderrors.New("boom")
	assert.ErrorIs(t, l.Do(context.Background(), func() error { return boom }), boom)

	err := l.Do(context.Background(), func() error { panic("bad") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")

	require.NoError(t, l.Do(context.Background(), func() error { return nil }), "loop survives a panicking task")
}

func TestLoop_DoAfterClose(t *testing.T) {
	l := NewLoop(context.Background(), nil)
	l.Close()

	assert.ErrorIs(t, l.Do(context.Background(), func() error { return nil }), ErrLoopClosed)
}

func TestLoop_SettleWaitsForChainedWork(t *testing.T) {
	l := NewLoop(context.Background(), nil)
	defer l.Close()

	release := make(chan struct{})
	var steps atomic.Int32

	require.NoError(t, l.Do(context.Background(), func() error {
		l.Go(func(ctx context.Context) func() {
			<-release
			return func() {
				steps.Add(1)
				l.Go(func(ctx context.Context) func() {
					return func() { steps.Add(1) }
				})
			}
		})
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Settle(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, l.Settle(context.Background()))
	assert.Equal(t, int32(2), steps.Load())
}

func TestLoop_SettleWhenIdle(t *testing.T) {
	l := NewLoop(context.Background(), nil)
	defer l.Close()

	assert.NoError(t, l.Settle(context.Background()))
}

func TestStore_CreateLoadsCatalog(t *testing.T) {
	store := NewStore(factoryFor(&stubShop{}), time.Minute, nil)
	defer store.Close()

	sess, err := store.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, store.Len())

	screen, err := sess.Act(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, screen.Page.Catalog, 1)
	assert.Equal(t, "750 synapses", screen.Page.Catalog[0].Price)
}

func TestStore_CreateWaitsForSlowCatalog(t *testing.T) {
	shop := &stubShop{release: make(chan struct{})}
	store := NewStore(factoryFor(shop), time.Minute, nil)
	defer store.Close()

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(shop.release)
	}()
	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	screen, err := sess.Act(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, screen.Page.Catalog, 1)
}

func TestSession_Act(t *testing.T) {
	store := NewStore(factoryFor(&stubShop{}), time.Minute, nil)
	defer store.Close()
	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	screen, err := sess.Act(context.Background(), func(p *presenter.Presenter) error {
		return p.SelectCard("a")
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepPreview, screen.Step)
	assert.True(t, screen.Modal.Active)

	_, err = sess.Act(context.Background(), func(p *presenter.Presenter) error {
		return p.CloseSuccess()
	})
	var transition *errors.ErrInvalidStateTransition
	assert.True(t, stderrors.As(err, &transition))
}

func TestStore_GetAndDelete(t *testing.T) {
	store := NewStore(factoryFor(&stubShop{}), time.Minute, nil)
	defer store.Close()
	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	assert.True(t, store.Delete(sess.ID))
	assert.False(t, store.Delete(sess.ID))

	_, err = store.Get(sess.ID)
	var notFound *errors.ErrNotFound
	require.True(t, stderrors.As(err, &notFound))
	assert.Equal(t, "session", notFound.Resource)
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(factoryFor(&stubShop{}), time.Minute, nil)
	defer store.Close()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	idle, err := store.Create(context.Background())
	require.NoError(t, err)
	active, err := store.Create(context.Background())
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	_, err = store.Get(active.ID)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, err = store.Get(idle.ID)
	assert.Error(t, err)
	_, err = store.Get(active.ID)
	assert.NoError(t, err)
}

func TestStore_FactoryError(t *testing.T) {
	boom := stderrors.New("no views")
	store := NewStore(func(presenter.Scheduler) (*presenter.Presenter, error) { return nil, boom }, time.Minute, nil)
	defer store.Close()

	_, err := store.Create(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.Len())
}
