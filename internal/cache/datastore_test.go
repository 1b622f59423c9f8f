package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/metrics"
	"RRHHPlatform/pkg/logger"
	pkgmetrics "RRHHPlatform/pkg/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeUsers struct {
	calls atomic.Int32
	err   error
	items []domain.BiometricUser
}

func (f *fakeUsers) List(_ context.Context, _ domain.UserQuery) (*domain.Page[domain.BiometricUser], error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Page[domain.BiometricUser]{Data: f.items, Total: len(f.items)}, nil
}

type fakeAuthUsers struct {
	calls atomic.Int32
}

func (f *fakeAuthUsers) ListUsers(_ context.Context) ([]domain.AuthUser, error) {
	f.calls.Add(1)
	return []domain.AuthUser{{ID: "a1", Usuario: "70000001"}}, nil
}

type fakeDepartments struct {
	calls atomic.Int32
}

func (f *fakeDepartments) List(_ context.Context) ([]domain.Department, error) {
	f.calls.Add(1)
	return []domain.Department{{ID: 1, Nombre: "TI"}}, nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	ranges []domain.DateRange
	resp   *domain.AttendanceMetrics
	err    error
}

func (f *fakeMetrics) AttendanceMetrics(_ context.Context, r domain.DateRange) (*domain.AttendanceMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges = append(f.ranges, r)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeMetrics) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ranges)
}

// clock управляемые часы
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store       *DataStore
	users       *fakeUsers
	authUsers   *fakeAuthUsers
	departments *fakeDepartments
	metrics     *fakeMetrics
	clock       *clock
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		users:       &fakeUsers{items: []domain.BiometricUser{{ID: 1, UserID: "70000001", Nombre: "Ana"}}},
		authUsers:   &fakeAuthUsers{},
		departments: &fakeDepartments{},
		metrics: &fakeMetrics{resp: &domain.AttendanceMetrics{
			Totales: domain.MetricsTotals{Puntual: 4},
			Data:    []map[string]any{{"dni": "70000001"}},
		}},
		clock: &clock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)},
	}

	opts = append([]Option{WithClock(f.clock.Now)}, opts...)
	f.store = NewDataStore(Sources{
		Users:       f.users,
		AuthUsers:   f.authUsers,
		Departments: f.departments,
		Metrics:     f.metrics,
	}, opts...)
	return f
}

func TestFetchUsers_CachedWithinTTL(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchUsers(ctx, false)
	f.clock.Advance(4 * time.Minute)
	f.store.FetchUsers(ctx, false)

	assert.Equal(t, int32(1), f.users.calls.Load())
	assert.Len(t, f.store.Users(), 1)
}

func TestFetchUsers_Force(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchUsers(ctx, false)
	f.store.FetchUsers(ctx, true)

	assert.Equal(t, int32(2), f.users.calls.Load())
}

func TestFetchUsers_Expired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchUsers(ctx, false)
	f.clock.Advance(TTL)
	f.store.FetchUsers(ctx, false)

	assert.Equal(t, int32(2), f.users.calls.Load())
}

func TestFetchUsers_EmptyCollectionIsNotAHit(t *testing.T) {
	f := newFixture()
	f.users.items = nil
	ctx := context.Background()

	f.store.FetchUsers(ctx, false)
	f.store.FetchUsers(ctx, false)

	assert.Equal(t, int32(2), f.users.calls.Load())
	assert.NotNil(t, f.store.Users())
	assert.Empty(t, f.store.Users())
}

func TestFetchUsers_ErrorKeepsPreviousState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchUsers(ctx, false)
	require.Len(t, f.store.Users(), 1)

	f.users.err = errors.New("backend down")
	f.store.FetchUsers(ctx, true)

	assert.Len(t, f.store.Users(), 1)
	assert.False(t, f.store.Loading(CollectionUsers))
	assert.Equal(t, int32(2), f.users.calls.Load())
}

func TestInvalidate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchAll(ctx, false)
	f.store.InvalidateUsers()
	f.store.InvalidateDepartments()
	f.store.FetchAll(ctx, false)

	assert.Equal(t, int32(2), f.users.calls.Load())
	assert.Equal(t, int32(1), f.authUsers.calls.Load())
	assert.Equal(t, int32(2), f.departments.calls.Load())

	f.store.InvalidateAuthUsers()
	f.store.FetchAuthUsers(ctx, false)
	assert.Equal(t, int32(2), f.authUsers.calls.Load())
}

func TestFetchAll(t *testing.T) {
	f := newFixture()

	f.store.FetchAll(context.Background(), false)

	assert.Equal(t, int32(1), f.users.calls.Load())
	assert.Equal(t, int32(1), f.authUsers.calls.Load())
	assert.Equal(t, int32(1), f.departments.calls.Load())
	assert.Len(t, f.store.AuthUsers(), 1)
	assert.Len(t, f.store.Departments(), 1)
}

func TestFetchMetrics_SameRange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")

	assert.Equal(t, 1, f.metrics.calls())
	assert.Equal(t, 4, f.store.Metrics().Puntual)
	assert.Len(t, f.store.AttendanceRecords(), 1)
}

func TestFetchMetrics_DifferentRange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	f.store.FetchMetrics(ctx, "2026-09-01", "2026-09-30")

	require.Equal(t, 2, f.metrics.calls())
	assert.Equal(t, "2026-09-01", f.metrics.ranges[1].FechaInicio)
	assert.Equal(t, "2026-09-30", f.metrics.ranges[1].FechaFin)
}

func TestFetchMetrics_EmptyResultRefetches(t *testing.T) {
	f := newFixture()
	f.metrics.resp = &domain.AttendanceMetrics{}
	ctx := context.Background()

	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")

	assert.Equal(t, 2, f.metrics.calls())
}

func TestFetchMetrics_ErrorKeepsPreviousState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	f.metrics.err = errors.New("timeout")
	f.store.FetchMetrics(ctx, "2026-09-01", "2026-09-30")

	assert.Equal(t, 4, f.store.Metrics().Puntual)

	// Ключ остается прежним: повтор исходного периода не идет в сеть
	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	assert.Equal(t, 2, f.metrics.calls())
}

func TestReset(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.FetchAll(ctx, false)
	f.store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	f.store.Reset()

	assert.Empty(t, f.store.Users())
	assert.Empty(t, f.store.AuthUsers())
	assert.Empty(t, f.store.Departments())
	assert.Empty(t, f.store.AttendanceRecords())
	assert.Zero(t, f.store.Metrics().Puntual)

	f.store.FetchUsers(ctx, false)
	assert.Equal(t, int32(2), f.users.calls.Load())
}

// gatedUsers отвечает только после закрытия release
type gatedUsers struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedUsers) List(ctx context.Context, _ domain.UserQuery) (*domain.Page[domain.BiometricUser], error) {
	close(g.started)
	<-g.release
	return &domain.Page[domain.BiometricUser]{Data: []domain.BiometricUser{{ID: 9, Nombre: "Sesión anterior"}}}, nil
}

func TestReset_DropsInFlightResult(t *testing.T) {
	users := &gatedUsers{started: make(chan struct{}), release: make(chan struct{})}
	metricsSrc := &fakeMetrics{resp: &domain.AttendanceMetrics{Totales: domain.MetricsTotals{Puntual: 3}}}
	store := NewDataStore(Sources{Users: users, Metrics: metricsSrc})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.FetchUsers(ctx, false)
	}()

	<-users.started
	require.True(t, store.Loading(CollectionUsers))
	store.Reset()
	close(users.release)
	<-done

	assert.Empty(t, store.Users())
	assert.False(t, store.Loading(CollectionUsers))

	// Загрузки после сброса сохраняются как обычно
	store.FetchMetrics(ctx, "2026-10-01", "2026-10-31")
	assert.Equal(t, 3, store.Metrics().Puntual)
}

func TestCacheMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(pkgmetrics.NewMetrics("rrhh_test", registry), logger.NewNop())
	f := newFixture(WithMetrics(m))
	ctx := context.Background()

	f.store.FetchUsers(ctx, false)
	f.store.FetchUsers(ctx, false)
	f.store.FetchUsers(ctx, false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookups.WithLabelValues(CollectionUsers, "miss")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheLookups.WithLabelValues(CollectionUsers, "hit")))
}
