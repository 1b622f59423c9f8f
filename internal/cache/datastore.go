// Package cache хранит справочные коллекции консоли между командами одного процесса:
// сотрудники биометрической системы, учетные записи, подразделения и метрики посещаемости.
package cache

import (
	"context"
	"sync"
	"time"

	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/metrics"
	"RRHHPlatform/pkg/logger"
)

// TTL окно свежести коллекций
const TTL = 5 * time.Minute

// Имена коллекций в логах и метриках
const (
	CollectionUsers       = "users"
	CollectionAuthUsers   = "auth_users"
	CollectionDepartments = "departments"
	CollectionMetrics     = "metrics"
)

// UsersSource источник сотрудников биометрической системы
type UsersSource interface {
	List(ctx context.Context, q domain.UserQuery) (*domain.Page[domain.BiometricUser], error)
}

// AuthUsersSource источник учетных записей
type AuthUsersSource interface {
	ListUsers(ctx context.Context) ([]domain.AuthUser, error)
}

// DepartmentsSource источник подразделений
type DepartmentsSource interface {
	List(ctx context.Context) ([]domain.Department, error)
}

// MetricsSource источник метрик посещаемости
type MetricsSource interface {
	AttendanceMetrics(ctx context.Context, r domain.DateRange) (*domain.AttendanceMetrics, error)
}

// Sources источники данных хранилища
type Sources struct {
	Users       UsersSource
	AuthUsers   AuthUsersSource
	Departments DepartmentsSource
	Metrics     MetricsSource
}

// Option настраивает DataStore
type Option func(*DataStore)

// WithClock подменяет часы (в тестах)
func WithClock(now func() time.Time) Option {
	return func(s *DataStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger задает логгер
func WithLogger(log logger.Logger) Option {
	return func(s *DataStore) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithMetrics подключает счетчики попаданий кэша
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(s *DataStore) {
		s.metrics = m
	}
}

type collection[T any] struct {
	items     []T
	fetchedAt time.Time
	loading   bool
}

func (c *collection[T]) fresh(now time.Time) bool {
	return len(c.items) > 0 && now.Sub(c.fetchedAt) < TTL
}

// DataStore кэш коллекций. Ошибки загрузки логируются, прежнее состояние сохраняется.
// Одновременные загрузки одной коллекции не объединяются: побеждает последняя.
type DataStore struct {
	sources Sources
	logger  logger.Logger
	metrics *metrics.ClientMetrics
	now     func() time.Time

	mu          sync.RWMutex
	users       collection[domain.BiometricUser]
	authUsers   collection[domain.AuthUser]
	departments collection[domain.Department]

	metricsKey     string
	metricsTotals  domain.MetricsTotals
	metricsRecords []map[string]any
	metricsLoading bool

	// gen растет при каждом Reset; результаты загрузок прежнего поколения отбрасываются
	gen uint64
}

// NewDataStore создает пустой кэш
func NewDataStore(sources Sources, opts ...Option) *DataStore {
	s := &DataStore{
		sources: sources,
		logger:  logger.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.String("component", "cache"))
	return s
}

// FetchUsers загружает сотрудников, если кэш пуст, устарел или force
func (s *DataStore) FetchUsers(ctx context.Context, force bool) {
	fetch(ctx, s, CollectionUsers, &s.users, force, func(ctx context.Context) ([]domain.BiometricUser, error) {
		page, err := s.sources.Users.List(ctx, domain.UserQuery{})
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	})
}

// FetchAuthUsers загружает учетные записи
func (s *DataStore) FetchAuthUsers(ctx context.Context, force bool) {
	fetch(ctx, s, CollectionAuthUsers, &s.authUsers, force, s.sources.AuthUsers.ListUsers)
}

// FetchDepartments загружает подразделения
func (s *DataStore) FetchDepartments(ctx context.Context, force bool) {
	fetch(ctx, s, CollectionDepartments, &s.departments, force, s.sources.Departments.List)
}

// FetchAll загружает три коллекции параллельно и ждет завершения всех
func (s *DataStore) FetchAll(ctx context.Context, force bool) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		s.FetchUsers(ctx, force)
	}()
	go func() {
		defer wg.Done()
		s.FetchAuthUsers(ctx, force)
	}()
	go func() {
		defer wg.Done()
		s.FetchDepartments(ctx, force)
	}()
	wg.Wait()
}

func fetch[T any](ctx context.Context, s *DataStore, name string, c *collection[T], force bool, load func(context.Context) ([]T, error)) {
	now := s.now()

	s.mu.Lock()
	if !force && c.fresh(now) {
		s.mu.Unlock()
		s.metrics.CacheLookup(name, true)
		s.logger.Debug("Cache hit", logger.String("collection", name))
		return
	}
	c.loading = true
	gen := s.gen
	s.mu.Unlock()

	s.metrics.CacheLookup(name, false)

	items, err := load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Debug("Cache reset during refresh, dropping result", logger.String("collection", name))
		return
	}
	c.loading = false

	if err != nil {
		s.logger.Warn("Cache refresh failed, keeping previous data",
			logger.String("collection", name),
			logger.Error(err))
		return
	}

	if items == nil {
		items = make([]T, 0)
	}
	c.items = items
	c.fetchedAt = now

	s.logger.Debug("Cache refreshed",
		logger.String("collection", name),
		logger.Int("count", len(items)))
}

func metricsKey(desde, hasta string) string {
	return desde + "|" + hasta
}

// FetchMetrics загружает метрики посещаемости за период. Повторный запрос того же
// периода не идет в сеть, если есть записи или ненулевое число пунктуальных отметок.
func (s *DataStore) FetchMetrics(ctx context.Context, desde, hasta string) {
	key := metricsKey(desde, hasta)

	s.mu.Lock()
	if s.metricsKey == key && (len(s.metricsRecords) > 0 || s.metricsTotals.Puntual > 0) {
		s.mu.Unlock()
		s.metrics.CacheLookup(CollectionMetrics, true)
		return
	}
	s.metricsLoading = true
	gen := s.gen
	s.mu.Unlock()

	s.metrics.CacheLookup(CollectionMetrics, false)

	m, err := s.sources.Metrics.AttendanceMetrics(ctx, domain.DateRange{FechaInicio: desde, FechaFin: hasta})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Debug("Cache reset during refresh, dropping result", logger.String("collection", CollectionMetrics))
		return
	}
	s.metricsLoading = false

	if err != nil {
		s.logger.Warn("Metrics refresh failed, keeping previous data",
			logger.String("desde", desde),
			logger.String("hasta", hasta),
			logger.Error(err))
		return
	}

	records := m.Data
	if records == nil {
		records = make([]map[string]any, 0)
	}
	s.metricsTotals = m.Totales
	s.metricsRecords = records
	s.metricsKey = key
}

// Users возвращает копию закэшированных сотрудников
func (s *DataStore) Users() []domain.BiometricUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.users.items)
}

// AuthUsers возвращает копию закэшированных учетных записей
func (s *DataStore) AuthUsers() []domain.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.authUsers.items)
}

// Departments возвращает копию закэшированных подразделений
func (s *DataStore) Departments() []domain.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.departments.items)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Metrics возвращает итоги последнего загруженного периода
func (s *DataStore) Metrics() domain.MetricsTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metricsTotals
}

// AttendanceRecords возвращает записи последнего загруженного периода
func (s *DataStore) AttendanceRecords() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.metricsRecords)
}

// Loading сообщает, идет ли загрузка коллекции
func (s *DataStore) Loading(collection string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch collection {
	case CollectionUsers:
		return s.users.loading
	case CollectionAuthUsers:
		return s.authUsers.loading
	case CollectionDepartments:
		return s.departments.loading
	case CollectionMetrics:
		return s.metricsLoading
	}
	return false
}

// InvalidateUsers сбрасывает отметку свежести сотрудников
func (s *DataStore) InvalidateUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.fetchedAt = time.Time{}
}

// InvalidateAuthUsers сбрасывает отметку свежести учетных записей
func (s *DataStore) InvalidateAuthUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authUsers.fetchedAt = time.Time{}
}

// InvalidateDepartments сбрасывает отметку свежести подразделений
func (s *DataStore) InvalidateDepartments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments.fetchedAt = time.Time{}
}

// InvalidateMetrics забывает ключ периода, следующий FetchMetrics пойдет в сеть
func (s *DataStore) InvalidateMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metricsKey = ""
}

// Reset очищает все коллекции (выход из сессии)
func (s *DataStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.users = collection[domain.BiometricUser]{}
	s.authUsers = collection[domain.AuthUser]{}
	s.departments = collection[domain.Department]{}
	s.metricsKey = ""
	s.metricsTotals = domain.MetricsTotals{}
	s.metricsRecords = nil
	s.metricsLoading = false
}
