package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// HealthChecker интерфейс для проверки здоровья сервиса
type HealthChecker interface {
	Check(ctx context.Context) *HealthStatus
}

// HealthStatus представляет статус здоровья сервиса
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]Status `json:"services,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// Status представляет статус зависимости
type Status struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Probe проверяет одну зависимость (бэкенд, Redis)
type Probe func(ctx context.Context) error

// CompositeHealthChecker опрашивает набор зависимостей параллельно
type CompositeHealthChecker struct {
	version string
	timeout time.Duration

	mu     sync.RWMutex
	probes map[string]Probe
}

// NewCompositeHealthChecker создает новый CompositeHealthChecker
func NewCompositeHealthChecker(version string, timeout time.Duration) *CompositeHealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CompositeHealthChecker{
		version: version,
		timeout: timeout,
		probes:  make(map[string]Probe),
	}
}

// Register добавляет проверку зависимости
func (c *CompositeHealthChecker) Register(name string, probe Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[name] = probe
}

// Check опрашивает все зависимости.
// Все доступны: healthy; часть недоступна: degraded; все недоступны: unhealthy.
func (c *CompositeHealthChecker) Check(ctx context.Context) *HealthStatus {
	c.mu.RLock()
	names := make([]string, 0, len(c.probes))
	for name := range c.probes {
		names = append(names, name)
	}
	probes := make(map[string]Probe, len(c.probes))
	for k, v := range c.probes {
		probes[k] = v
	}
	c.mu.RUnlock()
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	results := make(map[string]Status, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string, probe Probe) {
			defer wg.Done()
			st := Status{Status: StatusHealthy}
			if err := probe(ctx); err != nil {
				st = Status{Status: StatusUnhealthy, Details: err.Error()}
			}
			mu.Lock()
			results[name] = st
			mu.Unlock()
		}(name, probes[name])
	}
	wg.Wait()

	failed := 0
	for _, st := range results {
		if st.Status != StatusHealthy {
			failed++
		}
	}

	overall := StatusHealthy
	switch {
	case len(results) > 0 && failed == len(results):
		overall = StatusUnhealthy
	case failed > 0:
		overall = StatusDegraded
	}

	return &HealthStatus{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  results,
		Version:   c.version,
	}
}

// HTTPProbe проверяет доступность HTTP сервиса: любой ответ, кроме 5xx, считается живым
func HTTPProbe(client *http.Client, url string) Probe {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= 500 {
			return &probeError{status: resp.StatusCode}
		}
		return nil
	}
}

type probeError struct {
	status int
}

func (e *probeError) Error() string {
	return "unexpected status " + http.StatusText(e.status)
}

// Handler создает HTTP обработчик для health check эндпоинта
func Handler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := checker.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		json.NewEncoder(w).Encode(status)
	}
}

// ReadyHandler создает HTTP обработчик для ready check эндпоинта.
// Возвращает 200, если ready() == true.
func ReadyHandler(ready func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ready != nil && !ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}

// LiveHandler создает HTTP обработчик для live check эндпоинта
func LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}
