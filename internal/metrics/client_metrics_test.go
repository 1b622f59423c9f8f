package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"RRHHPlatform/pkg/logger"
	"RRHHPlatform/pkg/metrics"
)

func newTestMetrics() *ClientMetrics {
	return NewClientMetrics(metrics.NewMetrics("rrhh_test", prometheus.NewRegistry()), logger.NewNop())
}

// TestTrack проверяет учет запросов и ошибок
func TestTrack(t *testing.T) {
	c := newTestMetrics()

	_, done := c.Track(context.Background(), "auth", "GET", "/auth/profile")
	done(200, nil)
	_, done = c.Track(context.Background(), "auth", "GET", "/auth/profile")
	done(401, errors.New("unauthorized"))
	_, done = c.Track(context.Background(), "biometric", "POST", "/usuarios")
	done(0, errors.New("connection refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestCount.WithLabelValues("auth", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestCount.WithLabelValues("auth", "GET", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ErrorsCount.WithLabelValues("auth", "GET", "client_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ErrorsCount.WithLabelValues("biometric", "POST", "transport")))
}

// TestCommandTimer проверяет учет команд
func TestCommandTimer(t *testing.T) {
	c := newTestMetrics()

	c.NewCommandTimer().Finish("usuarios list", true)
	c.NewCommandTimer().Finish("usuarios list", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestCount.WithLabelValues("cli", "usuarios list", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ErrorsCount.WithLabelValues("cli", "usuarios list", "execution_failed")))
}

// TestNilMetrics проверяет, что nil метрики ничего не делают
func TestNilMetrics(t *testing.T) {
	var c *ClientMetrics

	ctx, done := c.Track(context.Background(), "auth", "GET", "/")
	assert.NotNil(t, ctx)
	done(200, nil)
	c.CacheLookup("users", true)
	c.SyncFinished("device:1", nil, time.Second)
	c.NewCommandTimer().Finish("version", true)
	assert.NotNil(t, c.Handler())
}
