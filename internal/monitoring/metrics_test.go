package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveDatasetLoad("0005", 3*time.Millisecond, nil)
	c.ObserveDatasetLoad("0005", time.Millisecond, errors.New("boom"))
	c.ObserveAngleChange("seyfert-2", true)
	c.ObserveAngleChange("seyfert-2", false)
	c.SetActiveSessions(3)
	c.ObservePhotometryRequest(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.DatasetLoads.WithLabelValues("0005", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DatasetLoads.WithLabelValues("0005", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.AngleChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ArchetypeSwitches.WithLabelValues("seyfert-2")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ActiveSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PhotometryRequests.WithLabelValues("ok")))
}

func TestCollector_RegisterTwice(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.AngleChanges.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.AngleChanges), "second collector reuses registered metrics")
}

func TestCollector_NilSafe(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.ObserveDatasetLoad("0005", time.Second, nil)
	c.ObserveAngleChange("blazar", true)
	c.SetActiveSessions(1)
	c.ObservePhotometryRequest(nil)
	assert.NotNil(t, c.Handler())
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.ObserveAngleChange("blazar", true)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "agnite_angle_changes_total 1"))
}
