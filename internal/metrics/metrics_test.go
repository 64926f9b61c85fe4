package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts []repository.StatusCount
	err    error
}

func (f fakeCounter) CountByStatus(context.Context) ([]repository.StatusCount, error) {
	return f.counts, f.err
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/lots/{id}", 200, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/lots/{id}", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/lots/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestRefreshVials(t *testing.T) {
	m := New()
	err := m.RefreshVials(context.Background(), fakeCounter{counts: []repository.StatusCount{
		{Status: domain.VialStatusSealed, Count: 12},
		{Status: domain.VialStatusOpened, Count: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, 12.0, testutil.ToFloat64(m.vials.WithLabelValues("sealed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.vials.WithLabelValues("opened")))

	err = m.RefreshVials(context.Background(), fakeCounter{err: errors.New("db down")})
	assert.Error(t, err)
	assert.Equal(t, 12.0, testutil.ToFloat64(m.vials.WithLabelValues("sealed")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/api/auth/login", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "labaid_http_requests_total"))
}
