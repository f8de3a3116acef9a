package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.InquiriesCreated.WithLabelValues("reactor").Inc()
	a.EmailDispatches.WithLabelValues("confirmation", OutcomeFailed).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.InquiriesCreated.WithLabelValues("reactor")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.InquiriesCreated.WithLabelValues("reactor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.EmailDispatches.WithLabelValues("confirmation", OutcomeFailed)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.NotesAdded.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inquiry_api_inquiry_notes_added_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
