package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsCallsAndErrors(t *testing.T) {
	r := New()

	done := r.Start(Insert)
	done()
	r.Failed(Insert)
	r.Start(Delete)()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Calls(Insert)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Errors(Insert)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.Calls(Update)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Calls(Delete)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.Errors(Delete)))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.Start(Update)()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "updateCustomer 1")
	assert.Contains(t, body, "updateCustomerTimer_count 1")
	assert.Contains(t, body, "insertCustomerErrors 0")
}
