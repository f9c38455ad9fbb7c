package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-docs/internal/infrastructure/metrics"
)

func TestRecorder_Contadores(t *testing.T) {
	r := metrics.NewRecorder("invoicedocs")

	r.ObserveExport("success", 300*time.Millisecond)
	r.ObserveExport("success", time.Second)
	r.ObserveExport("failure", 2*time.Second)
	r.ObserveDegraded("qr")
	r.ObserveRequest("GET", "/api/invoices/:id/pdf", 200)

	count, err := testutil.GatherAndCount(r.Registry(), "invoicedocs_invoice_exports_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "una serie por resultado")
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder("invoicedocs")
	r.ObserveExport("success", time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `invoicedocs_invoice_exports_total{outcome="success"} 1`)
}
