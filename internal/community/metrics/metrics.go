package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the community module. Tracks the
// creation counts that matter to administrators and the invoicing critical
// path duration.
type Metrics struct {
	ResidentsRegistered prometheus.Counter
	VisitsCreated       prometheus.Counter
	InvoicesIssued      prometheus.Counter
	AuditsClosed        prometheus.Counter
	InvoiceDuration     prometheus.Histogram
}

// New creates a Metrics instance with all community module metrics registered.
func New() *Metrics {
	return &Metrics{
		ResidentsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finca_residents_registered_total",
			Help: "Total number of residents registered",
		}),
		VisitsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finca_visits_created_total",
			Help: "Total number of maintenance visits recorded",
		}),
		InvoicesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finca_invoices_issued_total",
			Help: "Total number of invoices issued",
		}),
		AuditsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finca_audits_closed_total",
			Help: "Total number of audits closed",
		}),
		InvoiceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finca_invoice_duration_seconds",
			Help:    "Duration of invoice consolidation operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// ObserveInvoice records the duration of an invoicing operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveInvoice(start time.Time) {
	m.InvoiceDuration.Observe(time.Since(start).Seconds())
}
