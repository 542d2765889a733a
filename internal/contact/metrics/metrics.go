package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the contact module.
type Metrics struct {
	ContactsCreated  prometheus.Counter
	ContactsUpdated  prometheus.Counter
	ContactsDeleted  prometheus.Counter
	Conflicts        *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
}

// New registers the contact metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ContactsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_created_total",
			Help: "Total number of contacts created",
		}),
		ContactsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_updated_total",
			Help: "Total number of contact numbers replaced",
		}),
		ContactsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_deleted_total",
			Help: "Total number of contacts removed",
		}),
		Conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_contact_conflicts_total",
			Help: "Create attempts rejected by a uniqueness rule",
		}, []string{"field"}),
		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonebook_contact_operation_duration_seconds",
			Help:    "Duration of directory operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementCreated() { m.ContactsCreated.Inc() }
func (m *Metrics) IncrementUpdated() { m.ContactsUpdated.Inc() }
func (m *Metrics) IncrementDeleted() { m.ContactsDeleted.Inc() }

// IncrementConflict records a rejected create; field is "name" or "number".
func (m *Metrics) IncrementConflict(field string) {
	m.Conflicts.WithLabelValues(field).Inc()
}

// ObserveOperation records the duration of a directory operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
