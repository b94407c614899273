package ledger

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the runtime executes.
type Metrics struct {
	instructions *prometheus.CounterVec
	transactions *prometheus.CounterVec
	credited     prometheus.Counter
	duration     prometheus.Histogram
}

// NewMetrics registers the runtime collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "ledger",
			Name:      "instructions_total",
			Help:      "Instructions processed, by instruction name and result.",
		}, []string{"instruction", "result"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "ledger",
			Name:      "transactions_total",
			Help:      "Transactions submitted, by result.",
		}, []string{"result"}),
		credited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "ledger",
			Name:      "credited_lamports_total",
			Help:      "Lamports minted through genesis credits.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "ledger",
			Name:      "transaction_duration_seconds",
			Help:      "Wall time from sequencing to commit.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	reg.MustRegister(m.instructions, m.transactions, m.credited, m.duration)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
