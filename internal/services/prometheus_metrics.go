package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// prometheusMetrics implements MetricsRecorderInterface on the default
// prometheus registry.
type prometheusMetrics struct {
	transactionsCreated *prometheus.CounterVec
	transactionsUpdated prometheus.Counter
	transactionsDeleted prometheus.Counter
	categoriesCreated   prometheus.Counter
	reportQueries       *prometheus.CounterVec
	listDuration        prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &prometheusMetrics{
		transactionsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "expense_manager_transactions_created_total",
			Help: "Total number of transactions created, by type",
		}, []string{"type"}),
		transactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expense_manager_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		transactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expense_manager_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		categoriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "expense_manager_categories_created_total",
			Help: "Total number of user categories created",
		}),
		reportQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "expense_manager_report_queries_total",
			Help: "Total number of report queries served, by report",
		}, []string{"report"}),
		listDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "expense_manager_transaction_list_duration_seconds",
			Help:    "Duration of transaction listing queries",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *prometheusMetrics) RecordTransactionCreated(transactionType string) {
	m.transactionsCreated.WithLabelValues(transactionType).Inc()
}

func (m *prometheusMetrics) RecordTransactionUpdated() {
	m.transactionsUpdated.Inc()
}

func (m *prometheusMetrics) RecordTransactionDeleted() {
	m.transactionsDeleted.Inc()
}

func (m *prometheusMetrics) RecordCategoryCreated() {
	m.categoriesCreated.Inc()
}

func (m *prometheusMetrics) RecordReportQuery(report string) {
	m.reportQueries.WithLabelValues(report).Inc()
}

func (m *prometheusMetrics) ObserveListDuration(d time.Duration) {
	m.listDuration.Observe(d.Seconds())
}
