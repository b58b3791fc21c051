// Package metrics defines and registers the custom Prometheus metrics for
// the finance API. It is the single source of truth for metric names,
// labels, and help strings. All metrics register themselves with the
// default registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fintrack"

// TransactionsCreatedTotal counts recorded transactions.
// Label:
//   - type: "income" or "expense"
var TransactionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions recorded, by type.",
	},
	[]string{"type"},
)

// BudgetAlertsTotal counts budget threshold alerts that fired.
// Label:
//   - category: the budget's expense category
var BudgetAlertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_alerts_total",
		Help:      "Total number of budget threshold alerts fired, by category.",
	},
	[]string{"category"},
)

// AlertDedupTotal counts alert deduplication decisions.
// Label:
//   - result: "hit" (already alerted this period, suppressed) or "miss"
var AlertDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_dedup_total",
		Help:      "Total number of alert deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AlertEvaluationDuration measures one budget alert evaluation end-to-end.
// Label:
//   - outcome: "ok" or "error"
var AlertEvaluationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "alert_evaluation_duration_seconds",
		Help:      "Duration of budget alert evaluation from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
