package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus metrics.
type Metrics struct {
	AccountsCreated       prometheus.Counter
	TransactionsCreated   prometheus.Counter
	TransactionsRejected  *prometheus.CounterVec
	EntriesCreated        prometheus.Counter
	BalanceRecalculations prometheus.Counter
}

// New creates ledger metrics registered against reg. Tests pass an isolated
// prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		TransactionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_created_total",
			Help: "Total number of transactions committed",
		}),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_rejected_total",
				Help: "Total number of transactions rejected by validation, by reason",
			},
			[]string{"reason"},
		),
		EntriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_entries_created_total",
			Help: "Total number of entries written",
		}),
		BalanceRecalculations: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_balance_recalculations_total",
			Help: "Total number of account balance recalculations",
		}),
	}
}
