// Package metrics defines and registers the custom Prometheus metrics of the
// wallet API. Collectors are created with promauto and live in the default
// registry, which /metrics exposes next to the HTTP metrics of echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallet"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionCacheLookupsTotal counts token lookups against the session cache.
// Label:
//   - result: "hit", "miss" or "error"
var SessionCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_cache_lookups_total",
		Help:      "Total number of session cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// EntriesRecordedTotal counts ledger entries written.
// Label:
//   - type: "deposit" or "withdrawal"
var EntriesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_recorded_total",
		Help:      "Total number of ledger entries recorded, by type.",
	},
	[]string{"type"},
)
