// Package metrics defines and registers all custom Prometheus metrics for the
// voting portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voting"

// ── Credential metrics ────────────────────────────────────────────────────────

// CredentialsIssuedTotal counts issuance outcomes.
// Label:
//   - result: "created" (new credential) or "reused" (idempotent replay of a live one)
var CredentialsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_issued_total",
		Help:      "Total number of credential issuance calls, by outcome.",
	},
	[]string{"result"},
)

// ResolveTotal counts scanned-payload classifications.
// Label:
//   - format: "json", "qr_payload", "redeem_code", or "unrecognized"
var ResolveTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolve_total",
		Help:      "Total number of raw scan resolutions, by detected format.",
	},
	[]string{"format"},
)

// ValidationsTotal counts validation attempts by outcome.
// Label:
//   - result: "success", "already_validated", "already_used", "expired", "not_found"
var ValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Total number of credential validation attempts, by outcome.",
	},
	[]string{"result"},
)

// ── Vote metrics ──────────────────────────────────────────────────────────────

// VotesCastTotal counts successfully recorded ballots.
var VotesCastTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of ballots successfully recorded.",
	},
)

// VotesRejectedTotal counts rejected cast attempts.
// Label:
//   - reason: "already_voted", "no_valid_session", "candidate_not_found", "candidate_inactive"
var VotesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_rejected_total",
		Help:      "Total number of rejected vote attempts, by reason.",
	},
	[]string{"reason"},
)
