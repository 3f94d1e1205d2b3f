// Package metrics exposes the service-level Prometheus collectors. The
// echo middleware already covers request latency and status codes; the
// counters here track signing operations by chain and kind.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SignaturesTotal counts produced signatures, labelled by chain family
// (evm, solana) and payload kind (message, typed_data, transaction).
var SignaturesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signer_signatures_total",
		Help: "Total number of signatures produced",
	},
	[]string{"chain", "kind"},
)
