package poe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	claimOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poe",
		Name:      "claim_operations_total",
		Help:      "Number of claim operations delivered, partitioned by operation.",
	}, []string{"operation"})

	claimsCreated     = claimOperations.WithLabelValues("create")
	claimsRevoked     = claimOperations.WithLabelValues("revoke")
	claimsTransferred = claimOperations.WithLabelValues("transfer")
)
