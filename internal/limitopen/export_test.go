package limitopen

import "github.com/prometheus/client_golang/prometheus"

func SoftLimitCounter() prometheus.Collector {
	return softLimitCounter
}
