package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PairMetrics holds the Prometheus metrics for the pair engine
type PairMetrics struct {
	SwapsTotal      prometheus.Counter
	MintsTotal      prometheus.Counter
	BurnsTotal      prometheus.Counter
	SyncsTotal      prometheus.Counter
	FlashLoansTotal prometheus.Counter
	CurrentFeeBps   prometheus.Gauge
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *PairMetrics
)

// GetPairMetrics returns the metrics singleton, registering it on first use
func GetPairMetrics() *PairMetrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &PairMetrics{
			SwapsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pair_swaps_total",
				Help: "Total number of successful swaps",
			}),
			MintsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pair_mints_total",
				Help: "Total number of successful liquidity mints",
			}),
			BurnsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pair_burns_total",
				Help: "Total number of successful liquidity burns",
			}),
			SyncsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pair_syncs_total",
				Help: "Total number of reserve syncs",
			}),
			FlashLoansTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pair_flash_loans_total",
				Help: "Total number of successful flash loans",
			}),
			CurrentFeeBps: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pair_current_fee_bps",
				Help: "Fee charged by the most recent swap, in basis points",
			}),
		}
	})
	return pairMetrics
}
