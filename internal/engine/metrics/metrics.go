package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InsertCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hashtable_insert_total",
		Help: "Total number of inserts by strategy and result",
	}, []string{"strategy", "result"})

	SearchCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hashtable_search_total",
		Help: "Total number of searches by strategy and result",
	}, []string{"strategy", "result"})

	CollisionCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hashtable_collisions_total",
		Help: "Occupied slots inspected while inserting, by strategy",
	}, []string{"strategy"})

	TraceLength = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hashtable_trace_steps",
		Help:    "Number of trace steps per operation",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"strategy", "op"})

	LoadFactor = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hashtable_load_factor",
		Help: "Inserted keys divided by capacity, by strategy",
	}, []string{"strategy"})

	Capacity = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hashtable_capacity",
		Help: "Capacity shared by all tables since the last reset",
	})

	ResetCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hashtable_reset_total",
		Help: "Total number of table resets",
	})
)

func init() {
	prometheus.MustRegister(InsertCount)
	prometheus.MustRegister(SearchCount)
	prometheus.MustRegister(CollisionCount)
	prometheus.MustRegister(TraceLength)
	prometheus.MustRegister(LoadFactor)
	prometheus.MustRegister(Capacity)
	prometheus.MustRegister(ResetCount)
}

func ObserveInsert(strategy string, ok bool, newCollisions int, steps int) {
	result := "ok"
	if !ok {
		result = "full"
	}
	InsertCount.WithLabelValues(strategy, result).Inc()
	if newCollisions > 0 {
		CollisionCount.WithLabelValues(strategy).Add(float64(newCollisions))
	}
	TraceLength.WithLabelValues(strategy, "insert").Observe(float64(steps))
}

func ObserveSearch(strategy string, found bool, steps int) {
	result := "not_found"
	if found {
		result = "found"
	}
	SearchCount.WithLabelValues(strategy, result).Inc()
	TraceLength.WithLabelValues(strategy, "search").Observe(float64(steps))
}

func SetLoadFactor(strategy string, lf float64) {
	LoadFactor.WithLabelValues(strategy).Set(lf)
}

func ObserveReset(capacity int) {
	ResetCount.Inc()
	Capacity.Set(float64(capacity))
}
