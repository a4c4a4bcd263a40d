// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the router's prometheus instrumentation. A Router with a
// nil metrics (the zero value) is valid and simply records nothing;
// NewMetrics registers a fresh instance against reg.
type metrics struct {
	dispatchTotal   *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
	programWeight   prometheus.Histogram
}

// NewMetrics registers the router's counters and histograms against reg and
// returns a handle usable as a Router option.
func NewMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xcmrelay",
			Name:      "dispatch_total",
			Help:      "Transfer dispatches, partitioned by routing plan kind.",
		}, []string{"kind"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xcmrelay",
			Name:      "dispatch_errors_total",
			Help:      "Failed dispatches, partitioned by error code.",
		}, []string{"code"}),
		programWeight: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "xcmrelay",
			Name:      "program_weight",
			Help:      "Computed weight of built instruction programs.",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.dispatchTotal, m.errorTotal, m.programWeight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observeDispatch(kind string) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(kind).Inc()
}

func (m *metrics) observeError(code string) {
	if m == nil {
		return
	}
	m.errorTotal.WithLabelValues(code).Inc()
}

func (m *metrics) observeWeight(w float64) {
	if m == nil {
		return
	}
	m.programWeight.Observe(w)
}
