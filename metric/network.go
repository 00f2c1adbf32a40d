package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/flowcore/microflo/errors"
)

// NetworkMetrics instruments one network.Network's scheduler: ticks,
// deliveries, and the live queue depth / node count gauges. Dropped
// packets are not counted here.
type NetworkMetrics struct {
	ticks      prometheus.Counter
	delivered  prometheus.Counter
	queueDepth prometheus.Gauge
	nodeCount  prometheus.Gauge
}

// NewNetworkMetrics registers the scheduler metrics on registry and returns
// a handle network.Network can record through.
func NewNetworkMetrics(registry *MetricsRegistry) (*NetworkMetrics, error) {
	ticks := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "microflo",
		Subsystem: "network",
		Name:      "ticks_total",
		Help:      "Total number of scheduler ticks run.",
	})
	if err := registry.RegisterCounter("network", "ticks_total", ticks); err != nil {
		return nil, errors.WrapFatal(err, "NetworkMetrics", "NewNetworkMetrics", "register ticks counter")
	}

	delivered := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "microflo",
		Subsystem: "network",
		Name:      "packets_delivered_total",
		Help:      "Total number of packets delivered from the message ring.",
	})
	if err := registry.RegisterCounter("network", "packets_delivered_total", delivered); err != nil {
		return nil, errors.WrapFatal(err, "NetworkMetrics", "NewNetworkMetrics", "register delivered counter")
	}

	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "microflo",
		Subsystem: "network",
		Name:      "queue_depth",
		Help:      "Current number of messages pending delivery.",
	})
	if err := registry.RegisterGauge("network", "queue_depth", queueDepth); err != nil {
		return nil, errors.WrapFatal(err, "NetworkMetrics", "NewNetworkMetrics", "register queue depth gauge")
	}

	nodeCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "microflo",
		Subsystem: "network",
		Name:      "nodes",
		Help:      "Current number of registered nodes.",
	})
	if err := registry.RegisterGauge("network", "nodes", nodeCount); err != nil {
		return nil, errors.WrapFatal(err, "NetworkMetrics", "NewNetworkMetrics", "register node count gauge")
	}

	return &NetworkMetrics{
		ticks:      ticks,
		delivered:  delivered,
		queueDepth: queueDepth,
		nodeCount:  nodeCount,
	}, nil
}

// IncTicks records one completed scheduler tick.
func (m *NetworkMetrics) IncTicks() { m.ticks.Inc() }

// AddDelivered records n packets delivered in the current tick's batch.
func (m *NetworkMetrics) AddDelivered(n int) { m.delivered.Add(float64(n)) }

// SetQueueDepth records the message ring's current size.
func (m *NetworkMetrics) SetQueueDepth(n int) { m.queueDepth.Set(float64(n)) }

// SetNodeCount records the node table's current occupancy.
func (m *NetworkMetrics) SetNodeCount(n int) { m.nodeCount.Set(float64(n)) }
