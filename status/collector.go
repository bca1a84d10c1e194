package status

import (
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every exported metric name
const Namespace = "vi_boids"

var nameReplacer = strings.NewReplacer(".", "_", "-", "_", " ", "_")

// MetricName maps a registry key to a Prometheus metric name
func MetricName(key string) string {
	return Namespace + "_" + nameReplacer.Replace(key)
}

// Collector exports a Registry as Prometheus gauges
// Keys are discovered at scrape time, so the collector is unchecked
type Collector struct {
	reg *Registry
}

// NewCollector wraps reg
func NewCollector(reg *Registry) *Collector {
	return &Collector{reg: reg}
}

// Describe sends nothing, marking the collector unchecked
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect reads every atomic once
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Ints.Range(func(key string, v *atomic.Int64) {
		ch <- gauge(key, float64(v.Load()))
	})
	c.reg.Floats.Range(func(key string, v *AtomicFloat) {
		ch <- gauge(key, v.Get())
	})
	c.reg.Bools.Range(func(key string, v *atomic.Bool) {
		val := 0.0
		if v.Load() {
			val = 1
		}
		ch <- gauge(key, val)
	})
	c.reg.Strings.Range(func(key string, v *AtomicString) {
		desc := prometheus.NewDesc(MetricName(key), "status string "+key, []string{"value"}, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, 1, v.Load())
	})
}

func gauge(key string, val float64) prometheus.Metric {
	desc := prometheus.NewDesc(MetricName(key), "status value "+key, nil, nil)
	return prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, val)
}

// NewPrometheusRegistry returns a registry holding the collector plus Go runtime metrics
func NewPrometheusRegistry(reg *Registry) *prometheus.Registry {
	pr := prometheus.NewRegistry()
	pr.MustRegister(NewCollector(reg))
	pr.MustRegister(prometheus.NewGoCollector())
	return pr
}
