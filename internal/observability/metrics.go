// Package observability bundles Prometheus metrics for the mission engine
// and the HTTP surface.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ishant3366/minealert/internal/models"
)

// Collector registers and updates the MineAlert metrics. It satisfies the
// engine's Metrics interface.
type Collector struct {
	gatherer prometheus.Gatherer

	CommandsHandled *prometheus.CounterVec
	Detections      *prometheus.CounterVec
	Ticks           prometheus.Counter

	Battery  prometheus.Gauge
	Signal   prometheus.Gauge
	Altitude prometheus.Gauge
}

// NewCollector registers the metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		CommandsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minealert_commands_total",
			Help: "Total number of drone control commands handled, labeled by command type.",
		}, []string{"command"}),
		Detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minealert_detections_total",
			Help: "Total number of simulated detections, labeled by classification.",
		}, []string{"classification"}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minealert_engine_ticks_total",
			Help: "Total number of mission engine ticks.",
		}),
		Battery: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "minealert_drone_battery_percent",
			Help: "Current simulated drone battery level.",
		}),
		Signal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "minealert_drone_signal_percent",
			Help: "Current simulated drone signal strength.",
		}),
		Altitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "minealert_drone_altitude_meters",
			Help: "Current simulated drone altitude.",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.CommandsHandled, c.Detections, c.Ticks, c.Battery, c.Signal, c.Altitude,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CommandHandled counts a handled control command.
func (c *Collector) CommandHandled(cmd string) {
	c.CommandsHandled.WithLabelValues(cmd).Inc()
}

// DetectionFound counts a detection by classification.
func (c *Collector) DetectionFound(classification string) {
	c.Detections.WithLabelValues(classification).Inc()
}

// Tick records one engine tick and updates the drone gauges.
func (c *Collector) Tick(t models.Telemetry) {
	c.Ticks.Inc()
	c.Battery.Set(t.BatteryLevel)
	c.Signal.Set(t.SignalStrength)
	c.Altitude.Set(t.Altitude)
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
