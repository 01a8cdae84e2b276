package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"StockSentinel/internal/model"
)

// Instrument outcomes used as label values.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Recorder exposes scan metrics to Prometheus.
type Recorder struct {
	scanDuration prometheus.Histogram
	instruments  *prometheus.CounterVec
	alerts       *prometheus.CounterVec
	lastRSI      *prometheus.GaugeVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sentinel",
			Subsystem: "scan",
			Name:      "duration_seconds",
			Help:      "Duration of a full scan over all instruments",
			Buckets:   prometheus.DefBuckets,
		}),
		instruments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "scan",
			Name:      "instruments_total",
			Help:      "Instruments processed by outcome",
		}, []string{"outcome"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "alerts_total",
			Help:      "Alerts fired by kind",
		}, []string{"kind"}),
		lastRSI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sentinel",
			Name:      "last_rsi",
			Help:      "Latest valid RSI per symbol",
		}, []string{"symbol"}),
	}
	reg.MustRegister(r.scanDuration, r.instruments, r.alerts, r.lastRSI)
	return r
}

// ObserveScan records how long a scan took.
func (r *Recorder) ObserveScan(d time.Duration) {
	r.scanDuration.Observe(d.Seconds())
}

// RecordInstrument counts one processed instrument.
func (r *Recorder) RecordInstrument(outcome string) {
	r.instruments.WithLabelValues(outcome).Inc()
}

// RecordEvent counts the event's alerts and updates the RSI gauge.
func (r *Recorder) RecordEvent(ev *model.AlertEvent) {
	for _, a := range ev.Alerts {
		r.alerts.WithLabelValues(string(a.Kind)).Inc()
	}
	if ev.Snapshot.Valid.RSI {
		r.lastRSI.WithLabelValues(ev.Symbol).Set(ev.Snapshot.RSI)
	}
}
