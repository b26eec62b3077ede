package jobs

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// Metrics exposes Prometheus collectors for background jobs.
type Metrics struct {
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	sweepAccounts *prometheus.CounterVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the job metrics against the provided registerer. When the
// registerer is nil the default Prometheus registerer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

// Tracker provides lifecycle instrumentation helpers for a single job run.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track spawns a tracker for the given job name.
func (m *Metrics) Track(job string) *Tracker {
	if m == nil {
		return &Tracker{job: job, start: time.Now()}
	}
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End finalises the tracker, recording duration, success/failure counts and
// returning the provided error untouched.
func (t *Tracker) End(err error) error {
	return t.end(err, "")
}

// Skip records a run that did no work, such as one that lost the sweep lock.
func (t *Tracker) Skip() {
	_ = t.end(nil, "skipped")
}

func (t *Tracker) end(err error, status string) error {
	if t == nil || t.metrics == nil || t.job == "" {
		return err
	}
	if status == "" {
		status = "success"
	}
	if err != nil {
		status = "failure"
		t.metrics.failures.WithLabelValues(t.job).Inc()
	}
	t.metrics.runs.WithLabelValues(t.job, status).Inc()
	t.metrics.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

// AddSweepReport counts the per-account outcomes of one sweep.
func (m *Metrics) AddSweepReport(report *domain.SweepReport) {
	if m == nil || report == nil {
		return
	}
	add := func(outcome domain.SweepOutcome, n int) {
		if n > 0 {
			m.sweepAccounts.WithLabelValues(string(outcome)).Add(float64(n))
		}
	}
	add(domain.SweepCapitalized, report.Capitalized)
	add(domain.SweepSkipped, report.Skipped)
	add(domain.SweepFailed, report.Failed)
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "savings_jobs_total",
		Help: "Total job executions partitioned by job name and status.",
	}, []string{"job", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "savings_jobs_failures_total",
		Help: "Total failures observed for background jobs.",
	}, []string{"job"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "savings_job_duration_seconds",
		Help:    "Duration in seconds of background job executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	sweepAccounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "savings_sweep_accounts_total",
		Help: "Accounts examined by the interest sweep grouped by outcome.",
	}, []string{"outcome"})
	registerer.MustRegister(runs, failures, duration, sweepAccounts)
	return &Metrics{runs: runs, failures: failures, duration: duration, sweepAccounts: sweepAccounts}
}
