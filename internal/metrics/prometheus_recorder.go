package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "agencysite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	httpDuration *prom.HistogramVec
	httpRequests *prom.CounterVec
	cmsDuration  *prom.HistogramVec
	cmsRetries   *prom.CounterVec
	leads        *prom.CounterVec
	cmsUp        prom.Gauge
	pageReloads  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "method"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "method", "code"}),
		cmsDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "cms_fetch_duration_seconds",
			Help:      "Duration of CMS fetch operations",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "result"}),
		cmsRetries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cms_retries_total",
			Help:      "Transient CMS failures that were retried",
		}, []string{"op"}),
		leads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		cmsUp: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "cms_up",
			Help:      "Whether the last CMS health probe succeeded (1) or not (0)",
		}),
		pageReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_reloads_total",
			Help:      "Static page registry reloads by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.httpDuration, pr.httpRequests, pr.cmsDuration, pr.cmsRetries, pr.leads, pr.cmsUp, pr.pageReloads)
	return pr
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) ObserveCMSFetch(op string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.cmsDuration.WithLabelValues(op, resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCMSRetry(op string) {
	if p == nil {
		return
	}
	p.cmsRetries.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncLeadOutcome(outcome LeadOutcome) {
	if p == nil {
		return
	}
	p.leads.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetCMSUp(up bool) {
	if p == nil {
		return
	}
	if up {
		p.cmsUp.Set(1)
		return
	}
	p.cmsUp.Set(0)
}

func (p *PrometheusRecorder) IncPageReload(success bool) {
	if p == nil {
		return
	}
	p.pageReloads.WithLabelValues(resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
