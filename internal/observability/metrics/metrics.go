package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type requestKey struct {
	handler string
	method  string
	code    string
}

type probeKey struct {
	chainID string
	status  string
}

type latencyKey struct {
	chainID  string
	provider string
}

type histogram struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type collector struct {
	mu          sync.Mutex
	requests    map[requestKey]uint64
	probes      map[probeKey]uint64
	latency     map[latencyKey]*histogram
	chainStatus map[string]string
}

var defaultCollector = &collector{
	requests:    make(map[requestKey]uint64),
	probes:      make(map[probeKey]uint64),
	latency:     make(map[latencyKey]*histogram),
	chainStatus: make(map[string]string),
}

// ObserveHTTPRequest records metrics about an HTTP request lifecycle.
func ObserveHTTPRequest(handler, method string, status int) {
	defaultCollector.mu.Lock()
	defer defaultCollector.mu.Unlock()
	key := requestKey{handler: handler, method: method, code: strconv.Itoa(status)}
	defaultCollector.requests[key]++
}

// ObserveProbe records the outcome and latency of one chain endpoint probe.
func ObserveProbe(chainID uint64, provider, status string, duration time.Duration) {
	defaultCollector.mu.Lock()
	defer defaultCollector.mu.Unlock()

	id := strconv.FormatUint(chainID, 10)
	defaultCollector.probes[probeKey{chainID: id, status: status}]++

	key := latencyKey{chainID: id, provider: provider}
	hist := defaultCollector.latency[key]
	if hist == nil {
		hist = newHistogram()
		defaultCollector.latency[key] = hist
	}
	hist.observe(duration.Seconds())
}

// SetChainStatus publishes the current advisory status of a chain as a
// one-hot gauge.
func SetChainStatus(chainID uint64, status string) {
	defaultCollector.mu.Lock()
	defer defaultCollector.mu.Unlock()
	defaultCollector.chainStatus[strconv.FormatUint(chainID, 10)] = status
}

func newHistogram() *histogram {
	buckets := []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) observe(value float64) {
	h.count++
	h.sum += value
	for idx, bound := range h.buckets {
		if value <= bound {
			for i := idx; i < len(h.counts); i++ {
				h.counts[i]++
			}
			break
		}
	}
}

// Handler exposes the metrics in Prometheus text exposition format.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_, _ = fmt.Fprint(w, defaultCollector.render())
	})
}

func (c *collector) render() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var builder strings.Builder
	builder.Grow(1024)

	type requestMetric struct {
		requestKey
		value uint64
	}
	reqs := make([]requestMetric, 0, len(c.requests))
	for key, value := range c.requests {
		reqs = append(reqs, requestMetric{requestKey: key, value: value})
	}
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].handler == reqs[j].handler {
			if reqs[i].method == reqs[j].method {
				return reqs[i].code < reqs[j].code
			}
			return reqs[i].method < reqs[j].method
		}
		return reqs[i].handler < reqs[j].handler
	})
	builder.WriteString("# HELP chainport_http_requests_total Total number of HTTP requests processed.\n")
	builder.WriteString("# TYPE chainport_http_requests_total counter\n")
	for _, metric := range reqs {
		builder.WriteString(fmt.Sprintf("chainport_http_requests_total{handler=\"%s\",method=\"%s\",code=\"%s\"} %d\n",
			escape(metric.handler), escape(metric.method), escape(metric.code), metric.value))
	}

	type probeMetric struct {
		probeKey
		value uint64
	}
	probes := make([]probeMetric, 0, len(c.probes))
	for key, value := range c.probes {
		probes = append(probes, probeMetric{probeKey: key, value: value})
	}
	sort.Slice(probes, func(i, j int) bool {
		if probes[i].chainID == probes[j].chainID {
			return probes[i].status < probes[j].status
		}
		return probes[i].chainID < probes[j].chainID
	})
	builder.WriteString("# HELP chainport_probes_total Total number of chain endpoint probes by outcome.\n")
	builder.WriteString("# TYPE chainport_probes_total counter\n")
	for _, metric := range probes {
		builder.WriteString(fmt.Sprintf("chainport_probes_total{chain_id=\"%s\",status=\"%s\"} %d\n",
			escape(metric.chainID), escape(metric.status), metric.value))
	}

	statusIDs := make([]string, 0, len(c.chainStatus))
	for id := range c.chainStatus {
		statusIDs = append(statusIDs, id)
	}
	sort.Strings(statusIDs)
	builder.WriteString("# HELP chainport_chain_status Current advisory status per chain (one-hot).\n")
	builder.WriteString("# TYPE chainport_chain_status gauge\n")
	for _, id := range statusIDs {
		builder.WriteString(fmt.Sprintf("chainport_chain_status{chain_id=\"%s\",status=\"%s\"} 1\n",
			escape(id), escape(c.chainStatus[id])))
	}

	type latencyMetric struct {
		latencyKey
		hist *histogram
	}
	lats := make([]latencyMetric, 0, len(c.latency))
	for key, hist := range c.latency {
		lats = append(lats, latencyMetric{latencyKey: key, hist: hist})
	}
	sort.Slice(lats, func(i, j int) bool {
		if lats[i].chainID == lats[j].chainID {
			return lats[i].provider < lats[j].provider
		}
		return lats[i].chainID < lats[j].chainID
	})
	builder.WriteString("# HELP chainport_probe_duration_seconds Chain probe duration in seconds.\n")
	builder.WriteString("# TYPE chainport_probe_duration_seconds histogram\n")
	for _, metric := range lats {
		for idx, bound := range metric.hist.buckets {
			builder.WriteString(fmt.Sprintf("chainport_probe_duration_seconds_bucket{chain_id=\"%s\",provider=\"%s\",le=\"%s\"} %d\n",
				escape(metric.chainID), escape(metric.provider), formatFloat(bound), metric.hist.counts[idx]))
		}
		builder.WriteString(fmt.Sprintf("chainport_probe_duration_seconds_bucket{chain_id=\"%s\",provider=\"%s\",le=\"+Inf\"} %d\n",
			escape(metric.chainID), escape(metric.provider), metric.hist.count))
		builder.WriteString(fmt.Sprintf("chainport_probe_duration_seconds_sum{chain_id=\"%s\",provider=\"%s\"} %s\n",
			escape(metric.chainID), escape(metric.provider), formatFloat(metric.hist.sum)))
		builder.WriteString(fmt.Sprintf("chainport_probe_duration_seconds_count{chain_id=\"%s\",provider=\"%s\"} %d\n",
			escape(metric.chainID), escape(metric.provider), metric.hist.count))
	}

	return builder.String()
}

func escape(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "\n", "")
	return value
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// StartServer launches a standalone HTTP server exposing the /metrics endpoint.
func StartServer(ctx context.Context, addr string) error {
	if addr == "" {
		return errors.New("metrics address is empty")
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return err
	}
}
