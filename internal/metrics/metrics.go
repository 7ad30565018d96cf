package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "molnet_polls"

// Vote kinds.
const (
	VoteNew      = "new"
	VoteReplaced = "replaced"
	VoteWriteIn  = "write_in"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	votesTotal          *prometheus.CounterVec
	pollTransitionTotal *prometheus.CounterVec
	registerOnce        sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the polls API.",
		}, []string{"method", "path", "status"})
		votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Ballots accepted, by kind (new, replaced, write_in).",
		}, []string{"kind"})
		pollTransitionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_transitions_total",
			Help:      "Poll lifecycle transitions applied, by action.",
		}, []string{"action"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncVote(kind string) {
	if votesTotal == nil {
		return
	}
	votesTotal.WithLabelValues(kind).Inc()
}

func IncTransition(action string) {
	if pollTransitionTotal == nil {
		return
	}
	pollTransitionTotal.WithLabelValues(action).Inc()
}
