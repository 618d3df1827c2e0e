package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeTransportError = "transport_error"
	outcomeAPIError       = "api_error"
)

var apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ningapi_client_requests",
	Help: "Ning API requests, by HTTP method and outcome",
}, []string{"method", "outcome"})

var apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ningapi_client_request_duration",
	Help:    "Time to complete a Ning API request, including decoding the response",
	Buckets: prometheus.ExponentialBucketsRange(0.001, 10, 20),
}, []string{"method", "outcome"})

func observeRequest(method, outcome string, start time.Time) {
	apiRequests.WithLabelValues(method, outcome).Inc()
	apiRequestDuration.WithLabelValues(method, outcome).Observe(time.Since(start).Seconds())
}
