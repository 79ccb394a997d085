package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Checkout submission counters, labelled by terminal state.
var (
	CheckoutSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dairyfront_checkout_submissions_total",
		Help: "Checkout submissions by outcome (confirmed, awaiting_payment, failed).",
	}, []string{"outcome"})

	PaymentCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dairyfront_payment_completions_total",
		Help: "Deferred payment-completion calls by result.",
	}, []string{"result"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dairyfront_upstream_requests_total",
		Help: "Requests issued to the dairy backend API by path group and status class.",
	}, []string{"group", "status"})
)
