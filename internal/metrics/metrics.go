// Package metrics объявляет счётчики Prometheus конвейера маскирования.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MaskedResponses считает замаскированные ответы по схемам записей.
var MaskedResponses = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "estate_leads_masked_responses_total",
	Help: "Number of responses that passed through the field masking engine, by schema.",
}, []string{"schema"})

// TierResolutions считает вычисления уровня доступа по результату.
var TierResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "estate_leads_tier_resolutions_total",
	Help: "Number of effective tier resolutions, by resolved tier.",
}, []string{"tier"})

// TierResolutionFailures считает сбои хранилища при вычислении уровня,
// деградировавшие в free.
var TierResolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "estate_leads_tier_resolution_failures_total",
	Help: "Number of tier resolutions that failed closed to the free tier due to store errors.",
})
