package reviews

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Deletion workflows reported in metrics.
const (
	workflowArticleReview = "article_review"
	workflowProductReview = "product_review_and_rating"
)

// Metrics collects review deletion counters. A nil *Metrics records nothing.
type Metrics struct {
	deletions *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewMetrics registers the review collectors with reg.
// Use prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		deletions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "shop",
				Subsystem: "reviews",
				Name:      "deletions_total",
				Help:      "Review deletion attempts by workflow and outcome",
			},
			[]string{"workflow", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "shop",
				Subsystem: "reviews",
				Name:      "deletion_duration_seconds",
				Help:      "Duration of review deletion transactions",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"workflow"},
		),
	}
}

func (m *Metrics) observe(workflow string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.deletions.WithLabelValues(workflow, outcome(err)).Inc()
	m.latency.WithLabelValues(workflow).Observe(time.Since(started).Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "deleted"
	case errors.Is(err, ErrReviewPermission):
		return "forbidden"
	case errors.Is(err, ErrReviewType):
		return "wrong_type"
	case errors.Is(err, ErrReviewNotFound):
		return "not_found"
	case errors.Is(err, ErrMissingIdentifiers):
		return "invalid"
	default:
		return "failed"
	}
}
