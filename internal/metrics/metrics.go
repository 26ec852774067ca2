package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "diaspora_bot"

var (
	SpamDetections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "spam_detections_total",
		Help:      "Total number of spam detections by layer",
	}, []string{"layer"})

	ComplaintsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "complaints_recorded_total",
		Help:      "Total number of complaints recorded",
	})

	PollsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "polls_resolved_total",
		Help:      "Total number of moderation polls resolved",
	}, []string{"verdict"})

	DeletedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "deleted_messages_total",
		Help:      "Total number of deleted messages",
	}, []string{"reason"})

	RestrictionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "restrictions_applied_total",
		Help:      "Total number of restrictions applied",
	}, []string{"action"})

	GlossaryTriggers = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "glossary_triggers_total",
		Help:      "Total number of glossary term sightings",
	})

	UpdateProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "update_processing_duration_seconds",
		Help:      "Duration of update processing",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type", "status"})

	ActiveRestrictions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "active_restrictions",
		Help:      "Number of currently active restrictions",
	})
)

func IncSpamDetection(layer string) {
	SpamDetections.WithLabelValues(layer).Inc()
}

func IncDeletedMessages(reason string) {
	DeletedMessages.WithLabelValues(reason).Inc()
}

func IncRestriction(action string) {
	RestrictionsApplied.WithLabelValues(action).Inc()
}

func IncPollResolved(verdict string) {
	PollsResolved.WithLabelValues(verdict).Inc()
}

func SetActiveRestrictions(count float64) {
	ActiveRestrictions.Set(count)
}

func ObserveUpdateProcessing(updateType string, duration float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpdateProcessingDuration.WithLabelValues(updateType, status).Observe(duration)
}
