package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission and moderation counters exposed on /metrics.
var (
	submissionsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guestbook_submissions_accepted_total",
		Help: "Accepted guestbook submissions",
	}, []string{"outcome"})

	submissionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guestbook_submissions_rejected_total",
		Help: "Guestbook submissions rejected by validation",
	})

	entriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guestbook_entries_deleted_total",
		Help: "Guestbook entries deleted by moderators",
	})
)
