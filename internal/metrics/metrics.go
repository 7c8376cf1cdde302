package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnnouncementsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noticeboard_announcements_created_total",
		Help: "Announcements successfully stored.",
	})

	AnnouncementsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noticeboard_announcements_deleted_total",
		Help: "Announcements successfully removed.",
	})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noticeboard_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	AuthRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noticeboard_auth_rejections_total",
		Help: "Requests rejected by the bearer guard, by reason.",
	}, []string{"reason"})

	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noticeboard_store_errors_total",
		Help: "Persistence failures surfaced to clients, by operation.",
	}, []string{"op"})
)
