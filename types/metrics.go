package types

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var UploadConsecutiveFailedSubmissions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "solship_consecutive_failed_submissions",
	Help: "Number of consecutive failed message submissions to the channel.",
})

var UploadPlannedFramesGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "solship_planned_frames",
	Help: "Number of frames planned for the current transmission.",
})

var UploadResubmittedFramesCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "solship_resubmitted_frames_total",
	Help: "Total frames re-sent by the reconciliation loop.",
})

var UploadReconcilePassesGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "solship_reconcile_passes",
	Help: "Reconciliation passes taken by the last transmission.",
})
