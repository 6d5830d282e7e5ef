package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ScheduleMetrics contains Prometheus metrics for monitoring the scheduling core.
type ScheduleMetrics struct {
	TasksCreated     *prometheus.CounterVec
	TasksMoved       prometheus.Counter
	DropsResolved    *prometheus.CounterVec
	CursorReconciles prometheus.Counter
	WidgetsAttached  prometheus.Gauge
	PendingDialogs   prometheus.Gauge
}

// NewScheduleMetrics creates and registers schedule metrics with the given registerer.
func NewScheduleMetrics(registerer prometheus.Registerer) *ScheduleMetrics {
	m := &ScheduleMetrics{
		TasksCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskhub_schedule_tasks_created_total",
				Help: "Total number of tasks created",
			},
			[]string{"origin"}, // origin: quick_add/form/drop
		),
		TasksMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskhub_schedule_tasks_moved_total",
			Help: "Total number of tasks moved between calendar days",
		}),
		DropsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deskhub_schedule_drops_resolved_total",
				Help: "Total number of drop operations resolved on day cells",
			},
			[]string{"payload_type", "outcome"},
		),
		CursorReconciles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskhub_schedule_cursor_reconciles_total",
			Help: "Total number of shared-cursor reconciliations",
		}),
		WidgetsAttached: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deskhub_schedule_widgets_attached",
			Help: "Current number of widgets attached to the synchronizer",
		}),
		PendingDialogs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deskhub_schedule_pending_dialogs",
			Help: "Current number of open assignment dialogs",
		}),
	}

	registerer.MustRegister(
		m.TasksCreated,
		m.TasksMoved,
		m.DropsResolved,
		m.CursorReconciles,
		m.WidgetsAttached,
		m.PendingDialogs,
	)

	return m
}
