package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScanTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "overdue_monitor_ticks_total",
			Help: "Total overdue scan passes executed",
		},
	)
	OverdueNotifications = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "overdue_notifications_total",
			Help: "Total one-shot overdue notifications emitted",
		},
	)
)

func init() {
	prometheus.MustRegister(ScanTicks)
	prometheus.MustRegister(OverdueNotifications)
}
