package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_appointments_created_total",
		Help: "Appointments successfully reserved.",
	})

	AppointmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_appointment_transitions_total",
		Help: "Appointment state transitions by target state.",
	}, []string{"target"})

	ConflictsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_conflicts_rejected_total",
		Help: "Requests rejected because of a scheduling conflict.",
	}, []string{"operation"})

	BlocksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_blocked_slots_created_total",
		Help: "Blocked-slot rows written (one per day of a period).",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
