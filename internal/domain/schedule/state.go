package schedule

import "github.com/bienestar-studio/studio-scheduler/internal/httperr"

// ===============================
// Appointment State
// ===============================

type State string

const (
	StatePending     State = "PENDING"
	StateConfirmed   State = "CONFIRMED"
	StateCanceled    State = "CANCELED"
	StateCompleted   State = "COMPLETED"
	StateNotAssisted State = "NOT_ASSISTED"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Every appointment starts PENDING; an administrator confirms it afterwards.
func InitialState() State {
	return StatePending
}

func ValidState(s State) bool {
	switch s {
	case StatePending, StateConfirmed, StateCanceled, StateCompleted, StateNotAssisted:
		return true
	}
	return false
}

// Terminal states have no outgoing transitions.
func Terminal(s State) bool {
	switch s {
	case StateCanceled, StateCompleted, StateNotAssisted:
		return true
	}
	return false
}

// Blocking reports whether an appointment in this state occupies its slot.
// Canceled and no-show appointments never block anything.
func Blocking(s State) bool {
	return s != StateCanceled && s != StateNotAssisted
}

var transitions = map[State][]State{
	StatePending:   {StateConfirmed, StateCanceled, StateCompleted, StateNotAssisted},
	StateConfirmed: {StateCanceled, StateCompleted, StateNotAssisted},
}

// CanTransition enforces the transition table. owns means the actor is the
// appointment's client; non-admin actors may only cancel their own
// non-terminal appointments.
func CanTransition(current, target State, actor Role, owns bool) error {
	if !ValidState(target) {
		return httperr.ErrValidation("invalid_state")
	}

	if Terminal(current) {
		return httperr.ErrConflict("appointment_in_terminal_state")
	}

	allowed := false
	for _, t := range transitions[current] {
		if t == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return httperr.ErrValidation("invalid_transition")
	}

	if actor != RoleAdmin {
		if target != StateCanceled {
			return httperr.ErrForbidden("admin_only")
		}
		if !owns {
			return httperr.ErrForbidden("not_owner")
		}
	}

	return nil
}
