// Package citas computes which lifecycle actions the current user may
// take on an appointment. Transitions themselves are server
// authoritative; these rules only decide what to offer, so a stale
// answer is at worst a rejected request, never a wrong state.
package citas

import "github.com/barberpro/barberpro-client/internal/model"

// Action is a lifecycle operation on an appointment.
type Action string

const (
	ActionConfirmar Action = "confirmar"
	ActionCompletar Action = "completar"
	ActionCancelar  Action = "cancelar"
	ActionCalificar Action = "calificar"
)

// AllowedActions returns the actions user may take on cita, in a fixed
// order. A nil user or nil cita yields none.
func AllowedActions(user *model.User, cita *model.Cita) []Action {
	if user == nil || cita == nil {
		return nil
	}
	var actions []Action
	for _, a := range []Action{ActionConfirmar, ActionCompletar, ActionCancelar, ActionCalificar} {
		if Can(user, cita, a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Can reports whether user may take action on cita.
func Can(user *model.User, cita *model.Cita, action Action) bool {
	if user == nil || cita == nil {
		return false
	}
	role := user.RoleName()
	switch action {
	case ActionConfirmar:
		if cita.Estado != model.CitaPendiente {
			return false
		}
		return role == model.RoleDueno || role == model.RoleAdmin ||
			(role == model.RoleBarbero && user.BarberoID() == cita.BarberoID)
	case ActionCompletar:
		// Only the assigned barber, and only once the appointment is
		// confirmed. A barber account without a linked profile has
		// BarberoID 0, which never matches a real appointment.
		return role == model.RoleBarbero &&
			user.BarberoID() != 0 &&
			user.BarberoID() == cita.BarberoID &&
			cita.Estado == model.CitaConfirmada
	case ActionCancelar:
		return !cita.Estado.Terminal()
	case ActionCalificar:
		return role == model.RoleCliente &&
			cita.ClienteID == user.ID &&
			cita.Estado == model.CitaCompletada &&
			cita.Calificacion == nil
	default:
		return false
	}
}
