// Package booking drives the guest booking sequence: browse shops, pick
// a service, fill the form, detour through login when anonymous, confirm
// and create the appointment. The intermediate selection survives the
// login redirect as a persisted PendingBooking draft.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/barberpro/barberpro-client/internal/model"
	"github.com/barberpro/barberpro-client/pkg/logging"
)

// State is the flow position.
type State string

const (
	StateChoosingShop     State = "choosing_shop"
	StateChoosingService  State = "choosing_service"
	StateFillingForm      State = "filling_form"
	StateRedirectingLogin State = "redirecting_to_login"
	StateConfirming       State = "confirming"
	StateCreated          State = "created"
	StateFailed           State = "failed"
)

// ErrLoginRequired signals that the draft was saved and the user must
// authenticate before confirming. The draft is durable before this is
// returned.
var ErrLoginRequired = errors.New("booking: login required to confirm")

// ValidationError is a form-level rejection, surfaced inline next to the
// offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking: %s: %s", e.Field, e.Reason)
}

// SessionState is the slice of the session store the flow needs.
type SessionState interface {
	IsAuthenticated() bool
}

// CitaCreator creates appointments; satisfied by resources.Citas.
type CitaCreator interface {
	Crear(ctx context.Context, input model.CreateCitaInput) (*model.Cita, error)
}

// FormInput is what the booking form collects on top of the selected
// shop and service.
type FormInput struct {
	BarberoID  int
	Fecha      string // 2006-01-02
	Hora       string // 15:04
	MetodoPago model.MetodoPago
}

// Flow is the stateful booking controller. One flow per booking attempt;
// safe for the single-UI-goroutine use it is built for plus concurrent
// State reads.
type Flow struct {
	mu sync.Mutex

	state   State
	draft   PendingBooking
	created *model.Cita
	lastErr error

	sessions SessionState
	citas    CitaCreator
	drafts   *DraftStore
	logger   *logging.Logger
	now      func() time.Time
}

// NewFlow starts a flow at ChoosingShop.
func NewFlow(sessions SessionState, citas CitaCreator, drafts *DraftStore, logger *logging.Logger) *Flow {
	if logger == nil {
		logger = logging.Default()
	}
	return &Flow{
		state:    StateChoosingShop,
		sessions: sessions,
		citas:    citas,
		drafts:   drafts,
		logger:   logger,
		now:      time.Now,
	}
}

// State returns the current flow position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the in-progress selection.
func (f *Flow) Draft() PendingBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Created returns the appointment after a successful Confirm.
func (f *Flow) Created() *model.Cita {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

// Err returns the error that moved the flow to Failed.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// SelectShop scopes the rest of the flow to one shop. Picking a shop
// needs no network call.
func (f *Flow) SelectShop(barberiaID int) error {
	if barberiaID == 0 {
		return &ValidationError{Field: "barberia", Reason: "selecciona una barbería"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = PendingBooking{BarberiaID: barberiaID}
	f.state = StateChoosingService
	return nil
}

// SelectService snapshots the chosen service. The snapshot, not the live
// record, is what the confirmation screen shows.
func (f *Flow) SelectService(servicio model.Servicio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateChoosingService && f.state != StateFillingForm {
		return fmt.Errorf("booking: select service in state %s", f.state)
	}
	f.draft.ServicioID = servicio.ID
	f.draft.Servicio = servicio.Snapshot()
	f.state = StateFillingForm
	return nil
}

// Submit validates the form and either moves to confirmation or, for an
// anonymous visitor, persists the draft and signals the login redirect
// with ErrLoginRequired.
func (f *Flow) Submit(ctx context.Context, input FormInput) error {
	f.mu.Lock()
	if f.state != StateFillingForm {
		f.mu.Unlock()
		return fmt.Errorf("booking: submit in state %s", f.state)
	}
	f.mu.Unlock()

	if err := f.validate(input); err != nil {
		return err
	}

	f.mu.Lock()
	f.draft.BarberoID = input.BarberoID
	f.draft.Fecha = input.Fecha
	f.draft.Hora = input.Hora
	f.draft.MetodoPago = input.MetodoPago
	draft := f.draft
	f.mu.Unlock()

	// Persist before any navigation so neither the login detour nor a
	// crash between submit and confirm loses the selection.
	if err := f.drafts.Save(ctx, &draft); err != nil {
		return err
	}
	f.mu.Lock()
	f.draft = draft // Save stamped DraftID/CreatedAt
	f.mu.Unlock()

	if !f.sessions.IsAuthenticated() {
		f.setState(StateRedirectingLogin)
		f.logger.Info("booking draft saved, redirecting to login", "draft_id", draft.DraftID)
		return ErrLoginRequired
	}
	f.setState(StateConfirming)
	return nil
}

func (f *Flow) validate(input FormInput) error {
	if input.BarberoID == 0 {
		return &ValidationError{Field: "barbero", Reason: "selecciona un barbero"}
	}
	fecha, err := time.Parse("2006-01-02", input.Fecha)
	if err != nil {
		return &ValidationError{Field: "fecha", Reason: "formato de fecha inválido"}
	}
	// Advisory check only; the server is authoritative and may still
	// reject for slot conflicts.
	today, _ := time.Parse("2006-01-02", f.now().Format("2006-01-02"))
	if fecha.Before(today) {
		return &ValidationError{Field: "fecha", Reason: "la fecha no puede ser anterior a hoy"}
	}
	if _, err := time.Parse("15:04", input.Hora); err != nil {
		return &ValidationError{Field: "hora", Reason: "formato de hora inválido"}
	}
	if !input.MetodoPago.Valid() {
		return &ValidationError{Field: "metodo_pago", Reason: "método de pago inválido"}
	}
	return nil
}

// Resume routes a fresh page load. When a draft exists and the session
// is authenticated it moves straight to confirmation; the draft
// redirect takes priority over the default post-login destination.
// Returns whether a draft was resumed.
func (f *Flow) Resume(ctx context.Context) (bool, error) {
	if !f.sessions.IsAuthenticated() {
		return false, nil
	}
	draft, err := f.drafts.Load(ctx)
	if errors.Is(err, ErrNoDraft) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	f.draft = *draft
	f.state = StateConfirming
	f.mu.Unlock()
	f.logger.Info("resuming pending booking", "draft_id", draft.DraftID)
	return true, nil
}

// Confirm creates the appointment from the draft. On success the draft
// is consumed: a stale draft must never be replayed into a second
// appointment. On failure the draft stays intact so the user can retry
// without re-entering the form.
func (f *Flow) Confirm(ctx context.Context) (*model.Cita, error) {
	f.mu.Lock()
	if f.state != StateConfirming && f.state != StateFailed {
		f.mu.Unlock()
		return nil, fmt.Errorf("booking: confirm in state %s", f.state)
	}
	draft := f.draft
	f.mu.Unlock()

	cita, err := f.citas.Crear(ctx, draft.CitaInput())
	if err != nil {
		f.mu.Lock()
		f.state = StateFailed
		f.lastErr = err
		f.mu.Unlock()
		return nil, err
	}

	if err := f.drafts.Clear(ctx); err != nil {
		// The appointment exists; a leftover draft could replay into
		// a second one on the next resume.
		f.logger.Error("appointment created but draft not cleared", "draft_id", draft.DraftID, "error", err)
	}

	f.mu.Lock()
	f.state = StateCreated
	f.created = cita
	f.lastErr = nil
	f.mu.Unlock()
	f.logger.Info("appointment created", "cita_id", cita.ID, "estado", cita.Estado)
	return cita, nil
}

// Reset abandons the in-memory flow and starts over at ChoosingShop.
// The persisted draft, if any, is untouched.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateChoosingShop
	f.draft = PendingBooking{}
	f.created = nil
	f.lastErr = nil
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// PostLoginRoute decides where a successful login lands: the booking
// confirmation when a draft is waiting, the dashboard otherwise.
func PostLoginRoute(ctx context.Context, drafts *DraftStore) string {
	if drafts.Exists(ctx) {
		return "/complete-booking"
	}
	return "/dashboard"
}
