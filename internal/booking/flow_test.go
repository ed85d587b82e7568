package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barberpro-client/internal/model"
	"github.com/barberpro/barberpro-client/internal/statestore"
)

type fakeSession struct{ authed bool }

func (f *fakeSession) IsAuthenticated() bool { return f.authed }

type fakeCitas struct {
	calls   int
	lastIn  model.CreateCitaInput
	nextErr error
}

func (f *fakeCitas) Crear(_ context.Context, input model.CreateCitaInput) (*model.Cita, error) {
	f.calls++
	f.lastIn = input
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	return &model.Cita{
		ID:         101,
		BarberiaID: input.BarberiaID,
		BarberoID:  input.BarberoID,
		ServicioID: input.ServicioID,
		Fecha:      input.Fecha,
		Hora:       input.Hora,
		Estado:     model.CitaPendiente,
		MetodoPago: input.MetodoPago,
	}, nil
}

func corteClasico() model.Servicio {
	return model.Servicio{ID: 5, BarberiaID: 1, Nombre: "Corte Clásico", Precio: "10.00", Duracion: 30}
}

func newTestFlow(t *testing.T, authed bool) (*Flow, *fakeSession, *fakeCitas, *DraftStore) {
	t.Helper()
	persist, err := statestore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	drafts := NewDraftStore(persist)
	sess := &fakeSession{authed: authed}
	citas := &fakeCitas{}
	flow := NewFlow(sess, citas, drafts, nil)
	flow.now = func() time.Time { return time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC) }
	return flow, sess, citas, drafts
}

func validForm() FormInput {
	return FormInput{BarberoID: 3, Fecha: "2025-01-10", Hora: "10:00", MetodoPago: model.PagoEnLocal}
}

func TestAnonymousBookingDetoursThroughLogin(t *testing.T) {
	flow, sess, citas, drafts := newTestFlow(t, false)
	ctx := context.Background()

	require.NoError(t, flow.SelectShop(1))
	assert.Equal(t, StateChoosingService, flow.State())

	require.NoError(t, flow.SelectService(corteClasico()))
	assert.Equal(t, StateFillingForm, flow.State())

	err := flow.Submit(ctx, validForm())
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, StateRedirectingLogin, flow.State())

	// The draft must already be durable by the time the redirect is
	// signaled.
	saved, err := drafts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.BarberiaID)
	assert.Equal(t, 3, saved.BarberoID)
	assert.Equal(t, "Corte Clásico", saved.Servicio.Nombre)
	assert.Equal(t, model.Money("10.00"), saved.Servicio.Precio)
	assert.Equal(t, 30, saved.Servicio.Duracion)
	assert.NotEmpty(t, saved.DraftID)

	// Login lands on the confirmation, not the dashboard.
	sess.authed = true
	assert.Equal(t, "/complete-booking", PostLoginRoute(ctx, drafts))

	resumed, err := flow.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.Equal(t, StateConfirming, flow.State())
	assert.Equal(t, "2025-01-10", flow.Draft().Fecha)
	assert.Equal(t, "10:00", flow.Draft().Hora)

	cita, err := flow.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCreated, flow.State())
	assert.Equal(t, model.CitaPendiente, cita.Estado)
	assert.Equal(t, 1, citas.calls)
	assert.Equal(t, model.PagoEnLocal, citas.lastIn.MetodoPago)

	// Consumed exactly once.
	_, err = drafts.Load(ctx)
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.Equal(t, "/dashboard", PostLoginRoute(ctx, drafts))
}

func TestAuthenticatedBookingSkipsLogin(t *testing.T) {
	flow, _, _, _ := newTestFlow(t, true)
	ctx := context.Background()

	require.NoError(t, flow.SelectShop(2))
	require.NoError(t, flow.SelectService(corteClasico()))
	require.NoError(t, flow.Submit(ctx, validForm()))
	assert.Equal(t, StateConfirming, flow.State())
}

func TestFailedCreationKeepsDraft(t *testing.T) {
	flow, _, citas, drafts := newTestFlow(t, true)
	ctx := context.Background()

	require.NoError(t, flow.SelectShop(1))
	require.NoError(t, flow.SelectService(corteClasico()))
	require.NoError(t, flow.Submit(ctx, validForm()))

	citas.nextErr = errors.New("el horario ya está reservado")
	_, err := flow.Confirm(ctx)
	require.Error(t, err)
	assert.Equal(t, StateFailed, flow.State())
	assert.EqualError(t, flow.Err(), "el horario ya está reservado")

	// Draft survives so the user can retry without re-entering the form.
	require.True(t, drafts.Exists(ctx))

	citas.nextErr = nil
	_, err = flow.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCreated, flow.State())
	assert.False(t, drafts.Exists(ctx))
}

func TestSnapshotShownEvenIfServiceChanges(t *testing.T) {
	flow, _, _, _ := newTestFlow(t, true)

	servicio := corteClasico()
	require.NoError(t, flow.SelectShop(1))
	require.NoError(t, flow.SelectService(servicio))

	// The live record changes after selection; the draft keeps what the
	// user actually saw.
	servicio.Precio = "15.00"
	servicio.Nombre = "Corte Premium"

	draft := flow.Draft()
	assert.Equal(t, model.Money("10.00"), draft.Servicio.Precio)
	assert.Equal(t, "Corte Clásico", draft.Servicio.Nombre)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		input FormInput
		field string
	}{
		{"missing barber", FormInput{Fecha: "2025-01-10", Hora: "10:00", MetodoPago: model.PagoEnLocal}, "barbero"},
		{"bad date format", FormInput{BarberoID: 3, Fecha: "10/01/2025", Hora: "10:00", MetodoPago: model.PagoEnLocal}, "fecha"},
		{"past date", FormInput{BarberoID: 3, Fecha: "2025-01-04", Hora: "10:00", MetodoPago: model.PagoEnLocal}, "fecha"},
		{"bad hour", FormInput{BarberoID: 3, Fecha: "2025-01-10", Hora: "25:99", MetodoPago: model.PagoEnLocal}, "hora"},
		{"bad payment method", FormInput{BarberoID: 3, Fecha: "2025-01-10", Hora: "10:00", MetodoPago: "bitcoin"}, "metodo_pago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, _, _, drafts := newTestFlow(t, true)
			require.NoError(t, flow.SelectShop(1))
			require.NoError(t, flow.SelectService(corteClasico()))

			err := flow.Submit(context.Background(), tt.input)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.False(t, drafts.Exists(context.Background()), "invalid form must not persist a draft")
		})
	}
}

func TestSubmitTodayIsAllowed(t *testing.T) {
	flow, _, _, _ := newTestFlow(t, true)
	require.NoError(t, flow.SelectShop(1))
	require.NoError(t, flow.SelectService(corteClasico()))

	input := validForm()
	input.Fecha = "2025-01-05"
	assert.NoError(t, flow.Submit(context.Background(), input))
}

func TestResumeWithoutDraftIsNoop(t *testing.T) {
	flow, _, _, _ := newTestFlow(t, true)
	resumed, err := flow.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, StateChoosingShop, flow.State())
}

func TestResumeWhileAnonymousIsNoop(t *testing.T) {
	flow, _, _, drafts := newTestFlow(t, false)
	ctx := context.Background()
	require.NoError(t, drafts.Save(ctx, &PendingBooking{BarberiaID: 1, ServicioID: 5}))

	resumed, err := flow.Resume(ctx)
	require.NoError(t, err)
	assert.False(t, resumed, "an anonymous load must not enter confirmation")
}

func TestCorruptDraftTreatedAsAbsent(t *testing.T) {
	persist, err := statestore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, persist.Set(ctx, statestore.KeyPendingBooking, []byte("{broken")))

	drafts := NewDraftStore(persist)
	_, err = drafts.Load(ctx)
	assert.ErrorIs(t, err, ErrNoDraft)
	// And the broken blob is gone.
	_, err = persist.Get(ctx, statestore.KeyPendingBooking)
	assert.ErrorIs(t, err, statestore.ErrNotFound)
}

func TestConfirmOutOfOrder(t *testing.T) {
	flow, _, _, _ := newTestFlow(t, true)
	_, err := flow.Confirm(context.Background())
	assert.Error(t, err)
}

func TestDirectoryIsStatic(t *testing.T) {
	shops := Directory()
	require.Len(t, shops, 3)
	assert.Equal(t, "BarberPro Centro", shops[0].Nombre)
}
