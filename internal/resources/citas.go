package resources

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/barberpro/barberpro-client/internal/model"
)

const citasKey = "citas"

// Citas lists the session's appointments and requests lifecycle
// transitions. Transitions are server-authoritative: nothing here
// mutates local state until the server confirms.
type Citas struct {
	d              *deps
	crearMut       MutationState
	confirmarMut   MutationState
	completarMut   MutationState
	cancelarMut    MutationState
	calificarMut   MutationState
	comprobanteMut MutationState
}

// List returns the appointments visible to the session (the backend
// scopes by role).
func (c *Citas) List(ctx context.Context) ([]model.Cita, error) {
	if err := c.d.requireAuth(); err != nil {
		return nil, err
	}
	return fetchCached(ctx, c.d, citasKey, func(ctx context.Context) ([]model.Cita, error) {
		var out []model.Cita
		if err := c.d.api.Get(ctx, "/citas", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Crear books an appointment. The server may reject for slot conflicts
// or past dates; the client-side date check in the booking flow is
// advisory only.
func (c *Citas) Crear(ctx context.Context, input model.CreateCitaInput) (*model.Cita, error) {
	if err := c.d.requireAuth(); err != nil {
		return nil, err
	}
	var created model.Cita
	err := c.crearMut.run(func() error {
		return c.d.api.Post(ctx, "/citas", input, &created)
	})
	if err != nil {
		return nil, err
	}
	c.d.cache.InvalidatePrefix(citasKey)
	return &created, nil
}

// Confirmar asks the server to move a pending appointment to
// confirmada. The shop owner or the assigned barber may do this; the
// server enforces it.
func (c *Citas) Confirmar(ctx context.Context, citaID int) error {
	if err := c.d.requireAuth(); err != nil {
		return err
	}
	err := c.confirmarMut.run(func() error {
		return c.d.api.Post(ctx, fmt.Sprintf("/citas/%d/confirmar", citaID), nil, nil)
	})
	if err != nil {
		return err
	}
	c.d.cache.InvalidatePrefix(citasKey)
	return nil
}

// Completar asks the server to mark the appointment completed. Only the
// assigned barber may do this; the server enforces it.
func (c *Citas) Completar(ctx context.Context, citaID int) error {
	if err := c.d.requireAuth(); err != nil {
		return err
	}
	err := c.completarMut.run(func() error {
		return c.d.api.Post(ctx, fmt.Sprintf("/citas/%d/completar", citaID), nil, nil)
	})
	if err != nil {
		return err
	}
	c.d.cache.InvalidatePrefix(citasKey)
	return nil
}

// Cancelar requests cancellation of an appointment.
func (c *Citas) Cancelar(ctx context.Context, citaID int) error {
	if err := c.d.requireAuth(); err != nil {
		return err
	}
	err := c.cancelarMut.run(func() error {
		return c.d.api.Delete(ctx, fmt.Sprintf("/citas/%d", citaID))
	})
	if err != nil {
		return err
	}
	c.d.cache.InvalidatePrefix(citasKey)
	return nil
}

// Calificar attaches the one-time rating to a completed appointment.
func (c *Citas) Calificar(ctx context.Context, input model.CreateCalificacionInput) error {
	if err := c.d.requireAuth(); err != nil {
		return err
	}
	err := c.calificarMut.run(func() error {
		return c.d.api.Post(ctx, "/calificaciones", input, nil)
	})
	if err != nil {
		return err
	}
	c.d.cache.InvalidatePrefix(citasKey)
	return nil
}

// UploadComprobante uploads a payment receipt for a transfer payment.
// This is a separate request from appointment creation with its own
// failure domain: a failed upload never rolls back the appointment.
func (c *Citas) UploadComprobante(ctx context.Context, citaID int, fileName string, file io.Reader) error {
	if err := c.d.requireAuth(); err != nil {
		return err
	}
	err := c.comprobanteMut.run(func() error {
		return c.d.api.PostMultipart(ctx, fmt.Sprintf("/citas/%d/upload-comprobante", citaID),
			map[string]string{"cita_id": strconv.Itoa(citaID)}, "comprobante", fileName, file, nil)
	})
	if err != nil {
		return err
	}
	c.d.cache.InvalidatePrefix(citasKey)
	return nil
}

func (c *Citas) CrearState() *MutationState       { return &c.crearMut }
func (c *Citas) ConfirmarState() *MutationState   { return &c.confirmarMut }
func (c *Citas) CompletarState() *MutationState   { return &c.completarMut }
func (c *Citas) CancelarState() *MutationState    { return &c.cancelarMut }
func (c *Citas) CalificarState() *MutationState   { return &c.calificarMut }
func (c *Citas) ComprobanteState() *MutationState { return &c.comprobanteMut }
