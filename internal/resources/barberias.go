package resources

import (
	"context"
	"fmt"

	"github.com/barberpro/barberpro-client/internal/model"
)

const barberiasKey = "barberias"

// Barberias lists and manages shops, including the admin approval flow.
type Barberias struct {
	d           *deps
	createMut   MutationState
	updateMut   MutationState
	deleteMut   MutationState
	aprobarMut  MutationState
	rechazarMut MutationState
}

// List returns all shops visible to the session.
func (b *Barberias) List(ctx context.Context) ([]model.Barberia, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	return fetchCached(ctx, b.d, barberiasKey, func(ctx context.Context) ([]model.Barberia, error) {
		var out []model.Barberia
		if err := b.d.api.Get(ctx, "/barberias", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Create registers a shop; the backend creates it in estado pendiente.
func (b *Barberias) Create(ctx context.Context, input model.CreateBarberiaInput) (*model.Barberia, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	var created model.Barberia
	err := b.createMut.run(func() error {
		return b.d.api.Post(ctx, "/barberias", input, &created)
	})
	if err != nil {
		return nil, err
	}
	b.d.cache.InvalidatePrefix(barberiasKey)
	return &created, nil
}

// Update edits shop details. OwnerID is immutable server-side.
func (b *Barberias) Update(ctx context.Context, id int, input model.CreateBarberiaInput) (*model.Barberia, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	var updated model.Barberia
	err := b.updateMut.run(func() error {
		return b.d.api.Put(ctx, fmt.Sprintf("/barberias/%d", id), input, &updated)
	})
	if err != nil {
		return nil, err
	}
	b.d.cache.InvalidatePrefix(barberiasKey)
	return &updated, nil
}

// Delete removes a shop.
func (b *Barberias) Delete(ctx context.Context, id int) error {
	if err := b.d.requireAuth(); err != nil {
		return err
	}
	err := b.deleteMut.run(func() error {
		return b.d.api.Delete(ctx, fmt.Sprintf("/barberias/%d", id))
	})
	if err != nil {
		return err
	}
	b.d.cache.InvalidatePrefix(barberiasKey)
	return nil
}

// Aprobar approves a pending shop (admin action).
func (b *Barberias) Aprobar(ctx context.Context, id int) (*model.Barberia, error) {
	return b.decide(ctx, id, "aprobar", &b.aprobarMut)
}

// Rechazar rejects a pending shop (admin action).
func (b *Barberias) Rechazar(ctx context.Context, id int) (*model.Barberia, error) {
	return b.decide(ctx, id, "rechazar", &b.rechazarMut)
}

func (b *Barberias) decide(ctx context.Context, id int, action string, mut *MutationState) (*model.Barberia, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	var decided model.Barberia
	err := mut.run(func() error {
		return b.d.api.Post(ctx, fmt.Sprintf("/barberias/%d/%s", id, action), nil, &decided)
	})
	if err != nil {
		return nil, err
	}
	b.d.cache.InvalidatePrefix(barberiasKey)
	return &decided, nil
}

func (b *Barberias) CreateState() *MutationState   { return &b.createMut }
func (b *Barberias) UpdateState() *MutationState   { return &b.updateMut }
func (b *Barberias) DeleteState() *MutationState   { return &b.deleteMut }
func (b *Barberias) AprobarState() *MutationState  { return &b.aprobarMut }
func (b *Barberias) RechazarState() *MutationState { return &b.rechazarMut }
