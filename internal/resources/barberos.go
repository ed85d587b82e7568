package resources

import (
	"context"
	"fmt"

	"github.com/barberpro/barberpro-client/internal/model"
)

const barberosKey = "barberos"

// Barberos lists and manages barbers.
type Barberos struct {
	d         *deps
	createMut MutationState
	updateMut MutationState
	deleteMut MutationState
}

// List returns all barbers visible to the session.
func (b *Barberos) List(ctx context.Context) ([]model.Barbero, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	return fetchCached(ctx, b.d, barberosKey, func(ctx context.Context) ([]model.Barbero, error) {
		var out []model.Barbero
		if err := b.d.api.Get(ctx, "/barberos", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Create registers a barber account under a shop.
func (b *Barberos) Create(ctx context.Context, input model.CreateBarberoInput) (*model.Barbero, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	var created model.Barbero
	err := b.createMut.run(func() error {
		return b.d.api.Post(ctx, "/barberos", input, &created)
	})
	if err != nil {
		return nil, err
	}
	b.d.cache.InvalidatePrefix(barberosKey)
	return &created, nil
}

// Update edits a barber record.
func (b *Barberos) Update(ctx context.Context, id int, input model.CreateBarberoInput) (*model.Barbero, error) {
	if err := b.d.requireAuth(); err != nil {
		return nil, err
	}
	var updated model.Barbero
	err := b.updateMut.run(func() error {
		return b.d.api.Put(ctx, fmt.Sprintf("/barberos/%d", id), input, &updated)
	})
	if err != nil {
		return nil, err
	}
	b.d.cache.InvalidatePrefix(barberosKey)
	return &updated, nil
}

// Delete removes a barber.
func (b *Barberos) Delete(ctx context.Context, id int) error {
	if err := b.d.requireAuth(); err != nil {
		return err
	}
	err := b.deleteMut.run(func() error {
		return b.d.api.Delete(ctx, fmt.Sprintf("/barberos/%d", id))
	})
	if err != nil {
		return err
	}
	b.d.cache.InvalidatePrefix(barberosKey)
	return nil
}

func (b *Barberos) CreateState() *MutationState { return &b.createMut }
func (b *Barberos) UpdateState() *MutationState { return &b.updateMut }
func (b *Barberos) DeleteState() *MutationState { return &b.deleteMut }
