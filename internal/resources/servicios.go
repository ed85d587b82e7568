package resources

import (
	"context"
	"fmt"

	"github.com/barberpro/barberpro-client/internal/model"
)

const serviciosPrefix = "servicios"

// Servicios lists and manages a shop's services. Listing is public
// (guests browse services before booking); mutations require a session.
type Servicios struct {
	d         *deps
	createMut MutationState
	updateMut MutationState
	deleteMut MutationState
}

// List returns the services of one shop. A zero barberiaID disables the
// call: service queries are always shop-scoped.
func (s *Servicios) List(ctx context.Context, barberiaID int) ([]model.Servicio, error) {
	if barberiaID == 0 {
		return nil, ErrMissingParam
	}
	key := fmt.Sprintf("%s?barberia_id=%d", serviciosPrefix, barberiaID)
	return fetchCached(ctx, s.d, key, func(ctx context.Context) ([]model.Servicio, error) {
		var out []model.Servicio
		if err := s.d.api.Get(ctx, fmt.Sprintf("/servicios?barberia_id=%d", barberiaID), &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Create adds a service to a shop and invalidates the service lists.
func (s *Servicios) Create(ctx context.Context, input model.CreateServicioInput) (*model.Servicio, error) {
	if err := s.d.requireAuth(); err != nil {
		return nil, err
	}
	var created model.Servicio
	err := s.createMut.run(func() error {
		return s.d.api.Post(ctx, "/servicios", input, &created)
	})
	if err != nil {
		return nil, err
	}
	s.d.cache.InvalidatePrefix(serviciosPrefix)
	return &created, nil
}

// Update edits a service and invalidates the service lists.
func (s *Servicios) Update(ctx context.Context, id int, input model.CreateServicioInput) (*model.Servicio, error) {
	if err := s.d.requireAuth(); err != nil {
		return nil, err
	}
	var updated model.Servicio
	err := s.updateMut.run(func() error {
		return s.d.api.Put(ctx, fmt.Sprintf("/servicios/%d", id), input, &updated)
	})
	if err != nil {
		return nil, err
	}
	s.d.cache.InvalidatePrefix(serviciosPrefix)
	return &updated, nil
}

// Delete removes a service and invalidates the service lists.
func (s *Servicios) Delete(ctx context.Context, id int) error {
	if err := s.d.requireAuth(); err != nil {
		return err
	}
	err := s.deleteMut.run(func() error {
		return s.d.api.Delete(ctx, fmt.Sprintf("/servicios/%d", id))
	})
	if err != nil {
		return err
	}
	s.d.cache.InvalidatePrefix(serviciosPrefix)
	return nil
}

func (s *Servicios) CreateState() *MutationState { return &s.createMut }
func (s *Servicios) UpdateState() *MutationState { return &s.updateMut }
func (s *Servicios) DeleteState() *MutationState { return &s.deleteMut }
