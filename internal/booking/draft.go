package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barberpro/barberpro-client/internal/model"
	"github.com/barberpro/barberpro-client/internal/statestore"
)

// ErrNoDraft means no pending booking is stored.
var ErrNoDraft = errors.New("booking: no pending booking draft")

// PendingBooking is the resumable-workflow token that bridges the
// booking form across a login redirect. It is created when a visitor
// completes the form, persisted client-locally under a fixed key, and
// consumed exactly once after a successful appointment creation. It is
// never sent to the server as-is.
type PendingBooking struct {
	DraftID    string                 `json:"draft_id"`
	BarberiaID int                    `json:"barberiaId"`
	BarberoID  int                    `json:"barberoId"`
	ServicioID int                    `json:"servicioId"`
	Fecha      string                 `json:"fecha"`
	Hora       string                 `json:"hora"`
	MetodoPago model.MetodoPago       `json:"metodoPago"`
	Servicio   model.ServicioSnapshot `json:"servicio"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// CitaInput converts the draft into the appointment creation payload.
func (p PendingBooking) CitaInput() model.CreateCitaInput {
	return model.CreateCitaInput{
		BarberiaID: p.BarberiaID,
		BarberoID:  p.BarberoID,
		ServicioID: p.ServicioID,
		Fecha:      p.Fecha,
		Hora:       p.Hora,
		MetodoPago: p.MetodoPago,
	}
}

// DraftStore persists the single pending-booking draft.
type DraftStore struct {
	persist statestore.Store
}

func NewDraftStore(persist statestore.Store) *DraftStore {
	return &DraftStore{persist: persist}
}

// Save writes the draft, stamping a draft id when missing.
func (s *DraftStore) Save(ctx context.Context, draft *PendingBooking) error {
	if draft.DraftID == "" {
		draft.DraftID = uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("booking: marshal draft: %w", err)
	}
	if err := s.persist.Set(ctx, statestore.KeyPendingBooking, data); err != nil {
		return fmt.Errorf("booking: persist draft: %w", err)
	}
	return nil
}

// Load returns the stored draft, or ErrNoDraft. A corrupt blob is
// treated as absent and removed.
func (s *DraftStore) Load(ctx context.Context) (*PendingBooking, error) {
	data, err := s.persist.Get(ctx, statestore.KeyPendingBooking)
	if errors.Is(err, statestore.ErrNotFound) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("booking: load draft: %w", err)
	}
	var draft PendingBooking
	if err := json.Unmarshal(data, &draft); err != nil {
		_ = s.persist.Delete(ctx, statestore.KeyPendingBooking)
		return nil, ErrNoDraft
	}
	return &draft, nil
}

// Clear deletes the draft.
func (s *DraftStore) Clear(ctx context.Context) error {
	if err := s.persist.Delete(ctx, statestore.KeyPendingBooking); err != nil {
		return fmt.Errorf("booking: clear draft: %w", err)
	}
	return nil
}

// Exists reports whether a draft is stored.
func (s *DraftStore) Exists(ctx context.Context) bool {
	_, err := s.Load(ctx)
	return err == nil
}
