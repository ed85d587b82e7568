package model

import "time"

// Servicio is a service offered by exactly one shop. Duracion is minutes.
type Servicio struct {
	ID          int       `json:"id"`
	BarberiaID  int       `json:"barberia_id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Duracion    int       `json:"duracion"`
	Precio      Money     `json:"precio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateServicioInput is the payload for creating or updating a service.
type CreateServicioInput struct {
	BarberiaID  int     `json:"barberia_id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Duracion    int     `json:"duracion"`
	Precio      float64 `json:"precio"`
}

// ServicioSnapshot is what the booking flow captures at selection time.
// The confirmation screen renders the snapshot, not the live record, so
// the user confirms exactly what they saw.
type ServicioSnapshot struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Precio   Money  `json:"precio"`
	Duracion int    `json:"duracion"`
}

// Snapshot captures the fields shown on the confirmation screen.
func (s Servicio) Snapshot() ServicioSnapshot {
	return ServicioSnapshot{ID: s.ID, Nombre: s.Nombre, Precio: s.Precio, Duracion: s.Duracion}
}
