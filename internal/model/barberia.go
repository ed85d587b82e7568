package model

import "time"

// EstadoBarberia is the shop approval state. Shops are created pendiente
// by an owner and move to aprobada/rechazada only through admin action.
type EstadoBarberia string

const (
	BarberiaPendiente EstadoBarberia = "pendiente"
	BarberiaAprobada  EstadoBarberia = "aprobada"
	BarberiaRechazada EstadoBarberia = "rechazada"
)

// Barberia is a tenant shop owning services and barbers.
type Barberia struct {
	ID          int            `json:"id"`
	Nombre      string         `json:"nombre"`
	Descripcion string         `json:"descripcion"`
	Direccion   string         `json:"direccion"`
	Telefono    string         `json:"telefono"`
	Email       string         `json:"email"`
	LogoURL     string         `json:"logo_url,omitempty"`
	Estado      EstadoBarberia `json:"estado"`
	OwnerID     int            `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateBarberiaInput is the payload for registering a new shop.
type CreateBarberiaInput struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
	OwnerID     int    `json:"owner_id"`
}
