package model

// EstadoBarbero is the barber activity state.
type EstadoBarbero string

const (
	BarberoActivo   EstadoBarbero = "activo"
	BarberoInactivo EstadoBarbero = "inactivo"
)

// Horario is a weekly availability window for a barber.
type Horario struct {
	ID         int    `json:"id"`
	BarberoID  int    `json:"barbero_id"`
	DiaSemana  int    `json:"dia_semana"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

// Barbero belongs to one shop, offers a subset of that shop's services and
// has a set of weekly availability windows.
type Barbero struct {
	ID         int           `json:"id"`
	UserID     int           `json:"user_id"`
	BarberiaID int           `json:"barberia_id"`
	FotoURL    string        `json:"foto_url,omitempty"`
	Biografia  string        `json:"biografia,omitempty"`
	Estado     EstadoBarbero `json:"estado"`
	CreatedAt  FlexTime      `json:"created_at"`
	UpdatedAt  FlexTime      `json:"updated_at"`
	User       *User         `json:"user,omitempty"`
	Barberia   *Barberia     `json:"barberia,omitempty"`
	Servicios  []Servicio    `json:"servicios,omitempty"`
	Horarios   []Horario     `json:"horarios,omitempty"`
}

// CreateBarberoInput registers a barber account under a shop.
type CreateBarberoInput struct {
	Nombre     string `json:"nombre"`
	Email      string `json:"email"`
	Telefono   string `json:"telefono"`
	Password   string `json:"password,omitempty"`
	Biografia  string `json:"biografia,omitempty"`
	BarberiaID int    `json:"barberia_id"`
}
