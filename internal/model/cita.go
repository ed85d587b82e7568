package model

// EstadoCita is the appointment lifecycle state. Transitions are
// server-authoritative; the client only requests them.
type EstadoCita string

const (
	CitaPendiente    EstadoCita = "pendiente"
	CitaConfirmada   EstadoCita = "confirmada"
	CitaCompletada   EstadoCita = "completada"
	CitaCancelada    EstadoCita = "cancelada"
	CitaNoAsistio    EstadoCita = "no_asistio"
	CitaReprogramada EstadoCita = "reprogramada"
)

// Terminal reports whether the appointment can no longer change state.
func (e EstadoCita) Terminal() bool {
	switch e {
	case CitaCompletada, CitaCancelada, CitaNoAsistio:
		return true
	}
	return false
}

// EstadoPago is the payment state, independent of the appointment state.
// The backend documents no coupling rules between the two, so every
// combination is treated as valid.
type EstadoPago string

const (
	PagoPendiente    EstadoPago = "pendiente"
	PagoVerificado   EstadoPago = "verificado"
	PagoEnLocalHecho EstadoPago = "pagado_en_local"
	PagoRechazado    EstadoPago = "rechazado"
)

// MetodoPago is how the client pays for the appointment.
type MetodoPago string

const (
	PagoEnLocal       MetodoPago = "en_local"
	PagoTransferencia MetodoPago = "transferencia"
	PagoPayphone      MetodoPago = "payphone"
)

// Valid reports whether the payment method belongs to the closed set.
func (m MetodoPago) Valid() bool {
	switch m {
	case PagoEnLocal, PagoTransferencia, PagoPayphone:
		return true
	}
	return false
}

// Calificacion is the one-time rating a client attaches to a completed
// appointment.
type Calificacion struct {
	ID         int    `json:"id"`
	CitaID     int    `json:"cita_id"`
	Puntuacion int    `json:"puntuacion"`
	Comentario string `json:"comentario,omitempty"`
}

// Cita is a scheduled service booking. Fecha is "2006-01-02" and Hora is
// "15:04", matching the wire format.
type Cita struct {
	ID                int           `json:"id"`
	ClienteID         int           `json:"cliente_id"`
	BarberiaID        int           `json:"barberia_id"`
	BarberoID         int           `json:"barbero_id"`
	ServicioID        int           `json:"servicio_id"`
	Fecha             string        `json:"fecha"`
	Hora              string        `json:"hora"`
	Estado            EstadoCita    `json:"estado"`
	MetodoPago        MetodoPago    `json:"metodo_pago"`
	EstadoPago        EstadoPago    `json:"estado_pago"`
	CodigoTransaccion string        `json:"codigo_transaccion,omitempty"`
	ComprobanteURL    string        `json:"comprobante_url,omitempty"`
	Total             Money         `json:"total"`
	Calificacion      *Calificacion `json:"calificacion,omitempty"`
	Barbero           *Barbero      `json:"barbero,omitempty"`
	Servicio          *Servicio     `json:"servicio,omitempty"`
	CreatedAt         FlexTime      `json:"created_at"`
	UpdatedAt         FlexTime      `json:"updated_at"`
}

// CreateCitaInput is the appointment creation payload.
type CreateCitaInput struct {
	BarberiaID int        `json:"barberia_id"`
	BarberoID  int        `json:"barbero_id"`
	ServicioID int        `json:"servicio_id"`
	Fecha      string     `json:"fecha"`
	Hora       string     `json:"hora"`
	MetodoPago MetodoPago `json:"metodo_pago"`
}

// CreateCalificacionInput rates a completed appointment.
type CreateCalificacionInput struct {
	CitaID     int    `json:"cita_id"`
	Puntuacion int    `json:"puntuacion"`
	Comentario string `json:"comentario,omitempty"`
}
