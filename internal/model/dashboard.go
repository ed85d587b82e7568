package model

// DashboardStats is the pre-aggregated dashboard payload from the backend.
type DashboardStats struct {
	CitasHoy         int     `json:"citasHoy"`
	CitasPendientes  int     `json:"citasPendientes"`
	CitasCompletadas int     `json:"citasCompletadas"`
	TotalServicios   int     `json:"totalServicios"`
	CrecimientoCitas float64 `json:"crecimientoCitas,omitempty"`
}

// CitaResumen is the compact upcoming-appointment row for the dashboard.
type CitaResumen struct {
	ID             int    `json:"id"`
	ClienteNombre  string `json:"cliente_nombre"`
	ServicioNombre string `json:"servicio_nombre"`
	Hora           string `json:"hora"`
	Estado         string `json:"estado"`
}
