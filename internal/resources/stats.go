package resources

import (
	"time"

	"github.com/barberpro/barberpro-client/internal/model"
)

// BarberoStats is derived client-side from a fetched barber list, never
// fetched pre-aggregated. Recomputed on every list update.
type BarberoStats struct {
	Total     int
	Activos   int
	Inactivos int
	// Nuevos counts barbers whose created_at falls in the current
	// calendar month and year at evaluation time, not a rolling
	// 30-day window.
	Nuevos int
}

// ComputeBarberoStats derives the stats from a barber list as of now.
func ComputeBarberoStats(barberos []model.Barbero, now time.Time) BarberoStats {
	stats := BarberoStats{Total: len(barberos)}
	for _, b := range barberos {
		switch b.Estado {
		case model.BarberoActivo:
			stats.Activos++
		case model.BarberoInactivo:
			stats.Inactivos++
		}
		created := b.CreatedAt.Time
		if !created.IsZero() && created.Month() == now.Month() && created.Year() == now.Year() {
			stats.Nuevos++
		}
	}
	return stats
}

// CitaCounts summarizes an appointment list by lifecycle state.
type CitaCounts struct {
	Pendientes  int
	Confirmadas int
	Completadas int
}

// CountCitas derives the summary row shown above the appointment list.
func CountCitas(citas []model.Cita) CitaCounts {
	var counts CitaCounts
	for _, c := range citas {
		switch c.Estado {
		case model.CitaPendiente:
			counts.Pendientes++
		case model.CitaConfirmada:
			counts.Confirmadas++
		case model.CitaCompletada:
			counts.Completadas++
		}
	}
	return counts
}

// FilterCitas applies the list page's client-side filters. A zero value
// leaves that filter off.
func FilterCitas(citas []model.Cita, estado model.EstadoCita, barberoID int) []model.Cita {
	out := make([]model.Cita, 0, len(citas))
	for _, c := range citas {
		if estado != "" && c.Estado != estado {
			continue
		}
		if barberoID != 0 && c.BarberoID != barberoID {
			continue
		}
		out = append(out, c)
	}
	return out
}
