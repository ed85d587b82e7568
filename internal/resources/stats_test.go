package resources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barberpro/barberpro-client/internal/model"
)

func barberoCreated(estado model.EstadoBarbero, created time.Time) model.Barbero {
	return model.Barbero{Estado: estado, CreatedAt: model.FlexTime{Time: created}}
}

func TestComputeBarberoStatsNewThisMonth(t *testing.T) {
	now := time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)
	barberos := []model.Barbero{
		barberoCreated(model.BarberoActivo, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)),
		barberoCreated(model.BarberoActivo, time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC)),
		barberoCreated(model.BarberoInactivo, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)),
	}

	stats := ComputeBarberoStats(barberos, now)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Activos)
	assert.Equal(t, 1, stats.Inactivos)
	assert.Equal(t, 1, stats.Nuevos, "same month last year and last month must not count")
}

func TestComputeBarberoStatsZeroCreatedAt(t *testing.T) {
	stats := ComputeBarberoStats([]model.Barbero{{Estado: model.BarberoActivo}}, time.Now())
	assert.Equal(t, 0, stats.Nuevos)
}

func TestCountCitas(t *testing.T) {
	citas := []model.Cita{
		{Estado: model.CitaPendiente},
		{Estado: model.CitaPendiente},
		{Estado: model.CitaConfirmada},
		{Estado: model.CitaCompletada},
		{Estado: model.CitaCancelada},
	}
	counts := CountCitas(citas)
	assert.Equal(t, CitaCounts{Pendientes: 2, Confirmadas: 1, Completadas: 1}, counts)
}

func TestFilterCitas(t *testing.T) {
	citas := []model.Cita{
		{ID: 1, Estado: model.CitaPendiente, BarberoID: 3},
		{ID: 2, Estado: model.CitaConfirmada, BarberoID: 3},
		{ID: 3, Estado: model.CitaConfirmada, BarberoID: 5},
	}

	got := FilterCitas(citas, model.CitaConfirmada, 0)
	assert.Len(t, got, 2)

	got = FilterCitas(citas, model.CitaConfirmada, 3)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	got = FilterCitas(citas, "", 0)
	assert.Len(t, got, 3)
}
