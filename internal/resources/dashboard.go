package resources

import (
	"context"

	"github.com/barberpro/barberpro-client/internal/model"
)

const (
	dashboardStatsKey    = "dashboard/stats"
	dashboardProximasKey = "dashboard/citas-proximas"
)

// Dashboard fetches the backend's pre-aggregated dashboard data.
type Dashboard struct {
	d *deps
}

// Stats returns the dashboard stats for the session's role.
func (d *Dashboard) Stats(ctx context.Context) (model.DashboardStats, error) {
	if err := d.d.requireAuth(); err != nil {
		return model.DashboardStats{}, err
	}
	return fetchCached(ctx, d.d, dashboardStatsKey, func(ctx context.Context) (model.DashboardStats, error) {
		var out model.DashboardStats
		if err := d.d.api.Get(ctx, "/dashboard/stats", &out); err != nil {
			return model.DashboardStats{}, err
		}
		return out, nil
	})
}

// CitasProximas returns the upcoming-appointment rows.
func (d *Dashboard) CitasProximas(ctx context.Context) ([]model.CitaResumen, error) {
	if err := d.d.requireAuth(); err != nil {
		return nil, err
	}
	return fetchCached(ctx, d.d, dashboardProximasKey, func(ctx context.Context) ([]model.CitaResumen, error) {
		var out []model.CitaResumen
		if err := d.d.api.Get(ctx, "/dashboard/citas-proximas", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Refresh drops both dashboard cache entries so the next read refetches.
func (d *Dashboard) Refresh() {
	d.d.cache.Invalidate(dashboardStatsKey)
	d.d.cache.Invalidate(dashboardProximasKey)
}
