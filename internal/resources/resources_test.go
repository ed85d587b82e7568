package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barberpro-client/internal/api"
	"github.com/barberpro/barberpro-client/internal/model"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

type fakeAuth struct{ authed bool }

func (f *fakeAuth) IsAuthenticated() bool { return f.authed }

type countingServer struct {
	*httptest.Server
	hits map[string]*atomic.Int64
}

func (s *countingServer) count(path string) int64 {
	if c, ok := s.hits[path]; ok {
		return c.Load()
	}
	return 0
}

func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *countingServer {
	t.Helper()
	hits := make(map[string]*atomic.Int64)
	for path := range routes {
		hits[path] = &atomic.Int64{}
	}
	mux := http.NewServeMux()
	for path, handler := range routes {
		path, handler := path, handler
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			hits[path].Add(1)
			handler(w, r)
		})
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return &countingServer{Server: ts, hits: hits}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func newResources(t *testing.T, backend *countingServer, authed bool) *Resources {
	t.Helper()
	client := api.NewClient(backend.URL, nil, nil)
	return New(client, &fakeAuth{authed: authed}, nil)
}

func TestServiciosListCachesByShop(t *testing.T) {
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/servicios": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, []model.Servicio{{ID: 1, BarberiaID: 1, Nombre: "Corte Clásico", Duracion: 30, Precio: "10.00"}})
		},
	})
	r := newResources(t, backend, false)
	ctx := context.Background()

	first, err := r.Servicios.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Corte Clásico", first[0].Nombre)

	_, err = r.Servicios.List(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, backend.count("/servicios"), "second read must come from cache")
}

func TestServiciosListRequiresShopID(t *testing.T) {
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/servicios": func(w http.ResponseWriter, r *http.Request) { writeJSON(t, w, []model.Servicio{}) },
	})
	r := newResources(t, backend, false)

	_, err := r.Servicios.List(context.Background(), 0)
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.EqualValues(t, 0, backend.count("/servicios"), "missing param must not hit the network")
}

func TestMutationInvalidatesListCache(t *testing.T) {
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/servicios": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				writeJSON(t, w, model.Servicio{ID: 9, Nombre: "Afeitado"})
				return
			}
			writeJSON(t, w, []model.Servicio{{ID: 1}})
		},
	})
	r := newResources(t, backend, true)
	ctx := context.Background()

	_, err := r.Servicios.List(ctx, 1)
	require.NoError(t, err)

	created, err := r.Servicios.Create(ctx, model.CreateServicioInput{BarberiaID: 1, Nombre: "Afeitado", Duracion: 20, Precio: 8})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	_, err = r.Servicios.List(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, backend.count("/servicios"), "list + create + refetch after invalidation")
}

func TestAuthGatedListWithoutSession(t *testing.T) {
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/barberos": func(w http.ResponseWriter, r *http.Request) { writeJSON(t, w, []model.Barbero{}) },
		"/citas":    func(w http.ResponseWriter, r *http.Request) { writeJSON(t, w, []model.Cita{}) },
	})
	r := newResources(t, backend, false)
	ctx := context.Background()

	_, err := r.Barberos.List(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = r.Citas.List(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = r.Dashboard.Stats(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.EqualValues(t, 0, backend.count("/barberos"))
	assert.EqualValues(t, 0, backend.count("/citas"))
}

func TestMutationStateTracksPendingAndError(t *testing.T) {
	release := make(chan struct{})
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/barberos": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				<-release
				http.Error(w, `{"message":"email ya registrado"}`, http.StatusUnprocessableEntity)
				return
			}
			writeJSON(t, w, []model.Barbero{})
		},
	})
	r := newResources(t, backend, true)

	done := make(chan error, 1)
	go func() {
		_, err := r.Barberos.Create(context.Background(), model.CreateBarberoInput{Nombre: "X", BarberiaID: 1})
		done <- err
	}()

	require.Eventually(t, func() bool { return r.Barberos.CreateState().Pending() },
		testWait, testTick, "pending flag must be up while the request is in flight")

	close(release)
	err := <-done
	require.Error(t, err)
	assert.False(t, r.Barberos.CreateState().Pending())
	assert.Equal(t, "email ya registrado", api.ErrorMessage(r.Barberos.CreateState().Err(), "fallback"))
}

func TestCitaLifecycleCallsInvalidate(t *testing.T) {
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/citas": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				writeJSON(t, w, model.Cita{ID: 42, Estado: model.CitaPendiente})
				return
			}
			writeJSON(t, w, []model.Cita{{ID: 42, Estado: model.CitaPendiente}})
		},
		"/citas/42/confirmar": func(w http.ResponseWriter, r *http.Request) { writeJSON(t, w, map[string]string{"estado": "confirmada"}) },
		"/citas/42/completar": func(w http.ResponseWriter, r *http.Request) { writeJSON(t, w, map[string]string{"estado": "completada"}) },
		"/calificaciones":     func(w http.ResponseWriter, r *http.Request) { writeJSON(t, w, map[string]int{"id": 1}) },
	})
	r := newResources(t, backend, true)
	ctx := context.Background()

	created, err := r.Citas.Crear(ctx, model.CreateCitaInput{BarberiaID: 1, BarberoID: 3, ServicioID: 1, Fecha: "2030-01-10", Hora: "10:00", MetodoPago: model.PagoEnLocal})
	require.NoError(t, err)
	assert.Equal(t, model.CitaPendiente, created.Estado)

	_, err = r.Citas.List(ctx)
	require.NoError(t, err)

	require.NoError(t, r.Citas.Confirmar(ctx, 42))
	require.NoError(t, r.Citas.Completar(ctx, 42))
	_, err = r.Citas.List(ctx)
	require.NoError(t, err)

	require.NoError(t, r.Citas.Calificar(ctx, model.CreateCalificacionInput{CitaID: 42, Puntuacion: 5}))

	// GET /citas twice (post-create and post-complete invalidations both
	// forced a refetch), plus POST once.
	assert.EqualValues(t, 3, backend.count("/citas"))
	assert.EqualValues(t, 1, backend.count("/citas/42/confirmar"))
	assert.EqualValues(t, 1, backend.count("/citas/42/completar"))
	assert.EqualValues(t, 1, backend.count("/calificaciones"))
}

func TestDashboardFetch(t *testing.T) {
	backend := newBackend(t, map[string]http.HandlerFunc{
		"/dashboard/stats": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, model.DashboardStats{CitasHoy: 4, CitasPendientes: 2, TotalServicios: 6})
		},
		"/dashboard/citas-proximas": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, []model.CitaResumen{{ID: 1, ClienteNombre: "Ana", Hora: "10:00", Estado: "pendiente"}})
		},
	})
	r := newResources(t, backend, true)
	ctx := context.Background()

	stats, err := r.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.CitasHoy)

	proximas, err := r.Dashboard.CitasProximas(ctx)
	require.NoError(t, err)
	require.Len(t, proximas, 1)

	r.Dashboard.Refresh()
	_, err = r.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, backend.count("/dashboard/stats"), "Refresh must force a refetch")
}
