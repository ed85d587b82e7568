package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/barberpro/barberpro-client/internal/api"
	"github.com/barberpro/barberpro-client/internal/booking"
	"github.com/barberpro/barberpro-client/internal/citas"
	"github.com/barberpro/barberpro-client/internal/config"
	"github.com/barberpro/barberpro-client/internal/model"
	"github.com/barberpro/barberpro-client/internal/nav"
	"github.com/barberpro/barberpro-client/internal/observability/metrics"
	"github.com/barberpro/barberpro-client/internal/resources"
	"github.com/barberpro/barberpro-client/internal/session"
	"github.com/barberpro/barberpro-client/internal/statestore"
	"github.com/barberpro/barberpro-client/pkg/logging"
)

const usage = `barberctl <command> [flags]

Auth:
  login         -email -password
  register      -nombre -email -telefono -password
  logout
  whoami

Browsing:
  shops                              (static directory, no login needed)
  barberias                          (live list)
  servicios     -barberia <id>
  barberos

Booking:
  book          -barberia -servicio -barbero -fecha -hora -metodo
  resume                             (finish a booking saved before login)

Appointments:
  citas         [-estado] [-barbero]
  confirmar     -id
  completar     -id
  cancelar      -id
  calificar     -cita -puntuacion [-comentario]
  comprobante   -cita -file

Management:
  aprobar       -id
  rechazar      -id
  dashboard
`

func main() {
	// A .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a, cleanup, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", api.ErrorMessage(err, err.Error()))
		os.Exit(1)
	}
}

type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	sessions *session.Store
	client   *api.Client
	res      *resources.Resources
	drafts   *booking.DraftStore
	flow     *booking.Flow
	out      io.Writer
}

func newApp(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*app, func(), error) {
	persist, cleanup, err := openStateStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	sessions := session.Open(ctx, persist, logger)

	client := api.NewClient(cfg.APIBaseURL, sessions, logger).WithTimeout(cfg.RequestTimeout)
	if cfg.MetricsEnabled {
		client = client.WithMetrics(metrics.NewAPIMetrics(nil))
	}

	res := resources.New(client, sessions, logger)
	drafts := booking.NewDraftStore(persist)

	return &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		client:   client,
		res:      res,
		drafts:   drafts,
		flow:     booking.NewFlow(sessions, res.Citas, drafts, logger),
		out:      os.Stdout,
	}, cleanup, nil
}

func openStateStore(ctx context.Context, cfg *config.Config) (statestore.Store, func(), error) {
	switch cfg.StateBackend {
	case "redis":
		store, err := statestore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect state store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	case "file":
		store, err := statestore.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open state dir: %w", err)
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		if err := a.sessions.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "shops":
		return a.cmdShops()
	case "barberias":
		return a.cmdBarberias(ctx)
	case "servicios":
		return a.cmdServicios(ctx, args)
	case "barberos":
		return a.cmdBarberos(ctx)
	case "book":
		return a.cmdBook(ctx, args)
	case "resume":
		return a.cmdResume(ctx)
	case "citas":
		return a.cmdCitas(ctx, args)
	case "confirmar":
		return a.citaAction(ctx, args, a.res.Citas.Confirmar)
	case "completar":
		return a.citaAction(ctx, args, a.res.Citas.Completar)
	case "cancelar":
		return a.citaAction(ctx, args, a.res.Citas.Cancelar)
	case "calificar":
		return a.cmdCalificar(ctx, args)
	case "comprobante":
		return a.cmdComprobante(ctx, args)
	case "aprobar":
		return a.cmdDecideBarberia(ctx, args, a.res.Barberias.Aprobar)
	case "rechazar":
		return a.cmdDecideBarberia(ctx, args, a.res.Barberias.Rechazar)
	case "dashboard":
		return a.cmdDashboard(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.sessions.Login(ctx, auth.Token, auth.User); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s (%s)\n", auth.User.Nombre, auth.User.RoleName())

	// A booking saved before the login detour takes priority over the
	// dashboard.
	route := booking.PostLoginRoute(ctx, a.drafts)
	fmt.Fprintf(a.out, "next: %s\n", route)
	if route == "/complete-booking" {
		fmt.Fprintln(a.out, "you have an unfinished booking; run `barberctl resume` to confirm it")
	}
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	nombre := fs.String("nombre", "", "full name")
	email := fs.String("email", "", "account email")
	telefono := fs.String("telefono", "", "phone number")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.client.Register(ctx, api.RegisterInput{
		Nombre:   *nombre,
		Email:    *email,
		Telefono: *telefono,
		Password: *password,
	})
	if err != nil {
		return err
	}
	if err := a.sessions.Login(ctx, auth.Token, auth.User); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered and logged in as %s\n", auth.User.Nombre)
	return nil
}

func (a *app) cmdWhoami() error {
	if !a.sessions.IsAuthenticated() {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	user := a.sessions.User()
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", user.Nombre, user.Email, user.RoleName())
	if exp := a.sessions.TokenExpiry(); !exp.IsZero() {
		fmt.Fprintf(a.out, "token expires %s\n", exp.Format(time.RFC3339))
	}
	fmt.Fprintln(a.out, "menu:")
	for _, link := range nav.LinksFor(a.sessions.Role()) {
		fmt.Fprintf(a.out, "  %-10s %s\n", link.Label, link.Path)
	}
	return nil
}

func (a *app) cmdShops() error {
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tDIRECCION\tTELEFONO")
	for _, b := range booking.Directory() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", b.ID, b.Nombre, b.Direccion, b.Telefono)
	}
	return w.Flush()
}

func (a *app) cmdBarberias(ctx context.Context) error {
	list, err := a.res.Barberias.List(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tESTADO\tDIRECCION")
	for _, b := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", b.ID, b.Nombre, b.Estado, b.Direccion)
	}
	return w.Flush()
}

func (a *app) cmdServicios(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("servicios", flag.ExitOnError)
	barberiaID := fs.Int("barberia", 0, "shop id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.res.Servicios.List(ctx, *barberiaID)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tPRECIO\tDURACION")
	for _, s := range list {
		fmt.Fprintf(w, "%d\t%s\t$%s\t%d min\n", s.ID, s.Nombre, s.Precio, s.Duracion)
	}
	return w.Flush()
}

func (a *app) cmdBarberos(ctx context.Context) error {
	list, err := a.res.Barberos.List(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tESTADO")
	for _, b := range list {
		nombre := ""
		if b.User != nil {
			nombre = b.User.Nombre
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, nombre, b.Estado)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	stats := resources.ComputeBarberoStats(list, time.Now())
	fmt.Fprintf(a.out, "total %d, activos %d, inactivos %d, nuevos este mes %d\n",
		stats.Total, stats.Activos, stats.Inactivos, stats.Nuevos)
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	barberiaID := fs.Int("barberia", 0, "shop id")
	servicioID := fs.Int("servicio", 0, "service id")
	barberoID := fs.Int("barbero", 0, "barber id")
	fecha := fs.String("fecha", "", "date (2006-01-02)")
	hora := fs.String("hora", "", "time (15:04)")
	metodo := fs.String("metodo", string(model.PagoEnLocal), "payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.flow.SelectShop(*barberiaID); err != nil {
		return err
	}

	// Service selection snapshots name, price and duration so the
	// confirmation shows exactly what was picked.
	servicios, err := a.res.Servicios.List(ctx, *barberiaID)
	if err != nil {
		return err
	}
	var servicio *model.Servicio
	for i := range servicios {
		if servicios[i].ID == *servicioID {
			servicio = &servicios[i]
			break
		}
	}
	if servicio == nil {
		return fmt.Errorf("servicio %d not offered by barberia %d", *servicioID, *barberiaID)
	}
	if err := a.flow.SelectService(*servicio); err != nil {
		return err
	}

	err = a.flow.Submit(ctx, booking.FormInput{
		BarberoID:  *barberoID,
		Fecha:      *fecha,
		Hora:       *hora,
		MetodoPago: model.MetodoPago(*metodo),
	})
	if errors.Is(err, booking.ErrLoginRequired) {
		fmt.Fprintln(a.out, "booking saved; log in with `barberctl login` and run `barberctl resume` to confirm")
		return nil
	}
	if err != nil {
		return err
	}
	return a.confirmBooking(ctx)
}

func (a *app) cmdResume(ctx context.Context) error {
	resumed, err := a.flow.Resume(ctx)
	if err != nil {
		return err
	}
	if !resumed {
		fmt.Fprintln(a.out, "nothing to resume")
		return nil
	}
	draft := a.flow.Draft()
	fmt.Fprintf(a.out, "resuming: %s ($%s, %d min) on %s at %s\n",
		draft.Servicio.Nombre, draft.Servicio.Precio, draft.Servicio.Duracion, draft.Fecha, draft.Hora)
	return a.confirmBooking(ctx)
}

func (a *app) confirmBooking(ctx context.Context) error {
	cita, err := a.flow.Confirm(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "cita %d created, estado %s\n", cita.ID, cita.Estado)
	time.Sleep(a.cfg.ConfirmationDelay)
	fmt.Fprintln(a.out, "next: /citas")
	return nil
}

func (a *app) cmdCitas(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("citas", flag.ExitOnError)
	estado := fs.String("estado", "", "filter by estado")
	barberoID := fs.Int("barbero", 0, "filter by barber id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.res.Citas.List(ctx)
	if err != nil {
		return err
	}
	counts := resources.CountCitas(list)
	fmt.Fprintf(a.out, "pendientes %d, confirmadas %d, completadas %d\n",
		counts.Pendientes, counts.Confirmadas, counts.Completadas)

	filtered := resources.FilterCitas(list, model.EstadoCita(*estado), *barberoID)
	user := a.sessions.User()
	w := a.table()
	fmt.Fprintln(w, "ID\tFECHA\tHORA\tESTADO\tPAGO\tACCIONES")
	for i := range filtered {
		c := &filtered[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Fecha, c.Hora, c.Estado, c.EstadoPago, actionList(user, c))
	}
	return w.Flush()
}

func actionList(user *model.User, c *model.Cita) string {
	actions := citas.AllowedActions(user, c)
	if len(actions) == 0 {
		return "-"
	}
	out := ""
	for i, action := range actions {
		if i > 0 {
			out += ","
		}
		out += string(action)
	}
	return out
}

func (a *app) citaAction(ctx context.Context, args []string, do func(context.Context, int) error) error {
	fs := flag.NewFlagSet("cita", flag.ExitOnError)
	id := fs.Int("id", 0, "appointment id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("missing -id")
	}
	if err := do(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *app) cmdCalificar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("calificar", flag.ExitOnError)
	citaID := fs.Int("cita", 0, "appointment id")
	puntuacion := fs.Int("puntuacion", 0, "rating 1-5")
	comentario := fs.String("comentario", "", "optional comment")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := a.res.Citas.Calificar(ctx, model.CreateCalificacionInput{
		CitaID:     *citaID,
		Puntuacion: *puntuacion,
		Comentario: *comentario,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "gracias por tu calificación")
	return nil
}

func (a *app) cmdComprobante(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comprobante", flag.ExitOnError)
	citaID := fs.Int("cita", 0, "appointment id")
	file := fs.String("file", "", "receipt image path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.res.Citas.UploadComprobante(ctx, *citaID, filepath.Base(*file), f); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "comprobante subido; pendiente de verificación")
	return nil
}

func (a *app) cmdDecideBarberia(ctx context.Context, args []string, do func(context.Context, int) (*model.Barberia, error)) error {
	switch nav.Guard(a.sessions, model.RoleAdmin) {
	case nav.RedirectLogin:
		return errors.New("log in first")
	case nav.RedirectUnauthorized:
		return errors.New("only admins can approve or reject shops")
	}

	fs := flag.NewFlagSet("decide", flag.ExitOnError)
	id := fs.Int("id", 0, "shop id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	barberia, err := do(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", barberia.Nombre, barberia.Estado)
	return nil
}

func (a *app) cmdDashboard(ctx context.Context) error {
	// The dashboard degrades to zeros instead of failing; a broken
	// stats endpoint must not hide the rest of the page.
	stats, err := a.res.Dashboard.Stats(ctx)
	if err != nil {
		a.logger.Warn("dashboard stats unavailable", "error", err)
		stats = model.DashboardStats{}
	}
	fmt.Fprintf(a.out, "citas hoy: %d\npendientes: %d\ncompletadas: %d\nservicios: %d\ncrecimiento: %.1f%%\n",
		stats.CitasHoy, stats.CitasPendientes, stats.CitasCompletadas, stats.TotalServicios, stats.CrecimientoCitas)

	proximas, err := a.res.Dashboard.CitasProximas(ctx)
	if err != nil {
		a.logger.Warn("upcoming citas unavailable", "error", err)
		return nil
	}
	if len(proximas) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, "\npróximas citas:")
	w := a.table()
	fmt.Fprintln(w, "HORA\tCLIENTE\tSERVICIO\tESTADO")
	for _, c := range proximas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Hora, c.ClienteNombre, c.ServicioNombre, c.Estado)
	}
	return w.Flush()
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}
