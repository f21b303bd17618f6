package router

import (
	"database/sql"
	"net/http"

	_ "vet-clinic/docs"

	mem "vet-clinic/internal/adapters/storage/memory"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/servicetypes"
	"vet-clinic/internal/domain/staff"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/events"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Zero value = logger no-op.
	Logger zerolog.Logger

	// nil => events.Noop
	Publisher events.Publisher

	// nil => sin rate limit
	RateLimiter *middleware.RateLimiter

	CORSOrigins []string
}

type repos struct {
	clients      clients.Repository
	pets         pets.Repository
	staff        staff.Repository
	serviceTypes servicetypes.Repository
	appointments appointments.Repository
}

func newRepos(db *sql.DB) repos {
	if db != nil {
		return repos{
			clients:      pg.NewClientsRepo(db),
			pets:         pg.NewPetsRepo(db),
			staff:        pg.NewStaffRepo(db),
			serviceTypes: pg.NewServiceTypesRepo(db),
			appointments: pg.NewAppointmentsRepo(db),
		}
	}
	return repos{
		clients:      mem.NewClientRepo(),
		pets:         mem.NewPetRepo(),
		staff:        mem.NewStaffRepo(),
		serviceTypes: mem.NewServiceTypeRepo(),
		appointments: mem.NewAppointmentRepo(),
	}
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))
	r.Use(middleware.CORS(opts.CORSOrigins))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware(opts.Logger))
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, http.StatusOK, "ok", nil)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	rp := newRepos(opts.DB)

	// Services por módulo
	clientsSvc := clients.NewService(rp.clients, rp.pets)
	petsSvc := pets.NewService(rp.pets, petOwnerLookup{clients: clientsSvc}, rp.appointments)
	staffSvc := staff.NewService(rp.staff)
	typesSvc := servicetypes.NewService(rp.serviceTypes, rp.appointments)
	apptSvc := appointments.NewService(rp.appointments, appointments.Deps{
		Pets:         appointmentPetLookup{pets: petsSvc},
		Owners:       appointmentOwnerLookup{clients: clientsSvc},
		Staff:        appointmentStaffLookup{staff: staffSvc},
		ServiceTypes: appointmentServiceTypeLookup{types: typesSvc},
		Publisher:    opts.Publisher,
		Logger:       opts.Logger,
	})

	// Rutas por módulo, todas con usuario autenticado
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)

		clients.RegisterRoutes(pr, clientsSvc)
		pets.RegisterRoutes(pr, petsSvc)
		staff.RegisterRoutes(pr, staffSvc)
		servicetypes.RegisterRoutes(pr, typesSvc)
		appointments.RegisterRoutes(pr, apptSvc)
	})

	return r
}
