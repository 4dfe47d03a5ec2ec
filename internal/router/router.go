package router

import (
	"database/sql"
	"net/http"

	mem "shelter-services/internal/adapters/storage/memory"
	mongostore "shelter-services/internal/adapters/storage/mongo"
	pg "shelter-services/internal/adapters/storage/postgres"
	"shelter-services/internal/docs"
	"shelter-services/internal/domain/booking"
	"shelter-services/internal/domain/crud"
	"shelter-services/internal/domain/sequence"
	"shelter-services/internal/domain/shelter"
	"shelter-services/internal/middleware"
	"shelter-services/internal/platform/logger"
	"shelter-services/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // puede ser nil (Nop)

	// Backend de documentos. Si DB viene, usa Postgres; si Mongo viene, usa Mongo;
	// si no, in-memory.
	DB    *sql.DB
	Mongo *mongostore.Store

	// Opcional: Sequence Store explícito (p.ej. redis). Si es nil se usa el del backend.
	Sequence sequence.Store

	CORSOrigins []string
}

// NewShelterRouter: servicio A (zivotinje, donacije, obavijesti).
func NewShelterRouter(opts Options) http.Handler {
	opts = withDefaults(opts)
	r := newBaseRouter(opts, docs.ShelterInstance)
	seq := sequenceFor(opts)

	shelter.RegisterRoutes(r, shelter.Services{
		Animals: crud.NewService[shelter.Animal](
			shelter.AnimalResource,
			repoFor[shelter.Animal](opts, shelter.AnimalResource.Collection),
			seq, opts.Logger,
		),
		Donations: crud.NewService[shelter.Donation](
			shelter.DonationResource,
			repoFor[shelter.Donation](opts, shelter.DonationResource.Collection),
			seq, opts.Logger,
		),
		Announcements: crud.NewService[shelter.Announcement](
			shelter.AnnouncementResource,
			repoFor[shelter.Announcement](opts, shelter.AnnouncementResource.Collection),
			seq, opts.Logger,
		),
	})

	return r
}

// NewBookingRouter: servicio B (reservations, cities, classes).
func NewBookingRouter(opts Options) http.Handler {
	opts = withDefaults(opts)
	r := newBaseRouter(opts, docs.BookingInstance)
	seq := sequenceFor(opts)

	booking.RegisterRoutes(r, booking.Services{
		Reservations: crud.NewService[booking.Reservation](
			booking.ReservationResource,
			repoFor[booking.Reservation](opts, booking.ReservationResource.Collection),
			seq, opts.Logger,
		),
		Cities: crud.NewService[booking.City](
			booking.CityResource,
			repoFor[booking.City](opts, booking.CityResource.Collection),
			seq, opts.Logger,
		),
		Classes: crud.NewService[booking.Class](
			booking.ClassResource,
			repoFor[booking.Class](opts, booking.ClassResource.Collection),
			seq, opts.Logger,
		),
	})

	return r
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return opts
}

func newBaseRouter(opts Options, docsInstance string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDHeader)
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docsInstance),
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// sequenceFor elige el Sequence Store. Todos los recursos del servicio lo comparten;
// cada uno usa su propio nombre de contador.
func sequenceFor(opts Options) sequence.Store {
	var s sequence.Store
	switch {
	case opts.Sequence != nil:
		s = opts.Sequence
	case opts.DB != nil:
		s = pg.NewSequence(opts.DB)
	case opts.Mongo != nil:
		s = mongostore.NewSequence(opts.Mongo)
	default:
		s = mem.NewSequence()
	}
	return sequence.NewInstrumented(s)
}

func repoFor[T any](opts Options, collection string) crud.Repository[T] {
	switch {
	case opts.DB != nil:
		return pg.NewDocumentsRepo[T](opts.DB, collection)
	case opts.Mongo != nil:
		return mongostore.NewDocumentsRepo[T](opts.Mongo, collection)
	default:
		return mem.NewRepo[T](collection)
	}
}
