package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	mongostore "shelter-services/internal/adapters/storage/mongo"
	pg "shelter-services/internal/adapters/storage/postgres"
	redisstore "shelter-services/internal/adapters/storage/redis"
	"shelter-services/internal/domain/booking"
	"shelter-services/internal/domain/shelter"
	"shelter-services/internal/platform/config"
	"shelter-services/internal/platform/logger"
	"shelter-services/internal/router"
)

// service describe uno de los dos binarios lógicos.
type service struct {
	name        string
	short       string
	defaults    config.Defaults
	collections func() []string
	newRouter   func(router.Options) http.Handler
}

var (
	shelterService = service{
		name:        "shelter",
		short:       "Servicio del refugio: /zivotinje, /donacije, /obavijesti",
		defaults:    config.Defaults{Port: 3001, MongoDB: "Azil", AppName: "shelter"},
		collections: shelter.Collections,
		newRouter:   router.NewShelterRouter,
	}
	bookingService = service{
		name:        "booking",
		short:       "Servicio de reservas: /reservations, /cities, /classes",
		defaults:    config.Defaults{Port: 3002, MongoDB: "Booking", AppName: "booking"},
		collections: booking.Collections,
		newRouter:   router.NewBookingRouter,
	}
)

func newServeCmd(svc service) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   svc.name,
		Short: svc.short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(svc.defaults)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}
			return serve(cmd.Context(), svc, cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "puerto de escucha (pisa PORT)")
	return cmd
}

// backends agrupa las conexiones abiertas para poder cerrarlas al salir.
type backends struct {
	opts  router.Options
	db    *sql.DB
	mongo *mongostore.Store
	redis *goredis.Client
}

func (b *backends) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
	if b.mongo != nil {
		b.mongo.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func openBackends(ctx context.Context, svc service, cfg config.Config, log logger.Logger) (*backends, error) {
	b := &backends{}

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		b.db = db
		if err := pg.Migrate(ctx, db); err != nil {
			b.Close()
			return nil, err
		}
	case config.DriverMongo:
		store, err := mongostore.Dial(cfg.MongoURL, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		b.mongo = store
		if err := store.EnsureIndexes(svc.collections()...); err != nil {
			b.Close()
			return nil, err
		}
	}

	if cfg.SequenceDriver == config.DriverRedis {
		client, err := redisstore.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.redis = client
		b.opts.Sequence = redisstore.NewSequence(client)
	}

	b.opts.Logger = log
	b.opts.DB = b.db
	b.opts.Mongo = b.mongo
	b.opts.CORSOrigins = cfg.CORSOrigins

	log.Info("backends ready", map[string]any{
		"store":    cfg.StoreDriver,
		"sequence": cfg.SequenceDriver,
	})
	return b, nil
}

func serve(ctx context.Context, svc service, cfg config.Config) error {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		File:   cfg.LogFile,
		App:    cfg.AppName,
	})
	defer logger.Sync(log)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, svc, cfg, log)
	if err != nil {
		log.Error("backend init failed", map[string]any{"err": err})
		return errors.Annotate(err, "opening backends")
	}
	defer b.Close()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      svc.newRouter(b.opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "service": svc.name})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Annotate(err, "server error")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
