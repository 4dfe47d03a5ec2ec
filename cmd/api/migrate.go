package main

import (
	"context"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	mongostore "shelter-services/internal/adapters/storage/mongo"
	pg "shelter-services/internal/adapters/storage/postgres"
	"shelter-services/internal/domain/booking"
	"shelter-services/internal/domain/shelter"
	"shelter-services/internal/platform/config"
)

// newMigrateCmd crea tablas (postgres) o índices únicos (mongo) para ambos servicios.
// En mongo usa las bases por defecto de cada servicio (Azil, Booking).
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepara el backend configurado en STORE_DRIVER",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(shelterService.defaults)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			switch cfg.StoreDriver {
			case config.DriverPostgres:
				db, err := pg.Open(ctx, cfg.DBDSN)
				if err != nil {
					return err
				}
				defer db.Close()
				return pg.Migrate(ctx, db)

			case config.DriverMongo:
				if err := ensureMongo(cfg.MongoURL, shelterService.defaults.MongoDB, shelter.Collections()); err != nil {
					return err
				}
				return ensureMongo(cfg.MongoURL, bookingService.defaults.MongoDB, booking.Collections())

			default:
				cmd.Printf("nothing to migrate for STORE_DRIVER=%s\n", cfg.StoreDriver)
				return nil
			}
		},
	}
}

func ensureMongo(url, dbName string, collections []string) error {
	store, err := mongostore.Dial(url, dbName)
	if err != nil {
		return errors.Annotatef(err, "dialing %s", dbName)
	}
	defer store.Close()
	return store.EnsureIndexes(collections...)
}
