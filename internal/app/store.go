package app

import (
	"context"
	"fmt"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/repositories"

	"github.com/rs/zerolog"
)

// CloseFunc releases a store opened by OpenStore.
type CloseFunc func(ctx context.Context) error

// OpenStore connects the product store selected by cfg.DBDriver and prepares
// it (mongo indexes, gorm migration).
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories.ProductRepository, CloseFunc, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := database.OpenMongo(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(repositories.ProductCollection)
		repo := repositories.NewMongoProductRepository(coll)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return repo, client.Disconnect, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGORM(cfg.DBDriver, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		repo := repositories.NewGORMProductRepository(db)
		if err := repo.Migrate(); err != nil {
			_ = closeDB(ctx)
			return nil, nil, err
		}
		return repo, closeDB, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory product store, data is lost on exit")
		return repositories.NewMemoryProductRepository(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
