// internal/catalog/open.go
package catalog

import (
	"context"
	"time"

	"loan-assistant/internal/common/config"
	"loan-assistant/internal/common/database"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
)

// Open builds the catalog selected by cfg. The returned close function
// releases any connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (Catalog, func(), error) {
	closers := []func(){}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var base Catalog
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, closeAll, apperrors.NewDatabaseConnectionFailedError(err)
		}
		closers = append(closers, func() { _ = pg.Close() })

		if err := database.RetryWithBackoff(ctx, func() error { return pg.Ping(ctx) },
			3, 500*time.Millisecond, log, "postgres ping"); err != nil {
			closeAll()
			return nil, func() {}, apperrors.NewDatabaseConnectionFailedError(err)
		}
		base = NewPostgres(pg.DB)
		log.Info("catalog backed by postgres", map[string]interface{}{
			"host":     cfg.Database.Postgres.Host,
			"database": cfg.Database.Postgres.Database,
		})
	default:
		static, err := LoadDir(cfg.Catalog.DataDir)
		if err != nil {
			return nil, closeAll, err
		}
		base = static
		log.Info("catalog loaded", map[string]interface{}{"dataDir": cfg.Catalog.DataDir})
	}

	if !cfg.Database.Redis.Enabled {
		return base, closeAll, nil
	}

	rc := database.NewRedis(cfg.Database.Redis)
	if err := rc.Ping(ctx); err != nil {
		// The cache is optional; serve straight from the base tables.
		log.Warn("redis unavailable, score cache disabled", map[string]interface{}{"error": err.Error()})
		_ = rc.Close()
		return base, closeAll, nil
	}
	closers = append(closers, func() { _ = rc.Close() })

	ttl := config.GetDuration(cfg.Database.Redis.TTL)
	return Composite{
		OfferCatalog:      base,
		CustomerDirectory: base,
		CreditScoreTable:  NewCachedScores(base, rc.Client, ttl, log),
	}, closeAll, nil
}
