// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool configured from Config and retries until the
// database answers a ping. Migrate runs goose migrations through the same
// pool, either from Config.MigrationsPath or from an embedded filesystem:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	err = pg.Migrate(ctx, pool, cfg, log,
//	    pg.WithMigrationsFS(reviews.Migrations, "migrations"))
//
// Healthcheck wraps a pool ping for readiness probes, and IsNotFoundError
// classifies pgx.ErrNoRows so storages can map it to their own sentinel.
package pg
