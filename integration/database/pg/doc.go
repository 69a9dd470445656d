// Package pg connects to PostgreSQL with pgxpool, applies goose migrations
// and carries transactions through a context.
//
// Connect retries every RetryInterval until the server answers or Timeout
// (DB_TIMEOUT) passes. The DSN is taken from DB_DSN or assembled from
// DB_USER, DB_PASS, DB_HOST, DB_PORT and DB_NAME.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg, log)
//	if err != nil {
//		return err // ErrNotReady: treat as fatal
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations, log); err != nil {
//		return err
//	}
package pg
