// Package db connects to PostgreSQL through a pgx pool and applies goose migrations.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Migrations are passed as an fs.FS so each package can embed its own schema.
package db
