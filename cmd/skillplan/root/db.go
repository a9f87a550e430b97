package root

import (
	"context"
	"database/sql"

	"skillplan/internal/config"
	"skillplan/internal/engine"
	"skillplan/internal/logger"
	"skillplan/internal/storage"
)

// dbPath applies --db, then the config file, then $SKILLPLAN_DB_PATH and the default.
func dbPath(g *globals, cfg *config.Config) (string, error) {
	override := g.dbPath
	if override == "" {
		override = cfg.DBPath
	}
	return storage.ResolveDBPath(override)
}

func openDB(ctx context.Context, path string) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func newLogger(g *globals, cfg *config.Config) (*logger.Logger, error) {
	level := cfg.Log.Level
	if g.verbose {
		level = "debug"
	}
	return logger.New(cfg.Log.Mode, level, cfg.Log.File)
}

func openService(ctx context.Context, g *globals) (*engine.Service, func(), error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	path, err := dbPath(g, cfg)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(g, cfg)
	if err != nil {
		return nil, nil, err
	}
	db, closeDB, err := openDB(ctx, path)
	if err != nil {
		log.Error("open database failed", "db_path", path, "error", err)
		log.Sync()
		return nil, nil, err
	}
	log.Debug("database opened", "db_path", path)

	svc := engine.NewService(engine.NewSQLStore(db), engine.WithLogger(log))
	cleanup := func() {
		closeDB()
		log.Sync()
	}
	return svc, cleanup, nil
}
