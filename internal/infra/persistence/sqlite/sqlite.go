// Package sqlite contains the concrete implementation of the persistence
// layer using GORM over an embedded SQLite database file.
package sqlite

import (
	"context"
	"log/slog"
	"time"

	"shield/config"
	"shield/internal/domain/lifecycle"
	"shield/internal/errors"
	"shield/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the database file, runs schema migrations, and registers the
// connection with the application lifecycle.
func New(params Params) (*gorm.DB, error) {
	path := params.Config.Database.Path
	if path == "" {
		return nil, errors.New("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         newGormSlogLogger(params.Logger, params.Config),
		// Timestamps are stored as text and compared lexically by SQLite, so
		// every stamp must carry the same zone offset as query cursors.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}
	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent requests.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.LocationModel{},
		&model.EmergencyModel{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping sqlite")
			}

			params.Logger.Info("database initialized", slog.String("path", path))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
