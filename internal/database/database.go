package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xo/dburl"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"shesafe/internal/domain"
	applog "shesafe/internal/pkg/logger"
)

type Options struct {
	Debug bool
}

// Connect opens postgres for postgres:// and postgresql:// URLs and sqlite for anything else
// (a file path, ":memory:" or a "file:" URI).
func Connect(dsn string, opts ...Options) (*gorm.DB, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	level := logger.Warn
	if o.Debug {
		level = logger.Info
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	if u, err := dburl.Parse(dsn); err == nil && u.Driver == "postgres" {
		applog.Info("connecting to postgres", "host", u.Host)
		return gorm.Open(postgres.Open(u.DSN), cfg)
	}

	dsn = sqliteDSN(dsn)
	applog.Info("using sqlite", "dsn", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// single writer; also keeps a shared in-memory database alive
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// sqliteDSN adds a busy timeout and, for file databases, WAL journaling unless the DSN
// already sets them.
func sqliteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, "_pragma=busy_timeout(5000)")
	}
	memory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if !memory && !strings.Contains(dsn, "journal_mode") {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Migrate creates or updates the five lifecycle tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Vendor{},
		&domain.VendorImage{},
		&domain.Booking{},
		&domain.Feedback{},
	)
}

// IsUniqueViolation recognises duplicate-key failures from postgres, gorm's translated
// error and sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
