// Package journal хранит историю проверок URL в SQLite или PostgreSQL.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/phishcheck/internal/model"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // драйвер "sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDisabled возвращается, когда путь к журналу не задан.
var ErrDisabled = errors.New("journal is disabled")

// DefaultLimit - сколько записей отдаёт Recent, если limit не задан.
const DefaultLimit = 20

// Journal - журнал проверок поверх database/sql.
type Journal struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open открывает (или создаёт) файл журнала и применяет миграции.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Journal, error) {
	if path == "" {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Журнал проверок открыт", zap.String("path", path))
	return &Journal{db: db, logger: logger}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Record сохраняет одну запись.
func (j *Journal) Record(ctx context.Context, e model.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO checks (id, url, state, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.URL, string(e.State), e.Detail, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert check %s: %w", e.ID, err)
	}
	return nil
}

// Recent возвращает последние записи, новые первыми.
func (j *Journal) Recent(ctx context.Context, limit int) ([]model.Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, url, state, detail, created_at FROM checks ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var (
			e       model.Entry
			state   string
			created string
		)
		if err := rows.Scan(&e.ID, &e.URL, &state, &e.Detail, &created); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		e.State = model.State(state)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close закрывает базу.
func (j *Journal) Close() error {
	return j.db.Close()
}
