package journal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/phishcheck/internal/model"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/postgres/*.sql
var pgMigrationsFS embed.FS

// PGJournal - журнал проверок в PostgreSQL.
type PGJournal struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// OpenPostgres подключается по dsn и применяет миграции.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*PGJournal, error) {
	if dsn == "" {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse journal dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &PGJournal{pool: pool, logger: logger}
	if err := j.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	if err := migratePostgres(config); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Журнал проверок открыт", zap.String("backend", "postgres"))
	return j, nil
}

// migratePostgres применяет миграции через отдельное соединение, чтобы
// закрытие мигратора не трогало пул.
func migratePostgres(config *pgxpool.Config) error {
	src, err := iofs.New(pgMigrationsFS, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	db := stdlib.OpenDB(*config.ConnConfig)
	defer db.Close()

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Ping проверяет соединение с БД
func (j *PGJournal) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return j.pool.Ping(ctx)
}

// Record сохраняет одну запись.
func (j *PGJournal) Record(ctx context.Context, e model.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := j.pool.Exec(ctx,
		`INSERT INTO checks (id, url, state, detail, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.URL, string(e.State), e.Detail, e.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert check %s: %w", e.ID, err)
	}
	return nil
}

// Recent возвращает последние записи, новые первыми.
func (j *PGJournal) Recent(ctx context.Context, limit int) ([]model.Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := j.pool.Query(ctx,
		`SELECT id, url, state, detail, created_at FROM checks ORDER BY seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var (
			e     model.Entry
			state string
		)
		if err := rows.Scan(&e.ID, &e.URL, &state, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		e.State = model.State(state)
		e.CreatedAt = e.CreatedAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close закрывает пул соединений.
func (j *PGJournal) Close() error {
	j.pool.Close()
	return nil
}
