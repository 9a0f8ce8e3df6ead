package journal

import (
	"context"

	"github.com/Totarae/phishcheck/internal/model"
	"go.uber.org/zap"
)

// Store - общий контракт журналов SQLite и PostgreSQL.
type Store interface {
	Record(ctx context.Context, e model.Entry) error
	Recent(ctx context.Context, limit int) ([]model.Entry, error)
	Close() error
}

var (
	_ Store = (*Journal)(nil)
	_ Store = (*PGJournal)(nil)
)

// Connect выбирает хранилище: dsn важнее path, без обоих - ErrDisabled.
func Connect(ctx context.Context, path, dsn string, logger *zap.Logger) (Store, error) {
	if dsn != "" {
		j, err := OpenPostgres(ctx, dsn, logger)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	j, err := Open(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	return j, nil
}
