package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface is the fee configuration store: a key/value settings
// table read by well-known string keys. Values are stored as text and parsed
// by the caller.
type RepositoryInterface interface {
	GetValues(ctx context.Context, keys []string) (map[string]string, error)
	UpsertValue(ctx context.Context, key, value string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// GetValues loads the requested keys; absent keys are simply missing from the
// returned map, which the service treats as "use the default".
func (r *Repository) GetValues(ctx context.Context, keys []string) (map[string]string, error) {
	const query = `
        SELECT key, value
        FROM settings
        WHERE key = ANY($1)`
	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("GetValues failed: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("GetValues Scan failed: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetValues rows failed: %w", err)
	}
	return values, nil
}

func (r *Repository) UpsertValue(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("UpsertValue failed: %w", err)
	}
	return nil
}
