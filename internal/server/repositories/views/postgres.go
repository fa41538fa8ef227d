package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linkhub/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, userID int64, visitor string) (bool, error) {
	query :=
		`INSERT INTO view_records (user_id, visitor)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, visitor) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, userID, visitor)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}
