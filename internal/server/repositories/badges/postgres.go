package badges

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linkhub/internal/dbx"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Badge, error) {
	query :=
		`SELECT id, name, icon, color FROM badges
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Badge{}
	for rows.Next() {
		badge := &models.Badge{}
		if err := rows.Scan(&badge.ID, &badge.Name, &badge.Icon, &badge.Color); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, badge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
