package links

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/dbx"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, onlyEnabled bool) ([]*models.Link, error) {
	query :=
		`SELECT id, user_id, title, url, enabled, position FROM links
		 WHERE user_id = $1`
	if onlyEnabled {
		query += ` AND enabled`
	}
	// id breaks position ties so the ordering is a stable total order
	query += `
		 ORDER BY position, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Link{}
	for rows.Next() {
		link := &models.Link{}
		if err := rows.Scan(&link.ID, &link.UserID, &link.Title, &link.URL,
			&link.Enabled, &link.Position); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	query :=
		`INSERT INTO links (user_id, title, url, enabled, position)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		link.UserID, link.Title, link.URL, link.Enabled, link.Position).Scan(&link.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query :=
		`DELETE FROM links
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	query :=
		`SELECT count(*) FROM links
		 WHERE user_id = $1
		 `

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) SetPosition(ctx context.Context, userID, id int64, position int) error {
	query :=
		`UPDATE links SET position = $3
		 WHERE id = $1 AND user_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, id, userID, position); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
