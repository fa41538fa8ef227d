package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
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

const userColumns = `id, username, email, password, role, views, badges, max_links, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var badges []byte
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.Views, &badges, &user.MaxLinks, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(badges, &user.Badges); err != nil {
		return nil, fmt.Errorf("badges decode error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password)
         VALUES ($1, $2, $3)
		 RETURNING id, role, views, max_links, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.Password).
		Scan(&user.ID, &user.Role, &user.Views, &user.MaxLinks, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByUsername looks the user up case-insensitively.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE lower(username) = lower($1)
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE id = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// List returns every account, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		var badges []byte
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
			&user.Role, &user.Views, &badges, &user.MaxLinks, &user.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(badges, &user.Badges); err != nil {
			return nil, fmt.Errorf("badges decode error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateAccess(ctx context.Context, id int64, role string, badges []string, maxLinks int) (*models.User, error) {
	encoded, err := json.Marshal(badges)
	if err != nil {
		return nil, fmt.Errorf("badges encode error: %w", err)
	}

	query :=
		`UPDATE users SET role = $2, badges = $3, max_links = $4
		 WHERE id = $1
		 RETURNING ` + userColumns + `
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, role, encoded, maxLinks))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	query :=
		`UPDATE users SET views = views + 1
		 WHERE id = $1
		 RETURNING views
		 `

	var views int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&views)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return views, nil
}
