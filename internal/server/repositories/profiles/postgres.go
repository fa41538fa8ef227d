package profiles

import (
	"context"
	"database/sql"
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

const profileColumns = `id, user_id, display_name, bio, location, avatar_path, banner_path,
       background_path, music_path, theme_color, background_effect, font_family,
       show_views, show_uid, show_join_date, show_watermark, reveal_enabled, reveal_text`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.UserID, &p.DisplayName, &p.Bio, &p.Location,
		&p.AvatarPath, &p.BannerPath, &p.BackgroundPath, &p.MusicPath,
		&p.ThemeColor, &p.BackgroundEffect, &p.FontFamily,
		&p.ShowViews, &p.ShowUID, &p.ShowJoinDate, &p.ShowWatermark,
		&p.RevealEnabled, &p.RevealText)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query :=
		`SELECT ` + profileColumns + ` FROM profiles
		 WHERE user_id = $1
		 `

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) CreateDefault(ctx context.Context, userID int64) (bool, error) {
	query :=
		`INSERT INTO profiles (user_id)
		 VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) Update(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query :=
		`UPDATE profiles
		 SET display_name = $2, bio = $3, location = $4, avatar_path = $5,
		     banner_path = $6, background_path = $7, music_path = $8,
		     theme_color = $9, background_effect = $10, font_family = $11,
		     show_views = $12, show_uid = $13, show_join_date = $14,
		     show_watermark = $15, reveal_enabled = $16, reveal_text = $17
		 WHERE user_id = $1
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, profile.UserID,
		profile.DisplayName, profile.Bio, profile.Location, profile.AvatarPath,
		profile.BannerPath, profile.BackgroundPath, profile.MusicPath,
		profile.ThemeColor, profile.BackgroundEffect, profile.FontFamily,
		profile.ShowViews, profile.ShowUID, profile.ShowJoinDate,
		profile.ShowWatermark, profile.RevealEnabled, profile.RevealText).Scan(&profile.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}
