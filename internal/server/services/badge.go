package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/linkhub/internal/server/models"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/repomanager"
)

// BadgeService exposes the read side of the badge catalogue.
type BadgeService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewBadgeService(db *sql.DB, m repomanager.RepositoryManager) *BadgeService {
	return &BadgeService{db: db, repos: m}
}

func (s *BadgeService) List(ctx context.Context) ([]*models.Badge, error) {
	result, err := s.repos.Badges(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing badges: %w", err)
	}
	return result, nil
}
