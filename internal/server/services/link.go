package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/dbx"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/links"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/repomanager"
)

// LinkService handles the owner-facing link surface: listing, creation with a
// per-user cap, deletion, and reordering.
type LinkService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewLinkService(db *sql.DB, m repomanager.RepositoryManager) *LinkService {
	return &LinkService{db: db, repos: m}
}

// List returns all of the owner's links, disabled ones included.
func (s *LinkService) List(ctx context.Context, userID int64) ([]*models.Link, error) {
	result, err := s.repos.Links(s.db).ListByUser(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("error listing links: %w", err)
	}
	return result, nil
}

// Create adds a link for the owner, enforcing the user's max_links cap.
func (s *LinkService) Create(ctx context.Context, userID int64, title, url string, position int) (*models.Link, error) {
	if title == "" || url == "" {
		return nil, fmt.Errorf("%w: title and url are required", common.ErrorValidation)
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	count, err := s.repos.Links(s.db).CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting links: %w", err)
	}
	if count >= user.MaxLinks {
		return nil, fmt.Errorf("%w: link limit reached", common.ErrorValidation)
	}

	link := &models.Link{UserID: userID, Title: title, URL: url, Enabled: true, Position: position}
	created, err := s.repos.Links(s.db).Create(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("error creating link: %w", err)
	}
	return created, nil
}

// Delete removes the owner's link. A foreign or unknown id fails with
// common.ErrorNotFound.
func (s *LinkService) Delete(ctx context.Context, userID, id int64) error {
	err := s.repos.Links(s.db).Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting link: %w", err)
	}
	return nil
}

// Reorder applies the given position assignments to the owner's links in one
// transaction.
func (s *LinkService) Reorder(ctx context.Context, userID int64, positions []links.Position) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Links(tx)
		for _, p := range positions {
			if err := repo.SetPosition(ctx, userID, p.ID, p.Position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error reordering links: %w", err)
	}
	return nil
}
