package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/linkhub/internal/dbx"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/repomanager"
)

// ViewService is the view attribution ledger: it decides per request whether
// a view is new for (subject, visitor) and increments the subject's view
// counter at most once per visitor.
type ViewService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewViewService(db *sql.DB, m repomanager.RepositoryManager) *ViewService {
	return &ViewService{db: db, repos: m}
}

// RecordView attributes one view of subjectID's page to visitor. The ledger
// insert and the counter increment run in a single transaction, so a crash
// between them cannot leave a ledger row without its increment. The primary
// key on (user_id, visitor) makes concurrent duplicates converge: only the
// winning insert increments the counter.
func (s *ViewService) RecordView(ctx context.Context, subjectID int64, visitor string) (bool, error) {
	if visitor == "" {
		visitor = "unknown"
	}

	var incremented bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inserted, err := s.repos.Views(tx).Insert(ctx, subjectID, visitor)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}

		if _, err := s.repos.Users(tx).IncrementViews(ctx, subjectID); err != nil {
			return err
		}
		incremented = true
		return nil
	})

	if err != nil {
		return false, fmt.Errorf("error recording view: %w", err)
	}

	return incremented, nil
}
