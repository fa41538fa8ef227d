package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/linkhub/internal/server/repositories/badges"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/links"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/users"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/views"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m := NewPostgresRepositoryManager()
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if p := m.Profiles(db); p == nil {
		t.Fatal("Profiles() nil")
	}
	if l := m.Links(db); l == nil {
		t.Fatal("Links() nil")
	}
	if v := m.Views(db); v == nil {
		t.Fatal("Views() nil")
	}
	if b := m.Badges(db); b == nil {
		t.Fatal("Badges() nil")
	}

	var _ users.Repository = m.Users(db)
	var _ profiles.Repository = m.Profiles(db)
	var _ links.Repository = m.Links(db)
	var _ views.Repository = m.Views(db)
	var _ badges.Repository = m.Badges(db)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
