package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/linkhub/internal/dbx"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
	badgesrepo "github.com/dmitrijs2005/linkhub/internal/server/repositories/badges"
	linksrepo "github.com/dmitrijs2005/linkhub/internal/server/repositories/links"
	profilesrepo "github.com/dmitrijs2005/linkhub/internal/server/repositories/profiles"
	usersrepo "github.com/dmitrijs2005/linkhub/internal/server/repositories/users"
	viewsrepo "github.com/dmitrijs2005/linkhub/internal/server/repositories/views"
)

// --- shared fakes for service tests ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	listOut []*models.User
	listErr error

	accessOut *models.User
	accessErr error

	incrementErr   error
	incrementCalls int

	gotUsername string
	gotCreate   *models.User

	gotRole     string
	gotBadges   []string
	gotMaxLinks int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.gotCreate = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.gotUsername = username
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUsersRepo) UpdateAccess(ctx context.Context, id int64, role string, badges []string, maxLinks int) (*models.User, error) {
	f.gotRole = role
	f.gotBadges = badges
	f.gotMaxLinks = maxLinks
	if f.accessErr != nil {
		return nil, f.accessErr
	}
	if f.accessOut != nil {
		return f.accessOut, nil
	}
	return &models.User{ID: id, Role: role, Badges: badges, MaxLinks: maxLinks}, nil
}

func (f *fakeUsersRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	f.incrementCalls++
	if f.incrementErr != nil {
		return 0, f.incrementErr
	}
	return 1, nil
}

type profileRead struct {
	out *models.Profile
	err error
}

type fakeProfilesRepo struct {
	// reads are consumed in order so tests can model "absent, then present"
	reads []profileRead

	created    bool
	createErr  error
	createColl int

	updateOut *models.Profile
	updateErr error
}

func (f *fakeProfilesRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	if len(f.reads) == 0 {
		return nil, sql.ErrNoRows
	}
	r := f.reads[0]
	f.reads = f.reads[1:]
	return r.out, r.err
}

func (f *fakeProfilesRepo) CreateDefault(ctx context.Context, userID int64) (bool, error) {
	f.createColl++
	if f.createErr != nil {
		return false, f.createErr
	}
	return f.created, nil
}

func (f *fakeProfilesRepo) Update(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return profile, nil
}

type fakeLinksRepo struct {
	listOut []*models.Link
	listErr error

	createOut *models.Link
	createErr error

	deleteErr error

	count    int
	countErr error

	gotOnlyEnabled bool
	positions      map[int64]int
	positionErr    error
}

func (f *fakeLinksRepo) ListByUser(ctx context.Context, userID int64, onlyEnabled bool) ([]*models.Link, error) {
	f.gotOnlyEnabled = onlyEnabled
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeLinksRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return link, nil
}

func (f *fakeLinksRepo) Delete(ctx context.Context, userID, id int64) error {
	return f.deleteErr
}

func (f *fakeLinksRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	return f.count, f.countErr
}

func (f *fakeLinksRepo) SetPosition(ctx context.Context, userID, id int64, position int) error {
	if f.positionErr != nil {
		return f.positionErr
	}
	if f.positions == nil {
		f.positions = map[int64]int{}
	}
	f.positions[id] = position
	return nil
}

type fakeViewsRepo struct {
	inserted  bool
	insertErr error

	insertCalls int
	gotVisitor  string
}

func (f *fakeViewsRepo) Insert(ctx context.Context, userID int64, visitor string) (bool, error) {
	f.insertCalls++
	f.gotVisitor = visitor
	if f.insertErr != nil {
		return false, f.insertErr
	}
	return f.inserted, nil
}

type fakeBadgesRepo struct {
	out []*models.Badge
	err error
}

func (f *fakeBadgesRepo) List(ctx context.Context) ([]*models.Badge, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProfilesRepo
	l *fakeLinksRepo
	v *fakeViewsRepo
	b *fakeBadgesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository { return m.p }
func (m *fakeRepoManager) Links(db dbx.DBTX) linksrepo.Repository { return m.l }
func (m *fakeRepoManager) Views(db dbx.DBTX) viewsrepo.Repository { return m.v }
func (m *fakeRepoManager) Badges(db dbx.DBTX) badgesrepo.Repository { return m.b }
