package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/server/auth"
	"github.com/dmitrijs2005/linkhub/internal/server/config"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/repomanager"
)

// UserService is the identity collaborator: registration, credential
// verification, and bearer token issuance.
type UserService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repos:         m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new account. A username or email that is already taken
// fails with common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Username: username, Email: email, Password: string(hash)}
	created, err := s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token plus the
// user. Unknown usernames and wrong passwords both yield ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// GetByID loads the account for an authenticated user id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// AccessPatch is the administrative update payload for an account. Absent
// fields keep their current value.
type AccessPatch struct {
	Role     *string   `json:"role"`
	Badges   *[]string `json:"badges"`
	MaxLinks *int      `json:"maxLinks"`
}

// ListAll returns every account. Caller authorization is the transport
// layer's concern.
func (s *UserService) ListAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.repos.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// UpdateAccess applies patch to the account's role, badge set, and link cap.
// A role outside the known set or a negative cap fails with
// common.ErrorValidation.
func (s *UserService) UpdateAccess(ctx context.Context, id int64, patch *AccessPatch) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Badges != nil {
		user.Badges = *patch.Badges
	}
	if patch.MaxLinks != nil {
		user.MaxLinks = *patch.MaxLinks
	}

	switch user.Role {
	case models.RoleUser, models.RoleAdmin, models.RoleOwner:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, user.Role)
	}
	if user.MaxLinks < 0 {
		return nil, fmt.Errorf("%w: maxLinks must not be negative", common.ErrorValidation)
	}

	updated, err := repo.UpdateAccess(ctx, id, user.Role, user.Badges, user.MaxLinks)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}
