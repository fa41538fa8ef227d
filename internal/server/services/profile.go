// Package services contains server-side business logic. This file implements
// ProfileService: resolving a username into a fully composed public page,
// lazily materializing the profile row, and owner-facing profile updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/repomanager"
)

// ResolvedProfile is the composed result of a profile resolution: the user,
// their profile, and their links in display order.
type ResolvedProfile struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
	Links   []*models.Link  `json:"links"`
}

// ProfilePatch is the structured update payload for profile styling and
// display fields. Absent fields keep their current value.
type ProfilePatch struct {
	DisplayName      *string `json:"displayName"`
	Bio              *string `json:"bio"`
	Location         *string `json:"location"`
	AvatarPath       *string `json:"avatarPath"`
	BannerPath       *string `json:"bannerPath"`
	BackgroundPath   *string `json:"backgroundPath"`
	MusicPath        *string `json:"musicPath"`
	ThemeColor       *string `json:"themeColor"`
	BackgroundEffect *string `json:"backgroundEffect"`
	FontFamily       *string `json:"fontFamily"`
	ShowViews        *bool   `json:"showViews"`
	ShowUID          *bool   `json:"showUid"`
	ShowJoinDate     *bool   `json:"showJoinDate"`
	ShowWatermark    *bool   `json:"showWatermark"`
	RevealEnabled    *bool   `json:"revealEnabled"`
	RevealText       *string `json:"revealText"`
}

type ProfileService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repos: m}
}

// Resolve returns the public page for username: the user, their profile
// (materialized on first access), and the enabled links in display order.
// Username comparison is case-insensitive. Unknown usernames fail with
// common.ErrorNotFound.
func (s *ProfileService) Resolve(ctx context.Context, username string) (*ResolvedProfile, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	return s.compose(ctx, user, true)
}

// ResolveOwner is the owner-facing variant: looked up by id, disabled links
// included.
func (s *ProfileService) ResolveOwner(ctx context.Context, userID int64) (*ResolvedProfile, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	return s.compose(ctx, user, false)
}

func (s *ProfileService) compose(ctx context.Context, user *models.User, onlyEnabled bool) (*ResolvedProfile, error) {
	profile, err := s.materializeProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	links, err := s.repos.Links(s.db).ListByUser(ctx, user.ID, onlyEnabled)
	if err != nil {
		return nil, fmt.Errorf("error listing links: %w", err)
	}

	return &ResolvedProfile{User: user, Profile: profile, Links: links}, nil
}

// materializeProfile returns the user's profile row, creating an all-default
// one on first access. Creation is race-safe: the insert is conditional on
// the unique user_id constraint, and a loser of the race simply re-reads the
// winner's row.
func (s *ProfileService) materializeProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	repo := s.repos.Profiles(s.db)

	profile, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error reading profile: %w", err)
	}

	if _, err := repo.CreateDefault(ctx, userID); err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	// whether this call won the insert or not, the row exists now
	profile, err = repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error re-reading profile: %w", err)
	}
	return profile, nil
}

var themeColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// UpdateProfile applies patch to the user's profile (materializing it first
// if needed) and persists the result. Styling values outside the enumerated
// sets fail with common.ErrorValidation.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, patch *ProfilePatch) (*models.Profile, error) {
	profile, err := s.materializeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyPatch(profile, patch)

	if err := validateStyling(profile); err != nil {
		return nil, err
	}

	updated, err := s.repos.Profiles(s.db).Update(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return updated, nil
}

func applyPatch(p *models.Profile, patch *ProfilePatch) {
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.AvatarPath != nil {
		p.AvatarPath = *patch.AvatarPath
	}
	if patch.BannerPath != nil {
		p.BannerPath = *patch.BannerPath
	}
	if patch.BackgroundPath != nil {
		p.BackgroundPath = *patch.BackgroundPath
	}
	if patch.MusicPath != nil {
		p.MusicPath = *patch.MusicPath
	}
	if patch.ThemeColor != nil {
		p.ThemeColor = *patch.ThemeColor
	}
	if patch.BackgroundEffect != nil {
		p.BackgroundEffect = *patch.BackgroundEffect
	}
	if patch.FontFamily != nil {
		p.FontFamily = *patch.FontFamily
	}
	if patch.ShowViews != nil {
		p.ShowViews = *patch.ShowViews
	}
	if patch.ShowUID != nil {
		p.ShowUID = *patch.ShowUID
	}
	if patch.ShowJoinDate != nil {
		p.ShowJoinDate = *patch.ShowJoinDate
	}
	if patch.ShowWatermark != nil {
		p.ShowWatermark = *patch.ShowWatermark
	}
	if patch.RevealEnabled != nil {
		p.RevealEnabled = *patch.RevealEnabled
	}
	if patch.RevealText != nil {
		p.RevealText = *patch.RevealText
	}
}

func validateStyling(p *models.Profile) error {
	if !themeColorRe.MatchString(p.ThemeColor) {
		return fmt.Errorf("%w: themeColor must be a #rrggbb color", common.ErrorValidation)
	}

	switch p.BackgroundEffect {
	case models.BackgroundEffectNone, models.BackgroundEffectParticles,
		models.BackgroundEffectRain, models.BackgroundEffectSnow:
	default:
		return fmt.Errorf("%w: unknown backgroundEffect %q", common.ErrorValidation, p.BackgroundEffect)
	}

	switch p.FontFamily {
	case models.FontFamilySans, models.FontFamilySerif, models.FontFamilyMono:
	default:
		return fmt.Errorf("%w: unknown fontFamily %q", common.ErrorValidation, p.FontFamily)
	}

	return nil
}
