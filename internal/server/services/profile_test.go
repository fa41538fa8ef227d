package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

func strPtr(s string) *string { return &s }

func TestResolve_UnknownUsername(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := NewProfileService(db, rm)

	_, err := s.Resolve(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestResolve_ExistingProfile(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	user := &models.User{ID: 7, Username: "nova"}
	profile := &models.Profile{ID: 1, UserID: 7, ThemeColor: "#F97316"}
	enabled := []*models.Link{{ID: 1, UserID: 7, Title: "Blog", Enabled: true}}

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: user},
		p: &fakeProfilesRepo{reads: []profileRead{{out: profile}}},
		l: &fakeLinksRepo{listOut: enabled},
	}
	s := NewProfileService(db, rm)

	page, err := s.Resolve(context.Background(), "Nova")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if page.User.ID != 7 || page.Profile.ID != 1 || len(page.Links) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if rm.u.gotUsername != "Nova" {
		t.Fatalf("username not passed through verbatim: %q", rm.u.gotUsername)
	}
	// the public path must ask for enabled links only
	if !rm.l.gotOnlyEnabled {
		t.Fatalf("public resolve did not filter to enabled links")
	}
	// no profile creation needed when the row exists
	if rm.p.createColl != 0 {
		t.Fatalf("unexpected CreateDefault calls: %d", rm.p.createColl)
	}
}

func TestResolve_LazilyMaterializesProfile(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	user := &models.User{ID: 7, Username: "nova"}
	created := &models.Profile{ID: 3, UserID: 7, ThemeColor: "#F97316", BackgroundEffect: "none"}

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: user},
		p: &fakeProfilesRepo{
			reads:   []profileRead{{err: common.ErrorNotFound}, {out: created}},
			created: true,
		},
		l: &fakeLinksRepo{},
	}
	s := NewProfileService(db, rm)

	page, err := s.Resolve(context.Background(), "nova")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if rm.p.createColl != 1 {
		t.Fatalf("CreateDefault calls = %d, want 1", rm.p.createColl)
	}
	if page.Profile.ID != 3 {
		t.Fatalf("did not re-read created profile: %+v", page.Profile)
	}
}

func TestResolve_LosingWriterConvergesToWinnersRow(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	user := &models.User{ID: 7, Username: "nova"}
	winners := &models.Profile{ID: 9, UserID: 7}

	// CreateDefault reports created=false: another request inserted first.
	// The loser must re-read and succeed, not error out.
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: user},
		p: &fakeProfilesRepo{
			reads:   []profileRead{{err: common.ErrorNotFound}, {out: winners}},
			created: false,
		},
		l: &fakeLinksRepo{},
	}
	s := NewProfileService(db, rm)

	page, err := s.Resolve(context.Background(), "nova")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if page.Profile.ID != 9 {
		t.Fatalf("loser did not converge to winner's row: %+v", page.Profile)
	}
}

func TestResolveOwner_IncludesDisabledLinks(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: 7}},
		p: &fakeProfilesRepo{reads: []profileRead{{out: &models.Profile{UserID: 7}}}},
		l: &fakeLinksRepo{},
	}
	s := NewProfileService(db, rm)

	if _, err := s.ResolveOwner(context.Background(), 7); err != nil {
		t.Fatalf("ResolveOwner error: %v", err)
	}
	if rm.l.gotOnlyEnabled {
		t.Fatalf("owner resolve filtered out disabled links")
	}
}

func TestUpdateProfile_AppliesPatch(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	current := &models.Profile{
		UserID:           7,
		ThemeColor:       "#F97316",
		BackgroundEffect: models.BackgroundEffectNone,
		FontFamily:       models.FontFamilySans,
	}
	rm := &fakeRepoManager{
		p: &fakeProfilesRepo{reads: []profileRead{{out: current}}},
	}
	s := NewProfileService(db, rm)

	updated, err := s.UpdateProfile(context.Background(), 7, &ProfilePatch{
		DisplayName:      strPtr("Nova"),
		BackgroundEffect: strPtr(models.BackgroundEffectSnow),
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.DisplayName != "Nova" || updated.BackgroundEffect != models.BackgroundEffectSnow {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.ThemeColor != "#F97316" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}

func TestUpdateProfile_MediaAndRevealFields(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	boolPtr := func(b bool) *bool { return &b }

	current := &models.Profile{
		UserID:           7,
		ThemeColor:       "#F97316",
		BackgroundEffect: models.BackgroundEffectNone,
		FontFamily:       models.FontFamilySans,
		ShowUID:          true,
		RevealText:       "Click to reveal",
	}
	rm := &fakeRepoManager{
		p: &fakeProfilesRepo{reads: []profileRead{{out: current}}},
	}
	s := NewProfileService(db, rm)

	updated, err := s.UpdateProfile(context.Background(), 7, &ProfilePatch{
		BackgroundPath: strPtr("/objects/uploads/1/2/3/bg"),
		MusicPath:      strPtr("/objects/uploads/1/2/3/track"),
		ShowUID:        boolPtr(false),
		RevealEnabled:  boolPtr(true),
		RevealText:     strPtr("Welcome"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.BackgroundPath != "/objects/uploads/1/2/3/bg" || updated.MusicPath != "/objects/uploads/1/2/3/track" {
		t.Fatalf("media paths not applied: %+v", updated)
	}
	if updated.ShowUID || !updated.RevealEnabled || updated.RevealText != "Welcome" {
		t.Fatalf("toggles not applied: %+v", updated)
	}
}

func TestUpdateProfile_RejectsUnknownEnumValues(t *testing.T) {
	tests := []struct {
		name  string
		patch *ProfilePatch
	}{
		{"backgroundEffect", &ProfilePatch{BackgroundEffect: strPtr("lasers")}},
		{"fontFamily", &ProfilePatch{FontFamily: strPtr("comic-sans")}},
		{"themeColor", &ProfilePatch{ThemeColor: strPtr("orange")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, _ := newSQLMockDB(t)
			defer db.Close()

			current := &models.Profile{
				UserID:           7,
				ThemeColor:       "#F97316",
				BackgroundEffect: models.BackgroundEffectNone,
				FontFamily:       models.FontFamilySans,
			}
			rm := &fakeRepoManager{
				p: &fakeProfilesRepo{reads: []profileRead{{out: current}}},
			}
			s := NewProfileService(db, rm)

			_, err := s.UpdateProfile(context.Background(), 7, tc.patch)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want ErrorValidation, got %v", err)
			}
		})
	}
}
