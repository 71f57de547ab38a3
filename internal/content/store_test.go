package content

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"phFolio/internal/database"
	"phFolio/internal/render"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:contenttest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&database.Profile{},
		&database.Experience{},
		&database.Project{},
		&database.Article{},
		&database.FeaturedVideo{},
		&database.Theme{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLoadProfile_DecodesJSONColumns(t *testing.T) {
	db := newTestDB(t)
	row := database.Profile{
		UserID:      7,
		Name:        "Ana Dev",
		Skills:      datatypes.JSON(`["Go","SQL"]`),
		Education:   datatypes.JSON(`[{"institution":"USP","degree":"BSc","start_year":"2015","end_year":"2019"}]`),
		SocialLinks: datatypes.JSON(`{"github":"https://github.com/ana"}`),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	s := NewStore(db, nil)
	profile, err := s.LoadProfile(context.Background(), 7)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.ID != "7" || profile.Name != "Ana Dev" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(profile.Skills) != 2 || profile.Skills[1] != "SQL" {
		t.Fatalf("skills not decoded: %v", profile.Skills)
	}
	if len(profile.Education) != 1 || profile.Education[0].Institution != "USP" {
		t.Fatalf("education not decoded: %+v", profile.Education)
	}
	if profile.SocialLinks["github"] == "" {
		t.Fatalf("social links not decoded: %v", profile.SocialLinks)
	}
}

func TestLoadProfile_NotFound(t *testing.T) {
	db := newTestDB(t)
	s := NewStore(db, nil)

	_, err := s.LoadProfile(context.Background(), 1)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestLoadProfile_PhotoURLDegradesOnError(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&database.Profile{UserID: 1, Name: "Ana", PhotoKey: "user-photos/1/a.png"}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	s := NewStore(db, func(context.Context, string) (string, error) {
		return "", errors.New("presign unavailable")
	})
	profile, err := s.LoadProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected degraded load, got %v", err)
	}
	if profile.PhotoURL != "" {
		t.Fatalf("expected empty photo url, got %q", profile.PhotoURL)
	}
}

func TestLoadCVProps_OrdersByPosition(t *testing.T) {
	db := newTestDB(t)
	rows := []database.Experience{
		{UserID: 1, Title: "Senior", Position: 1},
		{UserID: 1, Title: "Junior", Position: 0},
		{UserID: 2, Title: "Other", Position: 0},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed experience: %v", err)
		}
	}

	s := NewStore(db, nil)
	props, err := s.LoadCVProps(context.Background(), 1, render.LocaleEN)
	if err != nil {
		t.Fatalf("load cv props: %v", err)
	}
	if len(props.Experiences) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(props.Experiences))
	}
	if props.Experiences[0].Title != "Junior" || props.Experiences[1].Title != "Senior" {
		t.Fatalf("expected position order, got %+v", props.Experiences)
	}
	if props.Profile.Locale != render.LocaleEN || props.Locale != render.LocaleEN {
		t.Fatalf("expected locale threaded through props")
	}
	if props.Theme != nil {
		t.Fatalf("expected nil theme when none saved")
	}
}

func TestLoadPortfolioProps_IncludesVideos(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&database.FeaturedVideo{UserID: 1, Title: "Talk", Platform: "youtube"}).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	if err := db.Create(&database.Theme{UserID: 1, PrimaryColor: "#123456", PortfolioTemplate: "dark"}).Error; err != nil {
		t.Fatalf("seed theme: %v", err)
	}

	s := NewStore(db, nil)
	props, err := s.LoadPortfolioProps(context.Background(), 1, render.DefaultLocale)
	if err != nil {
		t.Fatalf("load portfolio props: %v", err)
	}
	if len(props.Videos) != 1 || props.Videos[0].Title != "Talk" {
		t.Fatalf("videos not loaded: %+v", props.Videos)
	}
	if props.Theme == nil || props.Theme.PrimaryColor != "#123456" {
		t.Fatalf("theme not loaded: %+v", props.Theme)
	}
}
