package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"phFolio/internal/database"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&database.User{},
		&database.Profile{},
		&database.Experience{},
		&database.Project{},
		&database.Article{},
		&database.FeaturedVideo{},
		&database.Theme{},
		&database.CV{},
		&database.Subscription{},
		&database.PublishRecord{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, slug string) database.User {
	t.Helper()
	user := database.User{
		Username:     slug,
		PasswordHash: "x",
		Slug:         slug,
		Locale:       "pt",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedContext(w *httptest.ResponseRecorder, req *http.Request, userID uint) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestGetProfile_EmptyWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewProfileHandler(db)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/profile", nil), user.ID)
	h.GetProfile(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp profileResponse
	decodeBody(t, w, &resp)
	if resp.Name != "" || len(resp.Skills) != 0 {
		t.Fatalf("expected empty profile, got %+v", resp)
	}
}

func TestUpsertProfile_SanitizesAndRoundTrips(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewProfileHandler(db)

	payload := profileRequest{
		Name:     "Ana <b>Dev</b>",
		Headline: "Engenheira",
		Bio:      `<p>ola</p><script>alert(1)</script>`,
		Email:    "ana@example.com",
		Skills:   []string{"Go", " ", "SQL"},
		Education: []educationPayload{
			{Institution: "USP", Degree: "BSc", StartYear: "2015", EndYear: "2019"},
		},
		SocialLinks: map[string]string{"GitHub": "https://github.com/ana", "empty": ""},
	}
	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPut, "/v1/profile", payload), user.ID)
	h.UpsertProfile(c)
	if w.Code != http.StatusOK {
		t.Fatalf("upsert: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodGet, "/v1/profile", nil), user.ID)
	h.GetProfile(c)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", w.Code)
	}

	var resp profileResponse
	decodeBody(t, w, &resp)
	if strings.Contains(resp.Name, "<") {
		t.Fatalf("name not sanitized: %q", resp.Name)
	}
	if strings.Contains(resp.Bio, "<script>") {
		t.Fatalf("bio kept script tag: %q", resp.Bio)
	}
	if !strings.Contains(resp.Bio, "ola") {
		t.Fatalf("bio lost safe content: %q", resp.Bio)
	}
	if len(resp.Skills) != 2 {
		t.Fatalf("expected blank skill dropped, got %v", resp.Skills)
	}
	if len(resp.Education) != 1 || resp.Education[0].Institution != "USP" {
		t.Fatalf("education round trip failed: %+v", resp.Education)
	}
	if resp.SocialLinks["github"] != "https://github.com/ana" {
		t.Fatalf("expected lowered social key, got %v", resp.SocialLinks)
	}
	if _, ok := resp.SocialLinks["empty"]; ok {
		t.Fatalf("expected empty social link dropped, got %v", resp.SocialLinks)
	}
}

func TestUpsertProfile_SecondWriteOverwrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewProfileHandler(db)

	for _, name := range []string{"First", "Second"} {
		w := httptest.NewRecorder()
		c := authedContext(w, jsonRequest(t, http.MethodPut, "/v1/profile", profileRequest{Name: name}), user.ID)
		h.UpsertProfile(c)
		if w.Code != http.StatusOK {
			t.Fatalf("upsert %q: expected 200 got %d", name, w.Code)
		}
	}

	var count int64
	if err := db.Model(&database.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single profile row, got %d", count)
	}

	var row database.Profile
	if err := db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if row.Name != "Second" {
		t.Fatalf("expected overwrite, got %q", row.Name)
	}
}

func TestUpdateLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewProfileHandler(db)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPut, "/v1/locale", localeRequest{Locale: "fr"}), user.ID)
	h.UpdateLocale(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported locale, got %d", w.Code)
	}

	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		c = authedContext(w, jsonRequest(t, http.MethodPut, "/v1/locale", localeRequest{Locale: "ES"}), user.ID)
		h.UpdateLocale(c)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
		}
	}

	var row database.User
	if err := db.First(&row, user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if row.Locale != "es" {
		t.Fatalf("expected locale es, got %q", row.Locale)
	}
}

func TestUpsertTheme_UnknownTemplateFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewProfileHandler(db)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPut, "/v1/theme", themeRequest{
		PrimaryColor:      "#112233",
		PortfolioTemplate: "sparkle",
	}), user.ID)
	h.UpsertTheme(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["portfolio_template"] != "modern" {
		t.Fatalf("expected fallback to modern, got %q", resp["portfolio_template"])
	}

	// 再次写入走更新分支
	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodPut, "/v1/theme", themeRequest{
		PrimaryColor:      "#445566",
		PortfolioTemplate: "dark",
	}), user.ID)
	h.UpsertTheme(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var row database.Theme
	if err := db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("load theme: %v", err)
	}
	if row.PrimaryColor != "#445566" || row.PortfolioTemplate != "dark" {
		t.Fatalf("theme not updated: %+v", row)
	}
}
