package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"phFolio/internal/content"
	"phFolio/internal/database"
	"phFolio/internal/tasks"
)

// 快照永远取不到，公开端点只能走实时渲染分支。
type emptySnapshotReader struct{}

func (emptySnapshotReader) GetObject(context.Context, string) (*minio.Object, error) {
	return nil, errors.New("no snapshot")
}

func newPortfolioTestHandler(t *testing.T) (*PortfolioHandler, *fakeEnqueuer, *database.User) {
	t.Helper()
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	enq := &fakeEnqueuer{}
	h := NewPortfolioHandler(db, content.NewStore(db, nil), enq, emptySnapshotReader{}, "https://folio.example.com/")
	return h, enq, &user
}

func blockUser(t *testing.T, h *PortfolioHandler, userID uint) {
	t.Helper()
	past := time.Now().AddDate(0, 0, -30)
	zero := 0
	sub := database.Subscription{
		UserID:       userID,
		Status:       "canceled",
		PeriodEndsAt: &past,
		GraceDays:    &zero,
	}
	if err := h.db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
}

func TestGetPublic_UnknownSlug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newPortfolioTestHandler(t)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/p/ninguem", nil), 0)
	c.Params = gin.Params{{Key: "slug", Value: "ninguem"}}
	h.GetPublic(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetPublic_BlockedHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, user := newPortfolioTestHandler(t)
	blockUser(t, h, user.ID)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/p/ana", nil), 0)
	c.Params = gin.Params{{Key: "slug", Value: "ana"}}
	h.GetPublic(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "não está disponível") {
		t.Fatalf("expected localized unavailable page, got %s", w.Body.String())
	}
}

func TestGetPublic_GraceShowsBanner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, user := newPortfolioTestHandler(t)

	past := time.Now().AddDate(0, 0, -1)
	sub := database.Subscription{
		UserID:       user.ID,
		Status:       "active",
		PeriodEndsAt: &past,
	}
	if err := h.db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	if err := h.db.Create(&database.Profile{UserID: user.ID, Name: "Ana Dev"}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/p/ana", nil), 0)
	c.Params = gin.Params{{Key: "slug", Value: "ana"}}
	h.GetPublic(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "grace-banner") || !strings.Contains(body, "Ana Dev") {
		t.Fatalf("expected grace banner over live content, got %s", body)
	}
}

func TestGetPublic_RendersLive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, user := newPortfolioTestHandler(t)

	if err := h.db.Create(&database.Profile{
		UserID: user.ID,
		Name:   "Ana Dev",
	}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := h.db.Create(&database.Project{
		UserID:      user.ID,
		Title:       "phFolio CLI",
		Description: "ferramenta de linha de comando",
	}).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/p/ana", nil), 0)
	c.Params = gin.Params{{Key: "slug", Value: "ana"}}
	h.GetPublic(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Ana Dev") || !strings.Contains(body, "phFolio CLI") {
		t.Fatalf("expected rendered page with profile and project")
	}
}

func TestGetPublic_LangOverride(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, user := newPortfolioTestHandler(t)

	if err := h.db.Create(&database.Profile{UserID: user.ID, Name: "Ana Dev"}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/p/ana?lang=es", nil), 0)
	c.Params = gin.Params{{Key: "slug", Value: "ana"}}
	h.GetPublic(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `lang="es"`) {
		t.Fatalf("expected page rendered with es locale")
	}
}

func TestPublish_Accepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, enq, user := newPortfolioTestHandler(t)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPost, "/v1/portfolio/publish", nil), user.ID)
	h.Publish(c)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]any
	decodeBody(t, w, &resp)
	if got, _ := resp["public_url"].(string); got != "https://folio.example.com/v1/p/ana" {
		t.Fatalf("unexpected public url %q", got)
	}

	if len(enq.enqueued) != 1 || enq.enqueued[0].Type() != tasks.TypePortfolioPublish {
		t.Fatalf("expected one portfolio publish task, got %+v", enq.enqueued)
	}

	var record database.PublishRecord
	if err := h.db.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("load publish record: %v", err)
	}
	if record.Status != "pending" || record.Slug != "ana" || record.TemplateID != "modern" {
		t.Fatalf("unexpected publish record: %+v", record)
	}
}

func TestPublish_BlockedForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, enq, user := newPortfolioTestHandler(t)
	blockUser(t, h, user.ID)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPost, "/v1/portfolio/publish", nil), user.ID)
	h.Publish(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
	if len(enq.enqueued) != 0 {
		t.Fatalf("expected no task enqueued for blocked account")
	}
}
