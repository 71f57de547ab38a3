package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"phFolio/internal/database"
)

func TestCreateExperience_AppendsToTail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewCollectionHandler(db)

	for _, title := range []string{"Dev Pleno", "Dev Senior"} {
		w := httptest.NewRecorder()
		c := authedContext(w, jsonRequest(t, http.MethodPost, "/v1/experiences", experienceRequest{
			Title:   title,
			Company: "Acme",
		}), user.ID)
		h.CreateExperience(c)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %q: expected 201 got %d body=%s", title, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/experiences", nil), user.ID)
	h.ListExperiences(c)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w.Code)
	}

	var items []experienceResponse
	decodeBody(t, w, &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(items))
	}
	if items[0].Position != 0 || items[1].Position != 1 {
		t.Fatalf("expected positions 0,1 got %d,%d", items[0].Position, items[1].Position)
	}
	if items[0].Title != "Dev Pleno" {
		t.Fatalf("expected insertion order preserved, got %q first", items[0].Title)
	}
}

func TestCreateProject_RequiresDescription(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewCollectionHandler(db)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPost, "/v1/projects", map[string]string{
		"title": "Sem descricao",
	}), user.ID)
	h.CreateProject(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodPost, "/v1/projects", projectRequest{
		Title:       "phFolio",
		Description: "builder de portfolio",
		LinkURL:     "https://example.com/phfolio",
	}), user.ID)
	h.CreateProject(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateExperience_ScopedToOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	owner := seedUser(t, db, "ana")
	other := seedUser(t, db, "bia")
	h := NewCollectionHandler(db)

	row := database.Experience{UserID: owner.ID, Title: "Dev"}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed experience: %v", err)
	}

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPut, "/v1/experiences/1", experienceRequest{Title: "Hacker"}), other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.UpdateExperience(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign item, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodPut, "/v1/experiences/1", experienceRequest{Title: "Tech Lead"}), owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.UpdateExperience(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var updated database.Experience
	if err := db.First(&updated, row.ID).Error; err != nil {
		t.Fatalf("load experience: %v", err)
	}
	if updated.Title != "Tech Lead" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
}

func TestDeleteArticle_Errors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewCollectionHandler(db)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodDelete, "/v1/articles/abc", nil), user.ID)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.DeleteArticle(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodDelete, "/v1/articles/999", nil), user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	h.DeleteArticle(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing article, got %d", w.Code)
	}
}

func TestVideoLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	h := NewCollectionHandler(db)

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodPost, "/v1/videos", videoRequest{
		Title:    "Palestra GopherCon",
		Platform: "youtube",
	}), user.ID)
	h.CreateVideo(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created map[string]uint
	decodeBody(t, w, &created)
	id := created["id"]
	if id == 0 {
		t.Fatalf("expected created id, got %v", created)
	}

	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodDelete, "/v1/videos/1", nil), user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.DeleteVideo(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c = authedContext(w, jsonRequest(t, http.MethodGet, "/v1/videos", nil), user.ID)
	h.ListVideos(c)
	var items []videoResponse
	decodeBody(t, w, &items)
	if len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %d items", len(items))
	}
}
