package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"phFolio/internal/database"
	"phFolio/internal/storage"
)

type fakePhotoStorage struct {
	uploaded map[string][]byte
	deleted  []string
	objects  []storage.ObjectMeta
}

func newFakePhotoStorage() *fakePhotoStorage {
	return &fakePhotoStorage{uploaded: map[string][]byte{}}
}

func (s *fakePhotoStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return &minio.UploadInfo{}, nil
}

func (s *fakePhotoStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + objectKey, nil
}

func (s *fakePhotoStorage) ListObjects(_ context.Context, prefix string, limit int) ([]storage.ObjectMeta, error) {
	out := make([]storage.ObjectMeta, 0, len(s.objects))
	for _, obj := range s.objects {
		if strings.HasPrefix(obj.Key, prefix) {
			out = append(out, obj)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakePhotoStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploaded, objectKey)
	return nil
}

type fakeScanner struct {
	status string
}

func (f fakeScanner) ScanStream(r io.Reader, _ chan bool) (chan *clamd.ScanResult, error) {
	io.Copy(io.Discard, r)
	ch := make(chan *clamd.ScanResult, 1)
	ch <- &clamd.ScanResult{Status: f.status}
	close(ch)
	return ch, nil
}

func newPhotoUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newAssetTestHandler(t *testing.T, scanStatus string) (*AssetHandler, *fakePhotoStorage, *database.User) {
	t.Helper()
	db := newTestDB(t)
	user := seedUser(t, db, "ana")
	st := newFakePhotoStorage()
	h := &AssetHandler{
		db:      db,
		storage: st,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		scanner: fakeScanner{status: scanStatus},
	}
	return h, st, &user
}

func TestUploadPhoto_RejectsNonImage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st, user := newAssetTestHandler(t, clamd.RES_OK)

	body, contentType := newPhotoUpload(t, "a.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/v1/assets/photo", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c := authedContext(w, req, user.ID)
	h.UploadPhoto(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if len(st.uploaded) != 0 {
		t.Fatalf("expected nothing uploaded")
	}
}

func TestUploadPhoto_RejectsInfectedFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st, user := newAssetTestHandler(t, clamd.RES_FOUND)

	body, contentType := newPhotoUpload(t, "a.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	req := httptest.NewRequest(http.MethodPost, "/v1/assets/photo", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c := authedContext(w, req, user.ID)
	h.UploadPhoto(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if len(st.uploaded) != 0 {
		t.Fatalf("expected nothing uploaded")
	}
}

func TestUploadPhoto_RecordsKeyAndCleansOld(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st, user := newAssetTestHandler(t, clamd.RES_OK)

	oldKey := photoPrefix(user.ID) + "old.png"
	if err := h.db.Create(&database.Profile{UserID: user.ID, Name: "Ana", PhotoKey: oldKey}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	body, contentType := newPhotoUpload(t, "a.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	req := httptest.NewRequest(http.MethodPost, "/v1/assets/photo", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c := authedContext(w, req, user.ID)
	h.UploadPhoto(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	key := resp["objectKey"]
	if !strings.HasPrefix(key, photoPrefix(user.ID)) || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected object key %q", key)
	}
	if _, ok := st.uploaded[key]; !ok {
		t.Fatalf("expected object uploaded under %q", key)
	}
	if len(st.deleted) != 1 || st.deleted[0] != oldKey {
		t.Fatalf("expected old photo deleted, got %v", st.deleted)
	}

	var profile database.Profile
	if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.PhotoKey != key {
		t.Fatalf("expected photo key recorded, got %q", profile.PhotoKey)
	}
}

func TestGetPhotoURL_KeyValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, user := newAssetTestHandler(t, clamd.RES_OK)

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"foreign prefix", "user-photos/999/a.png", http.StatusForbidden},
		{"traversal", photoPrefix(user.ID) + "../b.png", http.StatusForbidden},
		{"wrong extension", photoPrefix(user.ID) + "a.pdf", http.StatusForbidden},
		{"valid", photoPrefix(user.ID) + "a.png", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/assets/view?key="+tc.key, nil), user.ID)
		h.GetPhotoURL(c)
		if w.Code != tc.want {
			t.Errorf("%s: expected %d got %d body=%s", tc.name, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestListPhotos_SortsNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st, user := newAssetTestHandler(t, clamd.RES_OK)

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	st.objects = []storage.ObjectMeta{
		{Key: photoPrefix(user.ID) + "old.png", LastModified: base},
		{Key: photoPrefix(user.ID) + "new.png", LastModified: base.Add(time.Hour)},
		{Key: "user-photos/999/other.png", LastModified: base.Add(2 * time.Hour)},
	}

	w := httptest.NewRecorder()
	c := authedContext(w, jsonRequest(t, http.MethodGet, "/v1/assets/photos", nil), user.ID)
	h.ListPhotos(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []struct {
			ObjectKey string `json:"objectKey"`
		} `json:"items"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 photos for user, got %d", len(resp.Items))
	}
	if !strings.HasSuffix(resp.Items[0].ObjectKey, "new.png") {
		t.Fatalf("expected newest first, got %q", resp.Items[0].ObjectKey)
	}
}
