package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"phFolio/internal/content"
	"phFolio/internal/database"
	"phFolio/internal/tasks"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:workertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
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
		&database.PublishRecord{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeObjectStore struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploaded: map[string][]byte{}}
}

func (s *fakeObjectStore) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return &minio.UploadInfo{}, nil
}

func (s *fakeObjectStore) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploaded, objectKey)
	return nil
}

type fakePublisher struct {
	channels []string
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	p.channels = append(p.channels, channel)
	if b, ok := message.([]byte); ok {
		p.payloads = append(p.payloads, b)
	}
	return redis.NewIntResult(1, nil)
}

func (p *fakePublisher) lastNotify(t *testing.T) JobNotifyMessage {
	t.Helper()
	if len(p.payloads) == 0 {
		t.Fatal("expected a published notification")
	}
	var msg JobNotifyMessage
	if err := json.Unmarshal(p.payloads[len(p.payloads)-1], &msg); err != nil {
		t.Fatalf("decode notification: %v", err)
	}
	return msg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedCVUser(t *testing.T, db *gorm.DB) (database.User, database.CV) {
	t.Helper()
	user := database.User{Username: "ana", PasswordHash: "x", Slug: "ana", Locale: "pt"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&database.Profile{UserID: user.ID, Name: "Ana Dev"}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	cv := database.CV{UserID: user.ID, Title: "Curriculo", TemplateID: "minimal"}
	if err := db.Create(&cv).Error; err != nil {
		t.Fatalf("seed cv: %v", err)
	}
	return user, cv
}

func TestCVExport_CompletesAndReplacesOldPDF(t *testing.T) {
	db := newTestDB(t)
	user, cv := seedCVUser(t, db)
	if err := db.Model(&cv).Update("pdf_key", "exported-cvs/1/old.pdf").Error; err != nil {
		t.Fatalf("set old pdf key: %v", err)
	}

	store := newFakeObjectStore()
	pub := &fakePublisher{}
	h := &CVExportHandler{
		db:          db,
		store:       content.NewStore(db, nil),
		storage:     store,
		redisClient: pub,
		logger:      testLogger(),
		generatePDF: func(html string) ([]byte, error) {
			if !strings.Contains(html, "Ana Dev") {
				t.Errorf("expected rendered page with profile name")
			}
			return []byte("%PDF-1.4 fake"), nil
		},
	}

	task, err := tasks.NewCVExportTask(cv.ID, "en", "corr-1")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process task: %v", err)
	}

	var row database.CV
	if err := db.First(&row, cv.ID).Error; err != nil {
		t.Fatalf("load cv: %v", err)
	}
	if row.Status != "completed" {
		t.Fatalf("expected completed status, got %q", row.Status)
	}
	if row.PdfKey == "" || row.PdfKey == "exported-cvs/1/old.pdf" {
		t.Fatalf("expected new pdf key, got %q", row.PdfKey)
	}
	if _, ok := store.uploaded[row.PdfKey]; !ok {
		t.Fatalf("expected pdf uploaded under %q", row.PdfKey)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "exported-cvs/1/old.pdf" {
		t.Fatalf("expected old pdf cleaned up, got %v", store.deleted)
	}

	wantChannel := fmt.Sprintf("user_notify:%d", user.ID)
	if len(pub.channels) != 1 || pub.channels[0] != wantChannel {
		t.Fatalf("expected notify on %q, got %v", wantChannel, pub.channels)
	}
	msg := pub.lastNotify(t)
	if msg.Type != "cv_export" || msg.Status != "completed" || msg.CorrelationID != "corr-1" {
		t.Fatalf("unexpected notification: %+v", msg)
	}
}

func TestCVExport_MissingCVSkips(t *testing.T) {
	db := newTestDB(t)
	store := newFakeObjectStore()
	pub := &fakePublisher{}
	h := &CVExportHandler{
		db:          db,
		store:       content.NewStore(db, nil),
		storage:     store,
		redisClient: pub,
		logger:      testLogger(),
		generatePDF: func(string) ([]byte, error) { return nil, errors.New("should not be called") },
	}

	task, err := tasks.NewCVExportTask(999, "pt", "corr-2")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("expected skip without error, got %v", err)
	}
	if len(store.uploaded) != 0 || len(pub.channels) != 0 {
		t.Fatalf("expected no side effects for missing cv")
	}
}

func TestCVExport_GeneratorFailureRetries(t *testing.T) {
	db := newTestDB(t)
	_, cv := seedCVUser(t, db)

	store := newFakeObjectStore()
	pub := &fakePublisher{}
	h := &CVExportHandler{
		db:          db,
		store:       content.NewStore(db, nil),
		storage:     store,
		redisClient: pub,
		logger:      testLogger(),
		generatePDF: func(string) ([]byte, error) { return nil, errors.New("browser crashed") },
	}

	task, err := tasks.NewCVExportTask(cv.ID, "pt", "corr-3")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("expected error to trigger retry")
	}

	// 不是最后一次重试，状态保持原样、不发错误通知
	var row database.CV
	if err := db.First(&row, cv.ID).Error; err != nil {
		t.Fatalf("load cv: %v", err)
	}
	if row.Status == "failed" {
		t.Fatalf("expected status untouched before final attempt")
	}
	if len(pub.channels) != 0 {
		t.Fatalf("expected no notification before final attempt")
	}
}
