package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"phFolio/internal/content"
	"phFolio/internal/database"
	"phFolio/internal/errcode"
	"phFolio/internal/pdf"
	"phFolio/internal/render"
	"phFolio/internal/storage"
	"phFolio/internal/tasks"
)

// pdfGenerator 默认走 go-rod，测试替换为纯函数。
type pdfGenerator func(htmlContent string) ([]byte, error)

// objectStore 抽象对象存储，只暴露任务处理需要的两个操作。
type objectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// CVExportHandler 负责消费简历导出任务:渲染 HTML，
// 交给无头浏览器出 PDF，再上传到对象存储。
type CVExportHandler struct {
	db          *gorm.DB
	store       *content.Store
	storage     objectStore
	redisClient notifyPublisher
	logger      *slog.Logger
	generatePDF pdfGenerator
}

// NewCVExportHandler 创建任务处理器。
func NewCVExportHandler(
	db *gorm.DB,
	store *content.Store,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) *CVExportHandler {
	return &CVExportHandler{
		db:          db,
		store:       store,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
		generatePDF: pdf.GeneratePDFFromHTML,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *CVExportHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.CVExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("cv_id", int(payload.CVID)),
	)
	log.Info("starting cv export task")

	var cv database.CV
	if err := h.db.WithContext(ctx).First(&cv, payload.CVID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("cv not found, skipping task")
			return nil
		}
		log.Error("query cv failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(cv.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := JobNotifyMessage{
			Type:          "cv_export",
			Status:        "error",
			TargetID:      cv.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := publishNotify(ctx, h.redisClient, cv.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
		if err := h.db.WithContext(ctx).Model(&cv).Update("status", "failed").Error; err != nil {
			log.Error("mark cv failed", slog.Any("error", err))
		}
	}()

	locale, _ := render.ParseLocale(payload.Locale)

	props, err := h.store.LoadCVProps(ctx, cv.UserID, locale)
	if err != nil {
		log.Error("load cv data failed", slog.Any("error", err))
		return err
	}

	templateID := render.ParseCVTemplateID(cv.TemplateID)
	body, err := render.RenderCV(templateID, props)
	if err != nil {
		log.Error("render cv failed", slog.Any("error", err))
		return err
	}
	page, err := render.WrapPage(props.Profile.Name, body, locale, props.Theme)
	if err != nil {
		log.Error("render page failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := h.generatePDF(page)
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("exported-cvs/%d/%s.pdf", cv.UserID, uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	// 覆盖旧产物前先记住旧键，成功后清理
	oldKey := cv.PdfKey
	update := map[string]any{
		"pdf_key": objectName,
		"status":  "completed",
	}
	if err := h.db.WithContext(ctx).Model(&cv).Updates(update).Error; err != nil {
		log.Error("update cv failed", slog.Any("error", err))
		return err
	}
	if oldKey != "" && oldKey != objectName {
		if err := h.storage.DeleteObject(ctx, oldKey); err != nil {
			log.Warn("delete previous pdf failed", slog.String("objectKey", oldKey), slog.Any("error", err))
		}
	}

	notify := JobNotifyMessage{
		Type:          "cv_export",
		Status:        "completed",
		TargetID:      cv.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := publishNotify(ctx, h.redisClient, cv.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("cv export task completed",
		slog.String("template", string(templateID)),
		slog.String("object_key", objectName),
		slog.Int("pdf_bytes", len(pdfBytes)),
	)
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
