package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"phFolio/internal/content"
	"phFolio/internal/database"
	"phFolio/internal/errcode"
	"phFolio/internal/render"
	"phFolio/internal/storage"
	"phFolio/internal/tasks"
)

// PortfolioPublishHandler 负责消费发布任务:渲染作品集页面，
// 把完整 HTML 快照写入对象存储并更新发布记录。
type PortfolioPublishHandler struct {
	db            *gorm.DB
	store         *content.Store
	storage       objectStore
	redisClient   notifyPublisher
	logger        *slog.Logger
	publicBaseURL string
}

// NewPortfolioPublishHandler 创建任务处理器。
func NewPortfolioPublishHandler(
	db *gorm.DB,
	store *content.Store,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	publicBaseURL string,
) *PortfolioPublishHandler {
	return &PortfolioPublishHandler{
		db:            db,
		store:         store,
		storage:       storageClient,
		redisClient:   redisClient,
		logger:        logger,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *PortfolioPublishHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PortfolioPublishPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("user_id", uint64(payload.UserID)),
		slog.Uint64("record_id", uint64(payload.RecordID)),
	)
	log.Info("starting portfolio publish task")

	var record database.PublishRecord
	if err := h.db.WithContext(ctx).First(&record, payload.RecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("publish record not found, skipping task")
			return nil
		}
		log.Error("query publish record failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := JobNotifyMessage{
			Type:          "portfolio_publish",
			Status:        "error",
			TargetID:      record.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := publishNotify(ctx, h.redisClient, payload.UserID, notify); err != nil {
			log.Error("publish error notification failed", slog.Any("error", err))
		}
		if err := h.db.WithContext(ctx).Model(&record).Update("status", "failed").Error; err != nil {
			log.Error("mark publish record failed", slog.Any("error", err))
		}
	}()

	locale, _ := render.ParseLocale(record.Locale)
	templateID := render.ParsePortfolioTemplateID(record.TemplateID)

	props, err := h.store.LoadPortfolioProps(ctx, payload.UserID, locale)
	if err != nil {
		log.Error("load portfolio data failed", slog.Any("error", err))
		return err
	}

	body, err := render.RenderPortfolio(templateID, props)
	if err != nil {
		log.Error("render portfolio failed", slog.Any("error", err))
		return err
	}
	page, err := render.WrapPage(props.Profile.Name, body, locale, props.Theme)
	if err != nil {
		log.Error("render page failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("published-portfolios/%d/%d.html", payload.UserID, record.ID)
	reader := strings.NewReader(page)
	if _, err := h.storage.UploadFile(ctx, objectName, reader, int64(len(page)), "text/html; charset=utf-8"); err != nil {
		log.Error("upload snapshot to minio failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"html_key": objectName,
		"status":   "published",
	}
	if err := h.db.WithContext(ctx).Model(&record).Updates(update).Error; err != nil {
		log.Error("update publish record failed", slog.Any("error", err))
		return err
	}

	// 旧快照不再被公开端点引用，直接清掉
	if err := h.cleanupOldSnapshots(ctx, payload.UserID, record.ID); err != nil {
		log.Warn("cleanup old snapshots failed", slog.Any("error", err))
	}

	notify := JobNotifyMessage{
		Type:          "portfolio_publish",
		Status:        "completed",
		TargetID:      record.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
		PublicURL:     h.publicBaseURL + "/v1/p/" + record.Slug,
	}
	if err := publishNotify(ctx, h.redisClient, payload.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("portfolio publish task completed",
		slog.String("template", string(templateID)),
		slog.String("object_key", objectName),
	)
	return nil
}

// cleanupOldSnapshots 删除同一用户早先发布的快照对象。
func (h *PortfolioPublishHandler) cleanupOldSnapshots(ctx context.Context, userID, keepRecordID uint) error {
	var records []database.PublishRecord
	if err := h.db.WithContext(ctx).
		Where("user_id = ? AND id <> ? AND html_key <> ''", userID, keepRecordID).
		Find(&records).Error; err != nil {
		return err
	}
	for _, r := range records {
		if err := h.storage.DeleteObject(ctx, r.HTMLKey); err != nil {
			return err
		}
		if err := h.db.WithContext(ctx).Model(&r).Updates(map[string]any{
			"html_key": "",
			"status":   "superseded",
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
