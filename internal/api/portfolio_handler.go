package api

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"phFolio/internal/access"
	"phFolio/internal/api/middleware"
	"phFolio/internal/content"
	"phFolio/internal/database"
	"phFolio/internal/render"
	"phFolio/internal/tasks"
)

// snapshotReader 读取已发布的作品集快照。
type snapshotReader interface {
	GetObject(ctx context.Context, objectKey string) (*minio.Object, error)
}

// PortfolioHandler 负责作品集发布与公开访问。
type PortfolioHandler struct {
	db            *gorm.DB
	store         *content.Store
	enqueue       taskEnqueuer
	snapshots     snapshotReader
	publicBaseURL string
}

func NewPortfolioHandler(db *gorm.DB, store *content.Store, enqueue taskEnqueuer, snapshots snapshotReader, publicBaseURL string) *PortfolioHandler {
	return &PortfolioHandler{
		db:            db,
		store:         store,
		enqueue:       enqueue,
		snapshots:     snapshots,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

// Publish 生成一条发布记录并将快照任务入队。
func (h *PortfolioHandler) Publish(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	var user database.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		Internal(c, "failed to load user")
		return
	}

	// 被封锁的账号不能发布
	if state := h.classifyUser(ctx, userID, time.Now()); state == access.StateBlocked {
		Forbidden(c, "subscription required")
		return
	}

	theme, err := h.loadThemeRow(ctx, userID)
	if err != nil {
		Internal(c, "failed to load theme")
		return
	}
	templateID := render.PortfolioModern
	if theme != nil {
		templateID = render.ParsePortfolioTemplateID(theme.PortfolioTemplate)
	}

	record := database.PublishRecord{
		UserID:     userID,
		Slug:       user.Slug,
		TemplateID: string(templateID),
		Locale:     user.Locale,
		Status:     "pending",
	}
	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		Internal(c, "failed to create publish record")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPortfolioPublishTask(userID, record.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}
	info, err := h.enqueue.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue publish")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":    "publish request accepted",
		"task_id":    info.ID,
		"public_url": h.publicBaseURL + "/v1/p/" + user.Slug,
	})
}

// GetPublic 渲染公开作品集页面。slug 不存在是独立的 404 状态；
// 订阅封锁的账号对外不可见。lang 参数覆盖默认语言并强制实时渲染。
func (h *PortfolioHandler) GetPublic(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	if slug == "" {
		NotFound(c, "portfolio not found")
		return
	}

	ctx := c.Request.Context()
	var user database.User
	if err := h.db.WithContext(ctx).Where("slug = ?", slug).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "portfolio not found")
			return
		}
		Internal(c, "failed to load portfolio")
		return
	}

	langOverride, hasLang := render.ParseLocale(c.Query("lang"))
	locale := langOverride
	if !hasLang {
		locale = render.DefaultLocale
		if stored := render.Locale(user.Locale); stored.Valid() {
			locale = stored
		}
	}

	state := h.classifyUser(ctx, user.ID, time.Now())
	if state == access.StateBlocked {
		h.renderUnavailable(c, locale)
		return
	}

	// 宽限期需要叠加横幅，快照里没有，所以也走实时渲染
	if !hasLang && state != access.StateGrace {
		if served := h.serveSnapshot(c, user.ID); served {
			return
		}
	}

	h.renderLive(c, user.ID, locale, state == access.StateGrace)
}

// renderUnavailable 返回封锁占位页，对外不区分封锁原因。
func (h *PortfolioHandler) renderUnavailable(c *gin.Context, locale render.Locale) {
	notice := render.UnavailableNotice(locale)
	body := "<main class=\"notice\"><p>" + html.EscapeString(notice) + "</p></main>"
	page, err := render.WrapPage(notice, body, locale, nil)
	if err != nil {
		Forbidden(c, "portfolio unavailable")
		return
	}
	c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(page))
}

// serveSnapshot 尝试流式返回最近一次发布的快照，成功返回 true。
func (h *PortfolioHandler) serveSnapshot(c *gin.Context, userID uint) bool {
	ctx := c.Request.Context()
	var record database.PublishRecord
	err := h.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "published").
		Order("created_at DESC").
		First(&record).Error
	if err != nil || record.HTMLKey == "" {
		return false
	}

	obj, err := h.snapshots.GetObject(ctx, record.HTMLKey)
	if err != nil {
		return false
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil || len(data) == 0 {
		return false
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	return true
}

func (h *PortfolioHandler) renderLive(c *gin.Context, userID uint, locale render.Locale, withGraceBanner bool) {
	ctx := c.Request.Context()

	props, err := h.store.LoadPortfolioProps(ctx, userID, locale)
	if err != nil {
		Internal(c, "failed to load portfolio data")
		return
	}

	templateID := render.PortfolioModern
	if theme, err := h.loadThemeRow(ctx, userID); err == nil && theme != nil {
		templateID = render.ParsePortfolioTemplateID(theme.PortfolioTemplate)
	}

	body, err := render.RenderPortfolio(templateID, props)
	if err != nil {
		Internal(c, "failed to render portfolio")
		return
	}
	if withGraceBanner {
		banner := "<div class=\"grace-banner\">" + html.EscapeString(render.GraceBanner(locale)) + "</div>"
		body = banner + body
	}
	page, err := render.WrapPage(props.Profile.Name, body, locale, props.Theme)
	if err != nil {
		Internal(c, "failed to render page")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *PortfolioHandler) loadThemeRow(ctx context.Context, userID uint) (*database.Theme, error) {
	var row database.Theme
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// classifyUser 加载订阅并分类访问状态，没有订阅记录即为 active。
func (h *PortfolioHandler) classifyUser(ctx context.Context, userID uint, now time.Time) access.State {
	var row database.Subscription
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return access.Classify(nil, now)
	}
	return access.Classify(&access.Subscription{
		Status:       row.Status,
		TrialEndsAt:  row.TrialEndsAt,
		PeriodEndsAt: row.PeriodEndsAt,
		GraceDays:    row.GraceDays,
	}, now)
}
