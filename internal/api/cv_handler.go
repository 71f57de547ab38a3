package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"phFolio/internal/api/middleware"
	"phFolio/internal/content"
	"phFolio/internal/database"
	"phFolio/internal/render"
	"phFolio/internal/tasks"
)

// taskEnqueuer 抽象 asynq 客户端，便于测试替换。
type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// downloadSigner 生成导出产物的限时下载链接。
type downloadSigner interface {
	GeneratePresignedURLWithParams(ctx context.Context, objectKey string, duration time.Duration, params map[string]string) (string, error)
}

// CVHandler 负责简历配置、实时预览与导出。
type CVHandler struct {
	db      *gorm.DB
	store   *content.Store
	enqueue taskEnqueuer
	signer  downloadSigner
	maxCVs  int
}

func NewCVHandler(db *gorm.DB, store *content.Store, enqueue taskEnqueuer, signer downloadSigner, maxCVs int) *CVHandler {
	return &CVHandler{
		db:      db,
		store:   store,
		enqueue: enqueue,
		signer:  signer,
		maxCVs:  maxCVs,
	}
}

type cvRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	TemplateID string `json:"template_id" binding:"max=32"`
}

type cvResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListCVs 列出用户的全部简历配置。
func (h *CVHandler) ListCVs(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var rows []database.CV
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list cvs")
		return
	}

	items := make([]cvResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, cvResponse{
			ID:         r.ID,
			Title:      r.Title,
			TemplateID: r.TemplateID,
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

// CreateCV 新建一份简历配置，超过限额则提示升级。
// 历史遗留的模板标识在这里静默解析为 modern。
func (h *CVHandler) CreateCV(c *gin.Context) {
	var req cvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.CV{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count cvs")
		return
	}
	if h.maxCVs > 0 && count >= int64(h.maxCVs) {
		Forbidden(c, "cv limit reached")
		return
	}

	row := database.CV{
		UserID:     userID,
		Title:      sanitizePlainText(req.Title),
		TemplateID: string(render.ParseCVTemplateID(req.TemplateID)),
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create cv")
		return
	}

	c.JSON(http.StatusCreated, cvResponse{
		ID:         row.ID,
		Title:      row.Title,
		TemplateID: row.TemplateID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	})
}

// UpdateCV 更新标题或模板选择。
func (h *CVHandler) UpdateCV(c *gin.Context) {
	var req cvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	row, err := h.cvForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondItemError(c, err, "cv")
		return
	}

	updates := map[string]any{
		"title":       sanitizePlainText(req.Title),
		"template_id": string(render.ParseCVTemplateID(req.TemplateID)),
	}
	if err := h.db.WithContext(c.Request.Context()).Model(row).Updates(updates).Error; err != nil {
		Internal(c, "failed to update cv")
		return
	}

	c.Status(http.StatusOK)
}

// DeleteCV 删除一份简历配置。
func (h *CVHandler) DeleteCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		respondItemError(c, err, "cv")
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&database.CV{})
	if result.Error != nil {
		Internal(c, "failed to delete cv")
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "cv not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// PreviewCV 用当前数据即时渲染指定模板，返回完整 HTML 页面。
// 未知模板标识不报错，回落到 modern。
func (h *CVHandler) PreviewCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	locale := h.resolveLocale(ctx, c.Query("lang"), userID)
	templateID := render.ParseCVTemplateID(c.Query("template"))

	props, err := h.store.LoadCVProps(ctx, userID, locale)
	if err != nil {
		Internal(c, "failed to load cv data")
		return
	}

	body, err := render.RenderCV(templateID, props)
	if err != nil {
		Internal(c, "failed to render cv")
		return
	}
	page, err := render.WrapPage(props.Profile.Name, body, locale, props.Theme)
	if err != nil {
		Internal(c, "failed to render page")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// ExportCV 将 PDF 导出任务入队并立即返回 202。
func (h *CVHandler) ExportCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	row, err := h.cvForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondItemError(c, err, "cv")
		return
	}

	ctx := c.Request.Context()
	locale := h.resolveLocale(ctx, c.Query("lang"), userID)

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewCVExportTask(row.ID, string(locale), correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.enqueue.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue cv export")
		return
	}

	if err := h.db.WithContext(ctx).Model(row).Update("status", "exporting").Error; err != nil {
		Internal(c, "failed to mark cv exporting")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "cv export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成已导出 PDF 的预签名下载链接。
func (h *CVHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	row, err := h.cvForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondItemError(c, err, "cv")
		return
	}

	if row.PdfKey == "" {
		Conflict(c, "pdf not ready")
		return
	}

	filename := sanitizePlainText(row.Title)
	if filename == "" {
		filename = "cv"
	}
	params := map[string]string{
		"response-content-disposition": `attachment; filename="` + filename + `.pdf"`,
	}
	signedURL, err := h.signer.GeneratePresignedURLWithParams(c.Request.Context(), row.PdfKey, 5*time.Minute, params)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func (h *CVHandler) cvForUser(ctx context.Context, idParam string, userID uint) (*database.CV, error) {
	id, err := parseItemID(idParam)
	if err != nil {
		return nil, err
	}

	var row database.CV
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// resolveLocale 依次尝试 query 参数和用户偏好，都没有时用默认语言。
func (h *CVHandler) resolveLocale(ctx context.Context, lang string, userID uint) render.Locale {
	if locale, ok := render.ParseLocale(lang); ok {
		return locale
	}

	var user database.User
	if err := h.db.WithContext(ctx).Select("id", "locale").First(&user, userID).Error; err == nil {
		if locale := render.Locale(user.Locale); locale.Valid() {
			return locale
		}
	}
	return render.DefaultLocale
}
