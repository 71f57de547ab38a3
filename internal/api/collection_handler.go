package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"phFolio/internal/database"
)

// CollectionHandler 负责经历、项目、文章与精选视频四个列表的增删改查。
// 列表顺序由 position 字段决定，渲染层按该顺序消费有界前缀。
type CollectionHandler struct {
	db *gorm.DB
}

func NewCollectionHandler(db *gorm.DB) *CollectionHandler {
	return &CollectionHandler{db: db}
}

var errInvalidItemID = errors.New("invalid item id")

func parseItemID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidItemID
	}
	return uint(id), nil
}

// nextPosition 返回列表尾部的下一个位置值。
func nextPosition(ctx context.Context, db *gorm.DB, model any, userID uint) (int, error) {
	var max sql.NullInt64
	if err := db.WithContext(ctx).Model(model).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

func respondItemError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, errInvalidItemID):
		BadRequest(c, "invalid "+what+" id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, what+" not found")
	default:
		Internal(c, "failed to query "+what)
	}
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Company     string `json:"company" binding:"max=255"`
	Description string `json:"description"`
	Period      string `json:"period" binding:"max=128"`
	Position    *int   `json:"position"`
}

type experienceResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Period      string `json:"period"`
	Position    int    `json:"position"`
}

// ListExperiences 按展示顺序返回全部经历。
func (h *CollectionHandler) ListExperiences(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var rows []database.Experience
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list experiences")
		return
	}

	items := make([]experienceResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, experienceResponse{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company,
			Description: r.Description,
			Period:      r.Period,
			Position:    r.Position,
		})
	}
	c.JSON(http.StatusOK, items)
}

// CreateExperience 在列表尾部追加一条经历。
func (h *CollectionHandler) CreateExperience(c *gin.Context) {
	var req experienceRequest
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
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := nextPosition(ctx, h.db, &database.Experience{}, userID)
		if err != nil {
			Internal(c, "failed to compute position")
			return
		}
		position = next
	}

	row := database.Experience{
		UserID:      userID,
		Title:       sanitizePlainText(req.Title),
		Company:     sanitizePlainText(req.Company),
		Description: sanitizeRichText(req.Description),
		Period:      sanitizePlainText(req.Period),
		Position:    position,
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create experience")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": row.ID})
}

// UpdateExperience 覆盖一条经历。
func (h *CollectionHandler) UpdateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		respondItemError(c, err, "experience")
		return
	}

	ctx := c.Request.Context()
	var row database.Experience
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		respondItemError(c, err, "experience")
		return
	}

	updates := map[string]any{
		"title":       sanitizePlainText(req.Title),
		"company":     sanitizePlainText(req.Company),
		"description": sanitizeRichText(req.Description),
		"period":      sanitizePlainText(req.Period),
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		Internal(c, "failed to update experience")
		return
	}

	c.Status(http.StatusOK)
}

// DeleteExperience 删除一条经历。
func (h *CollectionHandler) DeleteExperience(c *gin.Context) {
	h.deleteItem(c, &database.Experience{}, "experience")
}

type projectRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	LinkURL     string `json:"link_url" binding:"omitempty,url,max=512"`
	Position    *int   `json:"position"`
}

type projectResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url,omitempty"`
	Position    int    `json:"position"`
}

// ListProjects 按展示顺序返回全部项目。
func (h *CollectionHandler) ListProjects(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var rows []database.Project
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list projects")
		return
	}

	items := make([]projectResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, projectResponse{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			LinkURL:     r.LinkURL,
			Position:    r.Position,
		})
	}
	c.JSON(http.StatusOK, items)
}

// CreateProject 在列表尾部追加一个项目。项目描述是必填字段。
func (h *CollectionHandler) CreateProject(c *gin.Context) {
	var req projectRequest
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
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := nextPosition(ctx, h.db, &database.Project{}, userID)
		if err != nil {
			Internal(c, "failed to compute position")
			return
		}
		position = next
	}

	row := database.Project{
		UserID:      userID,
		Title:       sanitizePlainText(req.Title),
		Description: sanitizeRichText(req.Description),
		LinkURL:     req.LinkURL,
		Position:    position,
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": row.ID})
}

// UpdateProject 覆盖一个项目。
func (h *CollectionHandler) UpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		respondItemError(c, err, "project")
		return
	}

	ctx := c.Request.Context()
	var row database.Project
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		respondItemError(c, err, "project")
		return
	}

	updates := map[string]any{
		"title":       sanitizePlainText(req.Title),
		"description": sanitizeRichText(req.Description),
		"link_url":    req.LinkURL,
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		Internal(c, "failed to update project")
		return
	}

	c.Status(http.StatusOK)
}

// DeleteProject 删除一个项目。
func (h *CollectionHandler) DeleteProject(c *gin.Context) {
	h.deleteItem(c, &database.Project{}, "project")
}

type articleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Summary     string `json:"summary"`
	Publication string `json:"publication" binding:"max=255"`
	Position    *int   `json:"position"`
}

type articleResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Publication string `json:"publication,omitempty"`
	Position    int    `json:"position"`
}

// ListArticles 按展示顺序返回全部文章。
func (h *CollectionHandler) ListArticles(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var rows []database.Article
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list articles")
		return
	}

	items := make([]articleResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, articleResponse{
			ID:          r.ID,
			Title:       r.Title,
			Summary:     r.Summary,
			Publication: r.Publication,
			Position:    r.Position,
		})
	}
	c.JSON(http.StatusOK, items)
}

// CreateArticle 在列表尾部追加一篇文章。
func (h *CollectionHandler) CreateArticle(c *gin.Context) {
	var req articleRequest
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
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := nextPosition(ctx, h.db, &database.Article{}, userID)
		if err != nil {
			Internal(c, "failed to compute position")
			return
		}
		position = next
	}

	row := database.Article{
		UserID:      userID,
		Title:       sanitizePlainText(req.Title),
		Summary:     sanitizeRichText(req.Summary),
		Publication: sanitizePlainText(req.Publication),
		Position:    position,
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create article")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": row.ID})
}

// UpdateArticle 覆盖一篇文章。
func (h *CollectionHandler) UpdateArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		respondItemError(c, err, "article")
		return
	}

	ctx := c.Request.Context()
	var row database.Article
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		respondItemError(c, err, "article")
		return
	}

	updates := map[string]any{
		"title":       sanitizePlainText(req.Title),
		"summary":     sanitizeRichText(req.Summary),
		"publication": sanitizePlainText(req.Publication),
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		Internal(c, "failed to update article")
		return
	}

	c.Status(http.StatusOK)
}

// DeleteArticle 删除一篇文章。
func (h *CollectionHandler) DeleteArticle(c *gin.Context) {
	h.deleteItem(c, &database.Article{}, "article")
}

type videoRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Platform    string `json:"platform" binding:"max=64"`
	Position    *int   `json:"position"`
}

type videoResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform,omitempty"`
	Position    int    `json:"position"`
}

// ListVideos 按展示顺序返回全部精选视频。
func (h *CollectionHandler) ListVideos(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var rows []database.FeaturedVideo
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list videos")
		return
	}

	items := make([]videoResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, videoResponse{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Platform:    r.Platform,
			Position:    r.Position,
		})
	}
	c.JSON(http.StatusOK, items)
}

// CreateVideo 在列表尾部追加一个精选视频。
func (h *CollectionHandler) CreateVideo(c *gin.Context) {
	var req videoRequest
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
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := nextPosition(ctx, h.db, &database.FeaturedVideo{}, userID)
		if err != nil {
			Internal(c, "failed to compute position")
			return
		}
		position = next
	}

	row := database.FeaturedVideo{
		UserID:      userID,
		Title:       sanitizePlainText(req.Title),
		Description: sanitizeRichText(req.Description),
		Platform:    sanitizePlainText(req.Platform),
		Position:    position,
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create video")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": row.ID})
}

// UpdateVideo 覆盖一个精选视频。
func (h *CollectionHandler) UpdateVideo(c *gin.Context) {
	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		respondItemError(c, err, "video")
		return
	}

	ctx := c.Request.Context()
	var row database.FeaturedVideo
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		respondItemError(c, err, "video")
		return
	}

	updates := map[string]any{
		"title":       sanitizePlainText(req.Title),
		"description": sanitizeRichText(req.Description),
		"platform":    sanitizePlainText(req.Platform),
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		Internal(c, "failed to update video")
		return
	}

	c.Status(http.StatusOK)
}

// DeleteVideo 删除一个精选视频。
func (h *CollectionHandler) DeleteVideo(c *gin.Context) {
	h.deleteItem(c, &database.FeaturedVideo{}, "video")
}

// deleteItem 按 ID 删除当前用户名下的一条记录。
func (h *CollectionHandler) deleteItem(c *gin.Context, model any, what string) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		respondItemError(c, err, what)
		return
	}

	ctx := c.Request.Context()
	result := h.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if result.Error != nil {
		Internal(c, "failed to delete "+what)
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, what+" not found")
		return
	}

	c.Status(http.StatusNoContent)
}
