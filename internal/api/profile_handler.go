package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"phFolio/internal/database"
	"phFolio/internal/render"
)

// ProfileHandler 负责档案、主题与语言偏好的读写。
type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type educationPayload struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartYear   string `json:"start_year"`
	EndYear     string `json:"end_year"`
	Period      string `json:"period"`
}

type profileRequest struct {
	Name        string             `json:"name" binding:"max=255"`
	Headline    string             `json:"headline" binding:"max=255"`
	Bio         string             `json:"bio"`
	Location    string             `json:"location" binding:"max=255"`
	Email       string             `json:"email" binding:"omitempty,email"`
	Phone       string             `json:"phone" binding:"max=64"`
	ShowPhoto   *bool              `json:"show_photo"`
	Skills      []string           `json:"skills"`
	Education   []educationPayload `json:"education"`
	SocialLinks map[string]string  `json:"social_links"`
}

type profileResponse struct {
	Name        string             `json:"name"`
	Headline    string             `json:"headline"`
	Bio         string             `json:"bio"`
	Location    string             `json:"location"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	PhotoKey    string             `json:"photo_key,omitempty"`
	ShowPhoto   *bool              `json:"show_photo,omitempty"`
	Skills      []string           `json:"skills,omitempty"`
	Education   []educationPayload `json:"education,omitempty"`
	SocialLinks map[string]string  `json:"social_links,omitempty"`
}

// GetProfile 返回当前用户的档案，未填写时返回空档案。
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var row database.Profile
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, profileResponse{})
			return
		}
		Internal(c, "failed to load profile")
		return
	}

	resp := profileResponse{
		Name:      row.Name,
		Headline:  row.Headline,
		Bio:       row.Bio,
		Location:  row.Location,
		Email:     row.Email,
		Phone:     row.Phone,
		PhotoKey:  row.PhotoKey,
		ShowPhoto: row.ShowPhoto,
	}
	if len(row.Skills) > 0 {
		_ = json.Unmarshal(row.Skills, &resp.Skills)
	}
	if len(row.Education) > 0 {
		_ = json.Unmarshal(row.Education, &resp.Education)
	}
	if len(row.SocialLinks) > 0 {
		_ = json.Unmarshal(row.SocialLinks, &resp.SocialLinks)
	}

	c.JSON(http.StatusOK, resp)
}

// UpsertProfile 整体覆盖当前用户的档案。
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s = sanitizePlainText(s); s != "" {
			skills = append(skills, s)
		}
	}
	education := make([]educationPayload, 0, len(req.Education))
	for _, e := range req.Education {
		education = append(education, educationPayload{
			Institution: sanitizePlainText(e.Institution),
			Degree:      sanitizePlainText(e.Degree),
			StartYear:   sanitizePlainText(e.StartYear),
			EndYear:     sanitizePlainText(e.EndYear),
			Period:      sanitizePlainText(e.Period),
		})
	}
	socialLinks := make(map[string]string, len(req.SocialLinks))
	for k, v := range req.SocialLinks {
		k = strings.ToLower(sanitizePlainText(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		socialLinks[k] = v
	}

	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		Internal(c, "failed to encode skills")
		return
	}
	educationJSON, err := json.Marshal(education)
	if err != nil {
		Internal(c, "failed to encode education")
		return
	}
	socialJSON, err := json.Marshal(socialLinks)
	if err != nil {
		Internal(c, "failed to encode social links")
		return
	}

	ctx := c.Request.Context()
	updates := map[string]any{
		"name":         sanitizePlainText(req.Name),
		"headline":     sanitizePlainText(req.Headline),
		"bio":          sanitizeRichText(req.Bio),
		"location":     sanitizePlainText(req.Location),
		"email":        strings.TrimSpace(req.Email),
		"phone":        sanitizePlainText(req.Phone),
		"show_photo":   req.ShowPhoto,
		"skills":       datatypes.JSON(skillsJSON),
		"education":    datatypes.JSON(educationJSON),
		"social_links": datatypes.JSON(socialJSON),
	}

	var row database.Profile
	err = h.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := h.db.WithContext(ctx).Model(&database.Profile{}).Create(map[string]any{
			"user_id":      userID,
			"name":         updates["name"],
			"headline":     updates["headline"],
			"bio":          updates["bio"],
			"location":     updates["location"],
			"email":        updates["email"],
			"phone":        updates["phone"],
			"show_photo":   updates["show_photo"],
			"skills":       updates["skills"],
			"education":    updates["education"],
			"social_links": updates["social_links"],
		}).Error; err != nil {
			Internal(c, "failed to create profile")
			return
		}
	case err != nil:
		Internal(c, "failed to load profile")
		return
	default:
		if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
			Internal(c, "failed to update profile")
			return
		}
	}

	c.Status(http.StatusOK)
}

type localeRequest struct {
	Locale string `json:"locale" binding:"required"`
}

// UpdateLocale 更新界面语言偏好，仅接受受支持的语言。
// 写入幂等:同样的输入写两次结果相同。
func (h *ProfileHandler) UpdateLocale(c *gin.Context) {
	var req localeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	locale := render.Locale(strings.ToLower(strings.TrimSpace(req.Locale)))
	if !locale.Valid() {
		BadRequest(c, "unsupported locale")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&database.User{}).
		Where("id = ?", userID).
		Update("locale", string(locale)).Error; err != nil {
		Internal(c, "failed to update locale")
		return
	}

	c.JSON(http.StatusOK, gin.H{"locale": string(locale)})
}

type themeRequest struct {
	PrimaryColor      string `json:"primary_color" binding:"max=32"`
	SecondaryColor    string `json:"secondary_color" binding:"max=32"`
	AccentColor       string `json:"accent_color" binding:"max=32"`
	BackgroundColor   string `json:"background_color" binding:"max=32"`
	FontFamily        string `json:"font_family" binding:"max=64"`
	Mode              string `json:"mode" binding:"max=16"`
	Layout            string `json:"layout" binding:"max=32"`
	PortfolioTemplate string `json:"portfolio_template" binding:"max=32"`
}

// UpsertTheme 整体覆盖用户主题。颜色字段允许为空，
// 渲染时由调色板解析器补默认值。
func (h *ProfileHandler) UpsertTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	portfolioTemplate := string(render.ParsePortfolioTemplateID(req.PortfolioTemplate))

	ctx := c.Request.Context()
	updates := map[string]any{
		"primary_color":      strings.TrimSpace(req.PrimaryColor),
		"secondary_color":    strings.TrimSpace(req.SecondaryColor),
		"accent_color":       strings.TrimSpace(req.AccentColor),
		"background_color":   strings.TrimSpace(req.BackgroundColor),
		"font_family":        sanitizePlainText(req.FontFamily),
		"mode":               strings.TrimSpace(req.Mode),
		"layout":             strings.TrimSpace(req.Layout),
		"portfolio_template": portfolioTemplate,
	}

	var row database.Theme
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		create := map[string]any{"user_id": userID}
		for k, v := range updates {
			create[k] = v
		}
		if err := h.db.WithContext(ctx).Model(&database.Theme{}).Create(create).Error; err != nil {
			Internal(c, "failed to create theme")
			return
		}
	case err != nil:
		Internal(c, "failed to load theme")
		return
	default:
		if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
			Internal(c, "failed to update theme")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"portfolio_template": portfolioTemplate})
}
