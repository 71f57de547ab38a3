package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"phFolio/internal/access"
	"phFolio/internal/database"
)

// SubscriptionHandler 暴露订阅读取接口，并接收计费方的内部同步。
// 订阅数据对本服务只读，写入仅来自内部同步端点。
type SubscriptionHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSubscriptionHandler(db *gorm.DB) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, now: time.Now}
}

type subscriptionResponse struct {
	Status       string     `json:"status,omitempty"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
	PeriodEndsAt *time.Time `json:"period_ends_at,omitempty"`
	GraceDays    *int       `json:"grace_days,omitempty"`
	AccessState  string     `json:"access_state"`
}

// GetSubscription 返回当前用户的订阅与访问状态分类。
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var row database.Subscription
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, subscriptionResponse{
				AccessState: string(access.Classify(nil, h.now())),
			})
			return
		}
		Internal(c, "failed to load subscription")
		return
	}

	sub := &access.Subscription{
		Status:       row.Status,
		TrialEndsAt:  row.TrialEndsAt,
		PeriodEndsAt: row.PeriodEndsAt,
		GraceDays:    row.GraceDays,
	}
	c.JSON(http.StatusOK, subscriptionResponse{
		Status:       row.Status,
		TrialEndsAt:  row.TrialEndsAt,
		PeriodEndsAt: row.PeriodEndsAt,
		GraceDays:    row.GraceDays,
		AccessState:  string(access.Classify(sub, h.now())),
	})
}

type subscriptionSyncRequest struct {
	Status       string     `json:"status" binding:"required,max=32"`
	TrialEndsAt  *time.Time `json:"trial_ends_at"`
	PeriodEndsAt *time.Time `json:"period_ends_at"`
	GraceDays    *int       `json:"grace_days"`
}

// SyncSubscription 由计费方通过内部密钥调用，整体覆盖订阅记录。
// 幂等:同样的负载重复同步结果一致。
func (h *SubscriptionHandler) SyncSubscription(c *gin.Context) {
	userID, err := parseItemID(c.Param("userID"))
	if err != nil {
		BadRequest(c, "invalid user id")
		return
	}

	var req subscriptionSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.GraceDays != nil && *req.GraceDays < 0 {
		BadRequest(c, "grace_days must not be negative")
		return
	}

	ctx := c.Request.Context()
	var user database.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "user not found")
			return
		}
		Internal(c, "failed to load user")
		return
	}

	updates := map[string]any{
		"status":         req.Status,
		"trial_ends_at":  req.TrialEndsAt,
		"period_ends_at": req.PeriodEndsAt,
		"grace_days":     req.GraceDays,
	}

	var row database.Subscription
	err = h.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		create := map[string]any{"user_id": userID}
		for k, v := range updates {
			create[k] = v
		}
		if err := h.db.WithContext(ctx).Model(&database.Subscription{}).Create(create).Error; err != nil {
			Internal(c, "failed to create subscription")
			return
		}
	case err != nil:
		Internal(c, "failed to load subscription")
		return
	default:
		if err := h.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
			Internal(c, "failed to update subscription")
			return
		}
	}

	sub := &access.Subscription{
		Status:       req.Status,
		TrialEndsAt:  req.TrialEndsAt,
		PeriodEndsAt: req.PeriodEndsAt,
		GraceDays:    req.GraceDays,
	}
	c.JSON(http.StatusOK, gin.H{
		"access_state": string(access.Classify(sub, h.now())),
	})
}
