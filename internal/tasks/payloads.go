package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeCVExport         = "cv:export"
	TypePortfolioPublish = "portfolio:publish"
)

// CVExportPayload 描述导出一份简历 PDF 所需的最小信息。
type CVExportPayload struct {
	CVID          uint   `json:"cv_id"`
	Locale        string `json:"locale"`
	CorrelationID string `json:"correlation_id"`
}

// NewCVExportTask 构造一个新的简历导出任务。
func NewCVExportTask(cvID uint, locale, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CVExportPayload{
		CVID:          cvID,
		Locale:        locale,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCVExport, payload), nil
}

// PortfolioPublishPayload 描述发布作品集快照所需的信息。
type PortfolioPublishPayload struct {
	UserID        uint   `json:"user_id"`
	RecordID      uint   `json:"record_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPortfolioPublishTask 构造一个新的作品集发布任务。
func NewPortfolioPublishTask(userID, recordID uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PortfolioPublishPayload{
		UserID:        userID,
		RecordID:      recordID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePortfolioPublish, payload), nil
}
