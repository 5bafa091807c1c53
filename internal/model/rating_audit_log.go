package model

import "gorm.io/datatypes"

// ==================== 审计动作 ====================

const (
	RatingAuditActionCreated = "created" // 首次评分
	RatingAuditActionUpdated = "updated" // 覆盖已有评分
)

// ==================== RatingAuditLog 评分审计日志 ====================

// RatingAuditLog 评分审计日志，只追加不修改
// 记录每次评分提交的前后值与原始请求体，保留期满后由定时任务物理删除
type RatingAuditLog struct {
	BaseModel
	RequestID string         `gorm:"type:varchar(64);index" json:"request_id"`
	UserID    int64          `gorm:"not null;index" json:"user_id"`
	StoreID   int64          `gorm:"not null;index" json:"store_id"`
	Action    string         `gorm:"type:varchar(20);not null" json:"action"`
	OldValue  int            `json:"old_value"` // created 时为 0
	NewValue  int            `gorm:"not null" json:"new_value"`
	Payload   datatypes.JSON `json:"payload"`
}

// TableName 表名
func (RatingAuditLog) TableName() string {
	return "rating_audit_logs"
}
