package dto

import "time"

// ==================== 评分提交 ====================

// SubmitRatingRequest 评分提交请求
// 评分人身份取自认证上下文，请求体里不收 user_id
type SubmitRatingRequest struct {
	StoreID int64  `json:"store_id" binding:"required,gt=0"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=1024"`
}

// RatingInfo 评分信息（Upsert 后的最终状态）
type RatingInfo struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubmitRatingResponse 评分提交响应
type SubmitRatingResponse struct {
	Rating  *RatingInfo `json:"rating"`
	Created bool        `json:"created"` // true=首次评分, false=覆盖已有评分
}

// ==================== 店铺评分查询（店主） ====================

// RatingDetail 单条评分明细，含评分人姓名
type RatingDetail struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StoreRatingsResponse 店铺评分看板响应
// Average 为空表示无评分
type StoreRatingsResponse struct {
	StoreID      int64           `json:"store_id"`
	StoreName    string          `json:"store_name"`
	Average      *float64        `json:"average"`
	RatingsCount int64           `json:"ratings_count"`
	Ratings      []*RatingDetail `json:"ratings"`
}

// ==================== 评分审计（管理员） ====================

// RatingAuditInfo 单条审计日志
type RatingAuditInfo struct {
	ID        int64     `json:"id"`
	RequestID string    `json:"request_id"`
	UserID    int64     `json:"user_id"`
	StoreID   int64     `json:"store_id"`
	Action    string    `json:"action"`
	OldValue  int       `json:"old_value"`
	NewValue  int       `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingAuditResponse 店铺评分审计日志响应
type RatingAuditResponse struct {
	StoreID int64              `json:"store_id"`
	Entries []*RatingAuditInfo `json:"entries"`
}
