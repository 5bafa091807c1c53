package dto

import "time"

// ==================== 店铺管理（管理员） ====================

// CreateStoreRequest 创建店铺请求
type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=200"`
	Address string `json:"address" binding:"required,max=400"`
	OwnerID int64  `json:"owner_id" binding:"required,gt=0"`
}

// ==================== 店铺信息 ====================

// StoreInfo 店铺信息
// Average 为空表示该店铺尚无评分（与 0 分严格区分），
// 数值按展示约定保留一位小数，仅在这里舍入，绝不回写存储
type StoreInfo struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	OwnerID      int64     `json:"owner_id"`
	Average      *float64  `json:"average"`
	RatingsCount int64     `json:"ratings_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ==================== 店铺列表 ====================

// StoreListRequest 店铺列表请求
type StoreListRequest struct {
	Keyword  string `form:"keyword"`
	OwnerID  int64  `form:"owner_id"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// StoreListResponse 店铺列表响应
type StoreListResponse struct {
	List  []*StoreInfo `json:"list"`
	Total int64        `json:"total"`
}
