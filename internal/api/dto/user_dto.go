package dto

import "time"

// ==================== 用户信息 ====================

// UserInfo 用户信息
type UserInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Role        string    `json:"role"`
	Status      int       `json:"status"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ==================== 用户管理（管理员） ====================

// CreateUserRequest 创建用户请求（可指定任意角色）
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Address  string `json:"address" binding:"required,max=400"`
	Role     string `json:"role" binding:"required,oneof=admin owner user"`
}

// ==================== 用户列表 ====================

// UserListRequest 用户列表请求
type UserListRequest struct {
	Keyword  string `form:"keyword"`
	Role     string `form:"role" binding:"omitempty,oneof=admin owner user"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// UserListResponse 用户列表响应
type UserListResponse struct {
	List  []*UserInfo `json:"list"`
	Total int64       `json:"total"`
}
