package model

import "time"

// ==================== 用户角色 ====================

// UserRole 用户角色，封闭枚举
// 任何取值不在列表内的角色一律视为非法，不做降级兜底
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // 管理员：用户/店铺管理
	UserRoleOwner UserRole = "owner" // 店主：查看本店评分看板
	UserRoleUser  UserRole = "user"  // 普通用户：提交评分
)

// IsValid 角色是否合法
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleOwner, UserRoleUser:
		return true
	}
	return false
}

// ==================== 用户状态 ====================

// UserStatus 用户状态
type UserStatus int

const (
	UserStatusDisabled UserStatus = 0 // 禁用
	UserStatusActive   UserStatus = 1 // 正常
)

// ==================== User 用户 ====================

// User 用户
// Email 全局唯一（入库前统一小写），Password 只存 bcrypt 哈希
type User struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Email       string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:varchar(200);not null" json:"-"`
	Address     string     `gorm:"type:varchar(400)" json:"address"`
	Role        UserRole   `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	Status      UserStatus `gorm:"not null;default:1" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// 关联
	Stores []Store `gorm:"foreignKey:OwnerID" json:"stores,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}
