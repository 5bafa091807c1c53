package model

// 评分取值范围
const (
	RatingMin = 1
	RatingMax = 5
)

// ==================== Rating 评分 ====================

// Rating 评分
// (store_id, user_id) 组合唯一：同一用户对同一店铺至多一条记录，
// 重复提交走 ON CONFLICT 原地覆盖，唯一性由该索引在数据库层保证
type Rating struct {
	BaseModel
	StoreID int64  `gorm:"not null;uniqueIndex:idx_ratings_store_user" json:"store_id"`
	UserID  int64  `gorm:"not null;uniqueIndex:idx_ratings_store_user" json:"user_id"`
	Value   int    `gorm:"column:rating;not null" json:"rating"`
	Comment string `gorm:"type:varchar(1024)" json:"comment"`

	// 关联
	Store Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 表名
func (Rating) TableName() string {
	return "ratings"
}
