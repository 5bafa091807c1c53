package model

// ==================== Store 店铺 ====================

// Store 店铺
// 平均分不落库，每次查询由 SQL 对 ratings 实时聚合
type Store struct {
	BaseModel
	AuditMixin
	Name    string `gorm:"type:varchar(200);not null;index" json:"name"`
	Address string `gorm:"type:varchar(400);not null" json:"address"`
	OwnerID int64  `gorm:"not null;index" json:"owner_id"`

	// 关联
	Owner   User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Ratings []Rating `gorm:"foreignKey:StoreID" json:"ratings,omitempty"`
}

// TableName 表名
func (Store) TableName() string {
	return "stores"
}
