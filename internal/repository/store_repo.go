package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"store_rating_v1_202608/internal/model"
)

// ==================== StoreRepository 店铺仓库 ====================

// StoreWithRating 店铺 + 实时聚合出的平均分
// Average 来自 AVG(ratings.rating)，每次查询现算，绝不落库
type StoreWithRating struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	OwnerID      int64           `json:"owner_id"`
	CreatedAt    time.Time       `json:"created_at"`
	Average      sql.NullFloat64 `json:"-"`
	RatingsCount int64           `json:"ratings_count"`
}

// StoreFilter 店铺筛选条件
type StoreFilter struct {
	Keyword  string
	OwnerID  int64
	Page     int
	PageSize int
}

// StoreRepository 店铺仓库接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	ListWithAverages(ctx context.Context, filter StoreFilter) ([]StoreWithRating, int64, error)
}

// ==================== 实现 ====================

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create 创建店铺
func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// GetByID 根据 ID 获取店铺
func (r *storeRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// ListWithAverages 店铺列表，LEFT JOIN ratings 现算平均分与评分数
func (r *storeRepository) ListWithAverages(ctx context.Context, filter StoreFilter) ([]StoreWithRating, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Store{})

	// 关键词搜索
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		base = base.Where("stores.name LIKE ? OR stores.address LIKE ?", keyword, keyword)
	}

	// 店主筛选
	if filter.OwnerID > 0 {
		base = base.Where("stores.owner_id = ?", filter.OwnerID)
	}

	// 统计总数（不带 JOIN，避免 GROUP BY 干扰计数）
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	var rows []StoreWithRating
	err := base.
		Select("stores.id, stores.name, stores.address, stores.owner_id, stores.created_at, AVG(ratings.rating) AS average, COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id AND ratings.deleted_at IS NULL").
		Group("stores.id, stores.name, stores.address, stores.owner_id, stores.created_at").
		Order("stores.id DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Scan(&rows).Error

	return rows, total, err
}
