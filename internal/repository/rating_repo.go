package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store_rating_v1_202608/internal/model"
)

// ==================== RatingRepository 评分仓库 ====================

// RatingWithAuthor 评分 + 评分人展示名（店主看板用）
type RatingWithAuthor struct {
	ID         int64     `json:"id"`
	StoreID    int64     `json:"store_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	UpdatedAt  time.Time `json:"updated_at"`
	AuthorName string    `json:"author_name"`
}

// RatingRepository 评分仓库接口
type RatingRepository interface {
	// Upsert 原子写入：不存在则插入，存在则覆盖 rating/comment 并刷新 updated_at。
	// 以 (store_id, user_id) 唯一索引为冲突键，在数据库层一条语句完成，
	// 并发提交同一组合时由存储层串行化，后提交者胜出
	Upsert(ctx context.Context, rating *model.Rating) error
	GetByStoreAndUser(ctx context.Context, storeID, userID int64) (*model.Rating, error)
	ListByStore(ctx context.Context, storeID int64) ([]RatingWithAuthor, error)
	// AverageForStore 实时聚合，无任何缓存；无评分时 average 为无效值（非 0）
	AverageForStore(ctx context.Context, storeID int64) (sql.NullFloat64, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// ==================== 实现 ====================

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓库
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert 插入或覆盖评分
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	// INSERT ... ON CONFLICT (store_id, user_id) DO UPDATE SET ...
	// excluded.updated_at 即本次写入时间，覆盖路径同样会刷新
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rating", "comment", "updated_at",
		}),
	}).Create(rating).Error
}

// GetByStoreAndUser 查询某用户对某店铺的评分，不存在返回 nil
func (r *ratingRepository) GetByStoreAndUser(ctx context.Context, storeID, userID int64) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByStore 店铺的全部评分，按更新时间倒序，带上评分人姓名
// 对 users 只做只读联查，不做任何变更
func (r *ratingRepository) ListByStore(ctx context.Context, storeID int64) ([]RatingWithAuthor, error) {
	var rows []RatingWithAuthor
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("ratings.id, ratings.store_id, ratings.user_id, ratings.rating, ratings.comment, ratings.updated_at, users.name AS author_name").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AverageForStore 店铺平均分与评分数
// 空集时 average.Valid == false，调用方据此输出 "无评分" 而不是 0
func (r *ratingRepository) AverageForStore(ctx context.Context, storeID int64) (sql.NullFloat64, int64, error) {
	var result struct {
		Average sql.NullFloat64
		Total   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("AVG(rating) AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&result).Error
	if err != nil {
		return sql.NullFloat64{}, 0, err
	}
	return result.Average, result.Total, nil
}

// CountSince 指定时间之后提交/更新的评分数（统计任务用）
func (r *ratingRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("updated_at >= ?", since).
		Count(&count).Error
	return count, err
}
