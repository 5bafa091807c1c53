package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"store_rating_v1_202608/internal/model"
)

// ==================== RatingAuditLogRepository 评分审计日志仓库 ====================

// RatingAuditLogRepository 审计日志仓库接口（只追加 + 定期清理）
type RatingAuditLogRepository interface {
	Append(ctx context.Context, entry *model.RatingAuditLog) error
	ListByStore(ctx context.Context, storeID int64, limit int) ([]model.RatingAuditLog, error)
	// DeleteBefore 物理删除指定时间之前的日志，返回删除行数
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 实现 ====================

type ratingAuditLogRepository struct {
	db *gorm.DB
}

// NewRatingAuditLogRepository 创建审计日志仓库
func NewRatingAuditLogRepository(db *gorm.DB) RatingAuditLogRepository {
	return &ratingAuditLogRepository{db: db}
}

// Append 追加一条审计日志
func (r *ratingAuditLogRepository) Append(ctx context.Context, entry *model.RatingAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByStore 某店铺最近的审计日志
func (r *ratingAuditLogRepository) ListByStore(ctx context.Context, storeID int64, limit int) ([]model.RatingAuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.RatingAuditLog
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// DeleteBefore 按保留期清理
func (r *ratingAuditLogRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	// 审计日志无需软删除，直接物理删除
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("created_at < ?", before).
		Delete(&model.RatingAuditLog{})
	return result.RowsAffected, result.Error
}
