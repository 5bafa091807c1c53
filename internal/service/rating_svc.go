package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"
)

// ==================== RatingService 评分服务 ====================

// RatingService 评分服务
// 同一 (store_id, user_id) 组合至多一条评分；并发提交的唯一性
// 完全交给数据库的组合唯一索引 + 原子 Upsert，服务层不加锁
type RatingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	auditRepo  repository.RatingAuditLogRepository
}

// NewRatingService 创建评分服务
func NewRatingService(
	ratingRepo repository.RatingRepository,
	storeRepo repository.StoreRepository,
	auditRepo repository.RatingAuditLogRepository,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		auditRepo:  auditRepo,
	}
}

// ==================== 评分提交 ====================

// SubmitOrUpdateRating 提交或覆盖评分
// userID 来自认证上下文，绝不信任请求体里的身份字段。
// 首次提交插入新行；再次提交原地覆盖 rating/comment 并刷新 updated_at
func (s *RatingService) SubmitOrUpdateRating(ctx context.Context, userID int64, req *dto.SubmitRatingRequest) (*dto.SubmitRatingResponse, error) {
	// 入参校验（绑定层之外再兜一层，服务可被直接调用）
	if req.StoreID <= 0 {
		return nil, ErrStoreIDRequired
	}
	if req.Rating < model.RatingMin || req.Rating > model.RatingMax {
		return nil, ErrRatingOutOfRange
	}

	// 店铺必须存在，不给未知店铺悄悄挂孤儿评分
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	// 旧值只用于审计与 created 标记，唯一性不依赖这次读
	prev, err := s.ratingRepo.GetByStoreAndUser(ctx, req.StoreID, userID)
	if err != nil {
		return nil, err
	}

	// 原子 Upsert
	rating := &model.Rating{
		StoreID: req.StoreID,
		UserID:  userID,
		Value:   req.Rating,
		Comment: req.Comment,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	// 回读写入后的最终状态（覆盖路径下 Create 拿不到既有行的 ID/时间）
	current, err := s.ratingRepo.GetByStoreAndUser(ctx, req.StoreID, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrRatingNotFound
	}

	created := prev == nil
	s.appendAuditLog(ctx, userID, req, prev, created)

	return &dto.SubmitRatingResponse{
		Rating:  toRatingInfo(current),
		Created: created,
	}, nil
}

// appendAuditLog 追加评分审计日志
// 审计是附加动作，失败只记日志，不影响已提交的评分
func (s *RatingService) appendAuditLog(ctx context.Context, userID int64, req *dto.SubmitRatingRequest, prev *model.Rating, created bool) {
	action := model.RatingAuditActionUpdated
	oldValue := 0
	if created {
		action = model.RatingAuditActionCreated
	} else {
		oldValue = prev.Value
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Printf("[Rating] 审计 payload 序列化失败: %v", err)
		payload = nil
	}

	entry := &model.RatingAuditLog{
		RequestID: uuid.NewString(),
		UserID:    userID,
		StoreID:   req.StoreID,
		Action:    action,
		OldValue:  oldValue,
		NewValue:  req.Rating,
		Payload:   payload,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.Printf("[Rating] 审计日志写入失败 (store=%d user=%d): %v", req.StoreID, userID, err)
	}
}

// ==================== 店铺评分查询 ====================

// GetRatingsForStore 店铺评分看板：全部评分（含评分人姓名）+ 实时平均分
// 店铺存在但无评分时返回空列表与空平均分，不是错误
func (s *RatingService) GetRatingsForStore(ctx context.Context, storeID int64) (*dto.StoreRatingsResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	rows, err := s.ratingRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	average, count, err := s.ratingRepo.AverageForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StoreRatingsResponse{
		StoreID:      store.ID,
		StoreName:    store.Name,
		RatingsCount: count,
		Ratings:      make([]*dto.RatingDetail, 0, len(rows)),
	}
	if average.Valid {
		resp.Average = roundAverage(average.Float64)
	}

	for i := range rows {
		row := rows[i]
		resp.Ratings = append(resp.Ratings, &dto.RatingDetail{
			ID:         row.ID,
			UserID:     row.UserID,
			AuthorName: row.AuthorName,
			Rating:     row.Rating,
			Comment:    row.Comment,
			UpdatedAt:  row.UpdatedAt,
		})
	}

	return resp, nil
}

// ComputeAverage 店铺实时平均分
// 无评分时返回 nil（"无评分" 状态），绝不返回 0
func (s *RatingService) ComputeAverage(ctx context.Context, storeID int64) (*float64, int64, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	if store == nil {
		return nil, 0, ErrStoreNotFound
	}

	average, count, err := s.ratingRepo.AverageForStore(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	if !average.Valid {
		return nil, count, nil
	}
	return roundAverage(average.Float64), count, nil
}

// ==================== 评分审计查询 ====================

// GetAuditTrail 店铺最近的评分审计日志（管理员排查用），按时间倒序
func (s *RatingService) GetAuditTrail(ctx context.Context, storeID int64, limit int) (*dto.RatingAuditResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	entries, err := s.auditRepo.ListByStore(ctx, storeID, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.RatingAuditResponse{
		StoreID: store.ID,
		Entries: make([]*dto.RatingAuditInfo, 0, len(entries)),
	}
	for i := range entries {
		entry := entries[i]
		resp.Entries = append(resp.Entries, &dto.RatingAuditInfo{
			ID:        entry.ID,
			RequestID: entry.RequestID,
			UserID:    entry.UserID,
			StoreID:   entry.StoreID,
			Action:    entry.Action,
			OldValue:  entry.OldValue,
			NewValue:  entry.NewValue,
			CreatedAt: entry.CreatedAt,
		})
	}

	return resp, nil
}

// ==================== 工具函数 ====================

// roundAverage 展示口径：保留一位小数
// 只在出参这里舍入，存储与计算始终用原始浮点
func roundAverage(v float64) *float64 {
	rounded := math.Round(v*10) / 10
	return &rounded
}

// toRatingInfo 转换为 DTO
func toRatingInfo(rating *model.Rating) *dto.RatingInfo {
	return &dto.RatingInfo{
		ID:        rating.ID,
		StoreID:   rating.StoreID,
		UserID:    rating.UserID,
		Rating:    rating.Value,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrStoreIDRequired  = errors.New("store_id 不能为空")
	ErrRatingOutOfRange = errors.New("评分必须在 1 到 5 之间")
	ErrRatingNotFound   = errors.New("评分不存在")
)
