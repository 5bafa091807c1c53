package service

import (
	"context"
	"errors"
	"math"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"
)

// ==================== StoreService 店铺服务 ====================

// StoreService 店铺服务
type StoreService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, userRepo: userRepo}
}

// ==================== 店铺管理（管理员） ====================

// CreateStore 创建店铺
// owner 必须是已存在的 role=owner 用户
func (s *StoreService) CreateStore(ctx context.Context, req *dto.CreateStoreRequest) (*dto.StoreInfo, error) {
	owner, err := s.userRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrOwnerNotFound
	}
	if owner.Role != model.UserRoleOwner {
		return nil, ErrNotAnOwner
	}

	store := &model.Store{
		Name:    req.Name,
		Address: req.Address,
		OwnerID: owner.ID,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	// 新店铺没有评分，Average 留空
	return &dto.StoreInfo{
		ID:        store.ID,
		Name:      store.Name,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
	}, nil
}

// GetAllStores 店铺列表，逐店带出实时平均分
// 平均分由 SQL 聚合现算，不读任何缓存字段
func (s *StoreService) GetAllStores(ctx context.Context, req *dto.StoreListRequest) (*dto.StoreListResponse, error) {
	rows, total, err := s.storeRepo.ListWithAverages(ctx, repository.StoreFilter{
		Keyword:  req.Keyword,
		OwnerID:  req.OwnerID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*dto.StoreInfo, 0, len(rows))
	for i := range rows {
		row := rows[i]
		info := &dto.StoreInfo{
			ID:           row.ID,
			Name:         row.Name,
			Address:      row.Address,
			OwnerID:      row.OwnerID,
			RatingsCount: row.RatingsCount,
			CreatedAt:    row.CreatedAt,
		}
		// COUNT 为 0 时 AVG 为 NULL，这里保持 nil 表示 "无评分"
		if row.Average.Valid {
			rounded := math.Round(row.Average.Float64*10) / 10
			info.Average = &rounded
		}
		list = append(list, info)
	}

	return &dto.StoreListResponse{List: list, Total: total}, nil
}

// GetStore 店铺详情
func (s *StoreService) GetStore(ctx context.Context, storeID int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// ==================== 错误定义 ====================

var (
	ErrStoreNotFound = errors.New("店铺不存在")
	ErrOwnerNotFound = errors.New("店主用户不存在")
	ErrNotAnOwner    = errors.New("指定用户不是店主角色")
)
