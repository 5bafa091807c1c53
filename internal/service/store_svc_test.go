package service

import (
	"context"
	"errors"
	"testing"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"
)

type storeTestEnv struct {
	svc     *StoreService
	ratings repository.RatingRepository
	ownerID int64
	userID  int64
}

func newStoreTestEnv(t *testing.T) *storeTestEnv {
	t.Helper()
	db := setupServiceTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	owner := &model.User{Name: "店主甲", Email: "owner@example.com", Password: "x", Role: model.UserRoleOwner, Status: model.UserStatusActive}
	user := &model.User{Name: "用户乙", Email: "rater@example.com", Password: "x", Role: model.UserRoleUser, Status: model.UserStatusActive}
	if err := userRepo.Create(ctx, owner); err != nil {
		t.Fatalf("创建店主失败: %v", err)
	}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	return &storeTestEnv{
		svc:     NewStoreService(repository.NewStoreRepository(db), userRepo),
		ratings: repository.NewRatingRepository(db),
		ownerID: owner.ID,
		userID:  user.ID,
	}
}

func TestStoreService_CreateStore(t *testing.T) {
	env := newStoreTestEnv(t)

	info, err := env.svc.CreateStore(context.Background(), &dto.CreateStoreRequest{
		Name:    "新店",
		Address: "新街 2 号",
		OwnerID: env.ownerID,
	})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}
	if info.ID == 0 || info.OwnerID != env.ownerID {
		t.Fatalf("店铺信息不符: %+v", info)
	}
	// 新店铺没有评分，平均分必须是空而不是 0
	if info.Average != nil {
		t.Fatalf("新店铺平均分应为空, got %v", *info.Average)
	}
}

func TestStoreService_CreateStoreOwnerNotFound(t *testing.T) {
	env := newStoreTestEnv(t)

	_, err := env.svc.CreateStore(context.Background(), &dto.CreateStoreRequest{
		Name:    "无主店",
		Address: "无",
		OwnerID: 9999,
	})
	if !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("店主不存在应返回 ErrOwnerNotFound, got %v", err)
	}
}

func TestStoreService_CreateStoreOwnerWrongRole(t *testing.T) {
	env := newStoreTestEnv(t)

	// 普通用户不能被指定为店主
	_, err := env.svc.CreateStore(context.Background(), &dto.CreateStoreRequest{
		Name:    "越权店",
		Address: "无",
		OwnerID: env.userID,
	})
	if !errors.Is(err, ErrNotAnOwner) {
		t.Fatalf("非 owner 角色应返回 ErrNotAnOwner, got %v", err)
	}
}

func TestStoreService_GetAllStoresWithAverages(t *testing.T) {
	env := newStoreTestEnv(t)
	ctx := context.Background()

	rated, err := env.svc.CreateStore(ctx, &dto.CreateStoreRequest{Name: "热门店", Address: "闹市 1 号", OwnerID: env.ownerID})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}
	unrated, err := env.svc.CreateStore(ctx, &dto.CreateStoreRequest{Name: "冷清店", Address: "僻巷 3 号", OwnerID: env.ownerID})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}

	if err := env.ratings.Upsert(ctx, &model.Rating{StoreID: rated.ID, UserID: env.userID, Value: 4}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	resp, err := env.svc.GetAllStores(ctx, &dto.StoreListRequest{})
	if err != nil {
		t.Fatalf("GetAllStores() error = %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("应有 2 家店铺, got %d", resp.Total)
	}

	byID := map[int64]*dto.StoreInfo{}
	for _, info := range resp.List {
		byID[info.ID] = info
	}

	ratedInfo := byID[rated.ID]
	if ratedInfo.Average == nil || *ratedInfo.Average != 4.0 || ratedInfo.RatingsCount != 1 {
		t.Errorf("有评分店铺应为 avg=4.0 count=1, got %+v", ratedInfo)
	}
	unratedInfo := byID[unrated.ID]
	if unratedInfo.Average != nil || unratedInfo.RatingsCount != 0 {
		t.Errorf("无评分店铺应为 avg=nil count=0, got %+v", unratedInfo)
	}
}

func TestStoreService_GetStoreNotFound(t *testing.T) {
	env := newStoreTestEnv(t)

	_, err := env.svc.GetStore(context.Background(), 9999)
	if !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("未知店铺应返回 ErrStoreNotFound, got %v", err)
	}
}
