package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"
)

// setupServiceTestDB 内存数据库（单连接，见 repository 测试的说明）
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&model.User{}, &model.Store{}, &model.Rating{}, &model.RatingAuditLog{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

// ratingTestEnv 评分服务测试环境
type ratingTestEnv struct {
	db      *gorm.DB
	svc     *RatingService
	storeID int64
	raterID int64
}

func newRatingTestEnv(t *testing.T) *ratingTestEnv {
	t.Helper()
	db := setupServiceTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)

	owner := &model.User{Name: "店主甲", Email: "owner@example.com", Password: "x", Role: model.UserRoleOwner, Status: model.UserStatusActive}
	rater := &model.User{Name: "用户乙", Email: "rater@example.com", Password: "x", Role: model.UserRoleUser, Status: model.UserStatusActive}
	if err := userRepo.Create(ctx, owner); err != nil {
		t.Fatalf("创建店主失败: %v", err)
	}
	if err := userRepo.Create(ctx, rater); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	store := &model.Store{Name: "测试店铺", Address: "测试路 1 号", OwnerID: owner.ID}
	if err := storeRepo.Create(ctx, store); err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}

	svc := NewRatingService(
		repository.NewRatingRepository(db),
		storeRepo,
		repository.NewRatingAuditLogRepository(db),
	)

	return &ratingTestEnv{db: db, svc: svc, storeID: store.ID, raterID: rater.ID}
}

func (e *ratingTestEnv) ratingRows(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.Rating{}).Count(&count).Error; err != nil {
		t.Fatalf("统计评分行数失败: %v", err)
	}
	return count
}

func TestSubmitOrUpdateRating_ValueOutOfRange(t *testing.T) {
	env := newRatingTestEnv(t)
	ctx := context.Background()

	for _, value := range []int{0, 6, -1, 100} {
		_, err := env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{
			StoreID: env.storeID,
			Rating:  value,
		})
		assert.ErrorIs(t, err, ErrRatingOutOfRange, "value=%d", value)
	}

	// 校验失败不得留下任何行
	assert.EqualValues(t, 0, env.ratingRows(t))
}

func TestSubmitOrUpdateRating_MissingStoreID(t *testing.T) {
	env := newRatingTestEnv(t)

	_, err := env.svc.SubmitOrUpdateRating(context.Background(), env.raterID, &dto.SubmitRatingRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrStoreIDRequired)
	assert.EqualValues(t, 0, env.ratingRows(t))
}

func TestSubmitOrUpdateRating_UnknownStore(t *testing.T) {
	env := newRatingTestEnv(t)

	_, err := env.svc.SubmitOrUpdateRating(context.Background(), env.raterID, &dto.SubmitRatingRequest{
		StoreID: 9999,
		Rating:  3,
	})
	assert.ErrorIs(t, err, ErrStoreNotFound)
	assert.EqualValues(t, 0, env.ratingRows(t))
}

func TestSubmitOrUpdateRating_EndToEnd(t *testing.T) {
	env := newRatingTestEnv(t)
	ctx := context.Background()

	// 首次提交 5 分
	resp, err := env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{
		StoreID: env.storeID,
		Rating:  5,
		Comment: "很好",
	})
	assert.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, 5, resp.Rating.Rating)

	average, count, err := env.svc.ComputeAverage(ctx, env.storeID)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)
	if assert.NotNil(t, average) {
		assert.Equal(t, 5.0, *average)
	}

	// 同一用户重复提交 3 分：覆盖而非追加，平均分是 3.0 而不是 (5+3)/2
	resp, err = env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{
		StoreID: env.storeID,
		Rating:  3,
		Comment: "一般",
	})
	assert.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, 3, resp.Rating.Rating)
	assert.Equal(t, "一般", resp.Rating.Comment)

	assert.EqualValues(t, 1, env.ratingRows(t))

	average, count, err = env.svc.ComputeAverage(ctx, env.storeID)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)
	if assert.NotNil(t, average) {
		assert.Equal(t, 3.0, *average)
	}
}

func TestSubmitOrUpdateRating_AppendsAuditLog(t *testing.T) {
	env := newRatingTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{StoreID: env.storeID, Rating: 5})
	assert.NoError(t, err)
	_, err = env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{StoreID: env.storeID, Rating: 2})
	assert.NoError(t, err)

	var entries []model.RatingAuditLog
	err = env.db.Order("id ASC").Find(&entries).Error
	assert.NoError(t, err)
	if assert.Len(t, entries, 2) {
		assert.Equal(t, model.RatingAuditActionCreated, entries[0].Action)
		assert.Equal(t, 5, entries[0].NewValue)

		assert.Equal(t, model.RatingAuditActionUpdated, entries[1].Action)
		assert.Equal(t, 5, entries[1].OldValue)
		assert.Equal(t, 2, entries[1].NewValue)
		assert.NotEmpty(t, entries[1].RequestID)
	}
}

func TestGetAuditTrail(t *testing.T) {
	env := newRatingTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{StoreID: env.storeID, Rating: 5})
	assert.NoError(t, err)
	_, err = env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{StoreID: env.storeID, Rating: 2})
	assert.NoError(t, err)

	resp, err := env.svc.GetAuditTrail(ctx, env.storeID, 0)
	assert.NoError(t, err)
	assert.Equal(t, env.storeID, resp.StoreID)
	if assert.Len(t, resp.Entries, 2) {
		// 新的在前
		assert.Equal(t, model.RatingAuditActionUpdated, resp.Entries[0].Action)
		assert.Equal(t, 5, resp.Entries[0].OldValue)
		assert.Equal(t, 2, resp.Entries[0].NewValue)
		assert.Equal(t, model.RatingAuditActionCreated, resp.Entries[1].Action)
	}

	// limit 生效
	resp, err = env.svc.GetAuditTrail(ctx, env.storeID, 1)
	assert.NoError(t, err)
	assert.Len(t, resp.Entries, 1)

	// 未知店铺
	_, err = env.svc.GetAuditTrail(ctx, 9999, 0)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestComputeAverage_NoRatings(t *testing.T) {
	env := newRatingTestEnv(t)

	average, count, err := env.svc.ComputeAverage(context.Background(), env.storeID)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, count)
	// 无评分必须是 "无数据"，不能是 0.0
	assert.Nil(t, average)
}

func TestComputeAverage_UnknownStore(t *testing.T) {
	env := newRatingTestEnv(t)

	_, _, err := env.svc.ComputeAverage(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestComputeAverage_RoundsToOneDecimal(t *testing.T) {
	env := newRatingTestEnv(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(env.db)
	for i, value := range []int{5, 4, 4} {
		user := &model.User{
			Name:   "评分人",
			Email:  string(rune('a'+i)) + "@example.com",
			Role:   model.UserRoleUser,
			Status: model.UserStatusActive,
		}
		user.Password = "x"
		assert.NoError(t, userRepo.Create(ctx, user))

		_, err := env.svc.SubmitOrUpdateRating(ctx, user.ID, &dto.SubmitRatingRequest{StoreID: env.storeID, Rating: value})
		assert.NoError(t, err)
	}

	// (5+4+4)/3 = 4.333... -> 展示口径 4.3
	average, count, err := env.svc.ComputeAverage(ctx, env.storeID)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, count)
	if assert.NotNil(t, average) {
		assert.Equal(t, 4.3, *average)
	}
}

func TestGetRatingsForStore(t *testing.T) {
	env := newRatingTestEnv(t)
	ctx := context.Background()

	// 店铺存在但无评分：空列表 + 空平均分，不是错误
	resp, err := env.svc.GetRatingsForStore(ctx, env.storeID)
	assert.NoError(t, err)
	assert.Empty(t, resp.Ratings)
	assert.Nil(t, resp.Average)
	assert.EqualValues(t, 0, resp.RatingsCount)

	_, err = env.svc.SubmitOrUpdateRating(ctx, env.raterID, &dto.SubmitRatingRequest{StoreID: env.storeID, Rating: 4, Comment: "不错"})
	assert.NoError(t, err)

	resp, err = env.svc.GetRatingsForStore(ctx, env.storeID)
	assert.NoError(t, err)
	assert.Equal(t, "测试店铺", resp.StoreName)
	assert.EqualValues(t, 1, resp.RatingsCount)
	if assert.Len(t, resp.Ratings, 1) {
		assert.Equal(t, "用户乙", resp.Ratings[0].AuthorName)
		assert.Equal(t, 4, resp.Ratings[0].Rating)
	}
	if assert.NotNil(t, resp.Average) {
		assert.Equal(t, 4.0, *resp.Average)
	}

	// 未知店铺：404 语义
	_, err = env.svc.GetRatingsForStore(ctx, 9999)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}
