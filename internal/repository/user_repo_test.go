package repository

import (
	"context"
	"testing"

	"store_rating_v1_202608/internal/model"
)

func TestUserRepo_CreateNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{
		Name:     "张三",
		Email:    "  Zhang.San@Example.COM ",
		Password: "hash",
		Role:     model.UserRoleUser,
		Status:   model.UserStatusActive,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.Email != "zhang.san@example.com" {
		t.Fatalf("邮箱应统一小写去空白, got %q", user.Email)
	}
}

func TestUserRepo_GetByEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "李四", Email: "li.si@example.com", Password: "hash", Role: model.UserRoleUser, Status: model.UserStatusActive}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByEmail(ctx, "LI.SI@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("大小写不同的邮箱应命中同一用户, got %+v", got)
	}

	exists, err := repo.ExistsByEmail(ctx, "Li.Si@Example.Com")
	if err != nil {
		t.Fatalf("ExistsByEmail() error = %v", err)
	}
	if !exists {
		t.Fatal("ExistsByEmail 应对大小写不敏感")
	}
}

func TestUserRepo_GetByEmailNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got != nil {
		t.Fatalf("不存在的邮箱应返回 nil, got %+v", got)
	}
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "王五", Email: "wang.wu@example.com", Password: "old-hash", Role: model.UserRoleUser, Status: model.UserStatusActive}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Password != "new-hash" {
		t.Fatalf("密码哈希未更新, got %q", got.Password)
	}
}

func TestUserRepo_ListFilterByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := []*model.User{
		{Name: "管理员", Email: "admin@example.com", Password: "x", Role: model.UserRoleAdmin, Status: model.UserStatusActive},
		{Name: "店主", Email: "owner@example.com", Password: "x", Role: model.UserRoleOwner, Status: model.UserStatusActive},
		{Name: "用户", Email: "user@example.com", Password: "x", Role: model.UserRoleUser, Status: model.UserStatusActive},
	}
	for _, u := range users {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	list, total, err := repo.List(ctx, UserFilter{Role: string(model.UserRoleOwner)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Role != model.UserRoleOwner {
		t.Fatalf("角色筛选结果不符, total=%d list=%+v", total, list)
	}

	_, total, err = repo.List(ctx, UserFilter{Keyword: "example.com"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Fatalf("关键词筛选 total 应为 3, got %d", total)
	}
}
