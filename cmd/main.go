package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"store_rating_v1_202608/internal/controller"
	"store_rating_v1_202608/internal/middleware"
	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"
	"store_rating_v1_202608/internal/router"
	"store_rating_v1_202608/internal/service"
	"store_rating_v1_202608/internal/task"
	"store_rating_v1_202608/pkg/database"
)

// @title Store Rating API
// @version 1.0
// @description 店铺评分系统后端接口文档
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 初始化 JWT 配置
	initJWT()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, deps.Repos.Store)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User   repository.UserRepository
	Store  repository.StoreRepository
	Rating repository.RatingRepository
	Audit  repository.RatingAuditLogRepository
}

// Services 服务集合
type Services struct {
	User   *service.UserService
	Store  *service.StoreService
	Rating *service.RatingService
}

// ==================== 初始化函数 ====================

// initJWT 从环境变量装配 JWT 配置
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	cfg.SecretKey = getEnv("JWT_SECRET", cfg.SecretKey)
	cfg.Issuer = getEnv("JWT_ISSUER", cfg.Issuer)
	if hours, err := strconv.Atoi(getEnv("JWT_ACCESS_TTL_HOURS", "")); err == nil && hours > 0 {
		cfg.AccessTokenTTL = time.Duration(hours) * time.Hour
	}
	middleware.SetJWTConfig(cfg)
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=store_rating port=5432 sslmode=disable TimeZone=Asia/Shanghai")

	db := database.InitDB(dsn,
		// 账户
		&model.User{},
		// 店铺
		&model.Store{},
		// 评分（含 (store_id, user_id) 组合唯一索引）
		&model.Rating{},
		// 审计
		&model.RatingAuditLog{},
	)

	// 注册审计回调，自动填充 CreatedBy/UpdatedBy
	middleware.RegisterAuditCallbacks(db)

	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:   repository.NewUserRepository(db),
		Store:  repository.NewStoreRepository(db),
		Rating: repository.NewRatingRepository(db),
		Audit:  repository.NewRatingAuditLogRepository(db),
	}

	// -------- 业务服务 --------
	services := &Services{
		User:   service.NewUserService(repos.User),
		Store:  service.NewStoreService(repos.Store, repos.User),
		Rating: service.NewRatingService(repos.Rating, repos.Store, repos.Audit),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:   controller.NewAuthController(services.User),
		User:   controller.NewUserController(services.User),
		Store:  controller.NewStoreController(services.Store, services.Rating),
		Rating: controller.NewRatingController(services.Rating),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	retention := task.NewRetentionTask(deps.Repos.Rating, deps.Repos.Audit)
	retention.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
