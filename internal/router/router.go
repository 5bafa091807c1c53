package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"store_rating_v1_202608/internal/controller"
	"store_rating_v1_202608/internal/middleware"
	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"

	_ "store_rating_v1_202608/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth   *controller.AuthController
	User   *controller.UserController
	Store  *controller.StoreController
	Rating *controller.RatingController
}

// SetupRouter 注册所有路由
// storeRepo 供店主归属校验中间件使用
func SetupRouter(ctls *Controllers, storeRepo repository.StoreRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/login", ctls.Auth.Login)

			// 以下需要登录
			auth.POST("/logout", middleware.JWTAuth(), ctls.Auth.Logout)
			auth.PUT("/reset-password", middleware.JWTAuth(), ctls.Auth.ResetPassword)
		}

		// user 用户管理组
		user := api.Group("/user", middleware.JWTAuth())
		{
			user.GET("/profile", ctls.User.GetProfile)

			// 管理员接口
			admin := user.Group("", middleware.RequireRole(model.UserRoleAdmin))
			{
				admin.GET("/get-all-users", ctls.User.ListUsers)
				admin.GET("/get-user/:id", ctls.User.GetUser)
				admin.POST("/create-user", ctls.User.CreateUser)
			}
		}

		// store 店铺组
		store := api.Group("/store", middleware.JWTAuth())
		{
			// 管理员：建店、全量列表（带实时平均分）
			store.POST("/create-store",
				middleware.RequireRole(model.UserRoleAdmin),
				middleware.AuditContext(),
				ctls.Store.CreateStore)
			store.GET("/get-all-stores",
				middleware.RequireRole(model.UserRoleAdmin),
				ctls.Store.GetAllStores)

			// 店主：本店评分看板（归属校验，管理员放行）
			store.GET("/get-ratings-for-store",
				middleware.RequireStoreOwner(storeRepo),
				ctls.Store.GetRatingsForStore)
		}

		// rating 评分组
		rating := api.Group("/rating", middleware.JWTAuth(), middleware.AuditContext())
		{
			rating.POST("/rate", ctls.Rating.Rate)

			// 管理员：评分审计日志
			rating.GET("/get-audit-trail",
				middleware.RequireRole(model.UserRoleAdmin),
				ctls.Rating.AuditTrail)
		}
	}

	return r
}
