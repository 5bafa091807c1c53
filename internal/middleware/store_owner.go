package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"store_rating_v1_202608/internal/model"
	"store_rating_v1_202608/internal/repository"
)

// RequireStoreOwner 店主权限校验中间件
// 要求请求携带 store_id 查询参数，且当前用户是该店铺的店主；管理员放行。
// 必须挂在 JWTAuth 之后
func RequireStoreOwner(storeRepo repository.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
		if err != nil || storeID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "store_id 参数无效",
			})
			c.Abort()
			return
		}

		store, err := storeRepo.GetByID(c.Request.Context(), storeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "店铺查询失败",
			})
			c.Abort()
			return
		}
		if store == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "店铺不存在",
			})
			c.Abort()
			return
		}

		role := GetUserRole(c)
		if role != model.UserRoleAdmin && store.OwnerID != GetUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "仅店主可访问本店铺数据",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
