package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_v1_202608/internal/service"
)

// ==================== 统一响应 ====================

// respondOK 成功响应
func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// respondCreated 创建成功响应
func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// respondBadRequest 参数错误响应
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": message,
	})
}

// respondServiceError 业务错误映射为 HTTP 状态
// 校验类 -> 400，凭证类 -> 401，资源不存在 -> 404，其余视为存储故障 -> 500
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoreIDRequired),
		errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrNotAnOwner),
		errors.Is(err, service.ErrInvalidOldPassword):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserDisabled):
		c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": err.Error()})

	case errors.Is(err, service.ErrStoreNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOwnerNotFound),
		errors.Is(err, service.ErrRatingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": err.Error()})

	default:
		// 存储层故障：记日志，对外不透出细节，不在服务内重试
		log.Printf("[HTTP] 内部错误 %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "服务内部错误"})
	}
}
