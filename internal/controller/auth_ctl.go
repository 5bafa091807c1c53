package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/middleware"
	"store_rating_v1_202608/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	userService *service.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(userService *service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register 用户注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.UserInfo
// @Failure 400 {object} map[string]interface{}
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	info, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondCreated(ctx, "注册成功", info)
}

// Login 用户登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	// 单账号限流，防暴力破解
	limiter := middleware.GetLoginLimiter()
	if result := limiter.Check(req.Email); !result.Allowed {
		ctx.JSON(http.StatusTooManyRequests, gin.H{
			"code":    429,
			"message": middleware.RetryMessage(result.RetryAfter),
		})
		return
	}

	resp, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		limiter.RecordFailure(req.Email)
		respondServiceError(ctx, err)
		return
	}

	limiter.Reset(req.Email)
	respondOK(ctx, "登录成功", resp)
}

// Logout 用户登出
// @Summary 用户登出（注销当前 Token）
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.userService.Logout(middleware.GetUserClaims(ctx))
	respondOK(ctx, "已登出", nil)
}

// ResetPassword 密码重置
// @Summary 密码重置（需验证旧密码）
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResetPasswordRequest true "新旧密码"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/reset-password [put]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	if err := c.userService.ResetPassword(ctx.Request.Context(), middleware.GetUserID(ctx), &req); err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "密码重置成功", nil)
}
