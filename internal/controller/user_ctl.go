package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/middleware"
	"store_rating_v1_202608/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 用户控制器（管理员接口 + 个人信息）
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Router /user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	info, err := c.userService.GetUser(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	respondOK(ctx, "ok", info)
}

// ==================== 用户管理（管理员） ====================

// CreateUser 创建用户
// @Summary 创建用户（可指定 admin/owner/user 角色）
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "用户信息"
// @Success 201 {object} dto.UserInfo
// @Failure 400 {object} map[string]interface{}
// @Router /user/create-user [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	info, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondCreated(ctx, "用户创建成功", info)
}

// GetUser 查询用户
// @Summary 根据 ID 查询用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} dto.UserInfo
// @Failure 404 {object} map[string]interface{}
// @Router /user/get-user/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		respondBadRequest(ctx, "用户 ID 无效")
		return
	}

	info, err := c.userService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", info)
}

// ListUsers 用户列表
// @Summary 用户列表（支持关键词/角色筛选与分页）
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "关键词"
// @Param role query string false "角色"
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.UserListResponse
// @Router /user/get-all-users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var req dto.UserListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.userService.ListUsers(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", resp)
}
