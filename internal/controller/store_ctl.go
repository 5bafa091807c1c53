package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/service"
)

// ==================== StoreController 店铺控制器 ====================

// StoreController 店铺控制器
type StoreController struct {
	storeService  *service.StoreService
	ratingService *service.RatingService
}

// NewStoreController 创建店铺控制器
func NewStoreController(storeService *service.StoreService, ratingService *service.RatingService) *StoreController {
	return &StoreController{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

// CreateStore 创建店铺
// @Summary 创建店铺（管理员）
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreRequest true "店铺信息"
// @Success 201 {object} dto.StoreInfo
// @Failure 400 {object} map[string]interface{}
// @Router /store/create-store [post]
func (c *StoreController) CreateStore(ctx *gin.Context) {
	var req dto.CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	info, err := c.storeService.CreateStore(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondCreated(ctx, "店铺创建成功", info)
}

// GetAllStores 店铺列表
// @Summary 店铺列表（管理员），逐店带实时平均分
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "关键词"
// @Param owner_id query int false "店主 ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.StoreListResponse
// @Router /store/get-all-stores [get]
func (c *StoreController) GetAllStores(ctx *gin.Context) {
	var req dto.StoreListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.storeService.GetAllStores(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", resp)
}

// GetRatingsForStore 店铺评分看板
// @Summary 店铺的全部评分与实时平均分（店主）
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Param store_id query int true "店铺 ID"
// @Success 200 {object} dto.StoreRatingsResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /store/get-ratings-for-store [get]
func (c *StoreController) GetRatingsForStore(ctx *gin.Context) {
	// store_id 的格式与归属校验已由 RequireStoreOwner 完成
	storeID, err := strconv.ParseInt(ctx.Query("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		respondBadRequest(ctx, "store_id 参数无效")
		return
	}

	resp, err := c.ratingService.GetRatingsForStore(ctx.Request.Context(), storeID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", resp)
}
