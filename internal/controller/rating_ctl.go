package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"store_rating_v1_202608/internal/api/dto"
	"store_rating_v1_202608/internal/middleware"
	"store_rating_v1_202608/internal/service"
)

// ==================== RatingController 评分控制器 ====================

// RatingController 评分控制器
type RatingController struct {
	ratingService *service.RatingService
}

// NewRatingController 创建评分控制器
func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// Rate 提交或覆盖评分
// @Summary 提交评分（同店铺重复提交即覆盖）
// @Tags Rating
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitRatingRequest true "评分内容"
// @Success 200 {object} dto.SubmitRatingResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /rating/rate [post]
func (c *RatingController) Rate(ctx *gin.Context) {
	var req dto.SubmitRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	// 评分人身份只认 Token，请求体不收 user_id
	resp, err := c.ratingService.SubmitOrUpdateRating(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if resp.Created {
		respondCreated(ctx, "评分提交成功", resp)
		return
	}
	respondOK(ctx, "评分已更新", resp)
}

// AuditTrail 店铺评分审计日志
// @Summary 店铺最近的评分审计日志（管理员）
// @Tags Rating
// @Produce json
// @Security BearerAuth
// @Param store_id query int true "店铺 ID"
// @Param limit query int false "条数上限，默认 50"
// @Success 200 {object} dto.RatingAuditResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /rating/get-audit-trail [get]
func (c *RatingController) AuditTrail(ctx *gin.Context) {
	storeID, err := strconv.ParseInt(ctx.Query("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		respondBadRequest(ctx, "store_id 参数无效")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	resp, err := c.ratingService.GetAuditTrail(ctx.Request.Context(), storeID, limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", resp)
}
