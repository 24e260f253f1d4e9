package rating

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/middleware"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/service"
	"store-rating-backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RatingHandler 处理与评分相关的HTTP请求
type RatingHandler struct {
	ratingService service.RatingServiceInterface
}

// NewRatingHandler 创建一个新的 RatingHandler 实例
func NewRatingHandler(ratingService service.RatingServiceInterface) *RatingHandler {
	return &RatingHandler{ratingService}
}

// CreateRating 处理创建评分请求，评分人为当前认证用户
func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req struct {
		StoreID int    `json:"store_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		util.Logger.Warn("创建评分失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Store ID and rating are required", err))
		return
	}

	rating := &model.Rating{
		StoreID: req.StoreID,
		UserID:  c.GetInt(middleware.ContextKeyUserID),
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := h.ratingService.CreateRating(rating); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{
		"rating_id": rating.ID,
	}, "Rating added successfully")
}

// ListStoreRatings 返回某商店的全部评分（公开接口，未聚合）
func (h *RatingHandler) ListStoreRatings(c *gin.Context) {
	storeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的商店ID", err))
		return
	}

	ratings, err := h.ratingService.GetStoreRatings(storeID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"ratings": ratings}, "")
}

// ListAllRatings 返回全部评分（管理后台视图）
func (h *RatingHandler) ListAllRatings(c *gin.Context) {
	ratings, err := h.ratingService.GetAllRatings()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"ratings": ratings}, "")
}

// ListMyRatings 返回当前用户提交的全部评分
func (h *RatingHandler) ListMyRatings(c *gin.Context) {
	userID := c.GetInt(middleware.ContextKeyUserID)

	ratings, err := h.ratingService.GetUserRatings(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"ratings": ratings}, "")
}

// UpdateRating 处理更新评分请求，只有原评分人能更新
func (h *RatingHandler) UpdateRating(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的评分ID", err))
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Rating must be between 1 and 5", err))
		return
	}

	rating := &model.Rating{
		ID:      id,
		UserID:  c.GetInt(middleware.ContextKeyUserID),
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := h.ratingService.UpdateRating(rating); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "Rating updated successfully")
}

// DeleteRating 处理删除评分请求，只有原评分人能删除
func (h *RatingHandler) DeleteRating(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的评分ID", err))
		return
	}

	userID := c.GetInt(middleware.ContextKeyUserID)
	if err := h.ratingService.DeleteRating(id, userID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "Rating deleted successfully")
}
