package store

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

// StoreHandler 处理与商店相关的HTTP请求
type StoreHandler struct {
	storeService service.StoreServiceInterface
}

// NewStoreHandler 创建一个新的 StoreHandler 实例
func NewStoreHandler(storeService service.StoreServiceInterface) *StoreHandler {
	return &StoreHandler{storeService}
}

// storeRequest 是创建和更新商店共用的请求体
type storeRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CreateStore 处理创建商店请求，店主为当前认证用户
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Logger.Warn("创建商店失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Store name and address are required", err))
		return
	}

	store := &model.Store{
		UserID:      c.GetInt(middleware.ContextKeyUserID),
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
		Email:       req.Email,
		Description: req.Description,
		Category:    req.Category,
	}

	if err := h.storeService.CreateStore(store); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{
		"store_id": store.ID,
	}, "Store created successfully")
}

// ListStores 返回全部商店（公开接口）
func (h *StoreHandler) ListStores(c *gin.Context) {
	stores, err := h.storeService.GetStores()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"stores": stores}, "")
}

// GetStore 返回商店详情和实时聚合评分（公开接口）
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的商店ID", err))
		return
	}

	store, stats, err := h.storeService.GetStoreByID(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"store":          store,
		"average_rating": stats.AverageRating,
		"review_count":   stats.ReviewCount,
	}, "")
}

// UpdateStore 处理更新商店请求，只有店主本人能更新
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的商店ID", err))
		return
	}

	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Store name and address are required", err))
		return
	}

	store := &model.Store{
		ID:          id,
		UserID:      c.GetInt(middleware.ContextKeyUserID),
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
		Email:       req.Email,
		Description: req.Description,
		Category:    req.Category,
	}

	if err := h.storeService.UpdateStore(store); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "Store updated successfully")
}

// DeleteStore 处理删除商店请求，只有店主本人能删除
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的商店ID", err))
		return
	}

	userID := c.GetInt(middleware.ContextKeyUserID)
	if err := h.storeService.DeleteStore(id, userID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "Store deleted successfully")
}
