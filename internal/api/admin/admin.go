package admin

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/service"
	"store-rating-backend/internal/util"
	"store-rating-backend/internal/validation"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 处理管理后台的HTTP请求
type AdminHandler struct {
	adminService service.AdminServiceInterface
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(adminService service.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService}
}

// GetUsers 返回分页的用户列表
func (h *AdminHandler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := h.adminService.GetUsers(page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"users": users,
		"total": total,
		"page":  page,
	}, "")
}

// CreateUser 管理员创建用户，校验规则与注册一致
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,user_name"`
		Email    string `json:"email" binding:"required"`
		Address  string `json:"address"`
		Password string `json:"password" binding:"required,strong_password"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		msg := validation.BindingErrorMessage(err, "Name, email, and password are required")
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, msg, err))
		return
	}

	user := &model.User{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Role:    req.Role,
	}

	if err := h.adminService.CreateUser(user, req.Password); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{"user_id": user.ID}, "User created successfully")
}

// UpdateUserRole 更新用户角色
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的用户ID", err))
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	if err := h.adminService.UpdateUserRole(userID, req.Role); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("管理员更新了用户角色",
		zap.Int("user_id", userID),
		zap.String("role", req.Role))
	errors.HandleSuccess(c, nil, "角色更新成功")
}

// DeleteUser 删除用户，名下商店和评分级联删除
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的用户ID", err))
		return
	}

	if err := h.adminService.DeleteUser(userID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "用户已删除")
}
