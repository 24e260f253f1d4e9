package user

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserHandler 处理用户列表相关的HTTP请求
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{userService}
}

// ListUsers 返回用户列表（管理后台的用户表格用）。
// status 和 rating 字段不落库，这里按前端约定补默认值
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 100
	}

	users, err := h.userService.GetUsers(page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":      u.ID,
			"name":    u.Name,
			"email":   u.Email,
			"address": u.Address,
			"role":    u.Role,
			"status":  "active",
			"rating":  nil,
		})
	}

	errors.HandleSuccess(c, gin.H{"users": list}, "")
}
