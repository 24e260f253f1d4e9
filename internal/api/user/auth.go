package user

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/middleware"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/service"
	"store-rating-backend/internal/util"
	"store-rating-backend/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Name     string `json:"name" binding:"required,user_name"`
		Username string `json:"username"`
		Email    string `json:"email" binding:"required"`
		Address  string `json:"address"`
		Password string `json:"password" binding:"required,strong_password"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		msg := validation.BindingErrorMessage(err, "Name, email, and password are required")
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, msg, err))
		return
	}

	user := &model.User{
		Name:     registerData.Name,
		Username: registerData.Username,
		Email:    registerData.Email,
		Address:  registerData.Address,
		Role:     registerData.Role,
	}

	if err := h.userService.Register(user, registerData.Password); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			if appErr.Code == errors.ErrUserExists {
				util.Logger.Warn("注册失败，邮箱或用户名已存在",
					zap.String("email", user.Email))
			}
			errors.HandleError(c, appErr)
			return
		}
		util.Logger.Error("注册失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "注册失败", err))
		return
	}

	errors.HandleCreated(c, gin.H{
		"user_id": user.ID,
	}, "User registered successfully")
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Email and password are required", err))
		return
	}

	user, err := h.userService.Login(loginData.Email, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, err := util.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "生成令牌失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}, "Logged in successfully")
}

// ChangePassword 处理修改密码请求
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.GetInt(middleware.ContextKeyUserID)

	var passwordData struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&passwordData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	err := h.userService.ChangePassword(userID,
		passwordData.CurrentPassword,
		passwordData.NewPassword,
		passwordData.ConfirmPassword)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "Password updated successfully")
}

// Logout 处理用户登出，把当前令牌加入黑名单
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextKeyToken)
	h.userService.Logout(token)
	errors.HandleSuccess(c, nil, "已成功登出")
}
