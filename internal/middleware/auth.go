package middleware

import (
	"context"
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/util"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// 认证中间件写入 gin 上下文的键
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	ContextKeyToken    = "token"
)

// TokenBlacklist 提供令牌撤销查询，由 UserService 实现
type TokenBlacklist interface {
	IsTokenBlacklisted(token string) bool
}

// AuthMiddleware 校验 Bearer 令牌并把解码出的身份放入上下文。
// 缺少令牌返回 401，签名无效或已过期返回 403
func AuthMiddleware(blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
			c.Abort()
			return
		}

		if blacklist != nil && blacklist.IsTokenBlacklisted(parts[1]) {
			errors.HandleError(c, errors.New(errors.ErrInvalidToken, "令牌已被撤销"))
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1])
		if err != nil {
			if util.IsTokenExpired(err) {
				errors.HandleError(c, errors.Wrap(errors.ErrTokenExpired, "令牌已过期", err))
			} else {
				errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "无效的令牌", err))
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyToken, parts[1])

		c.Next()
	}
}
