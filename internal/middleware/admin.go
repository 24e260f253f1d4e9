package middleware

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminMiddleware 确保只有管理员可以访问管理后台路由，
// 角色直接取自令牌解码结果
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		if role != model.RoleAdmin {
			util.Logger.Warn("非管理员访问管理接口",
				zap.Int("user_id", c.GetInt(ContextKeyUserID)),
				zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.New(errors.ErrForbidden, "需要管理员权限"))
			c.Abort()
			return
		}
		c.Next()
	}
}
