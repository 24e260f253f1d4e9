package util

import (
	"errors"
	"store-rating-backend/config"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenClaims 是令牌解码后的身份信息
type TokenClaims struct {
	UserID   int
	Username string
	Role     string
}

// GenerateToken 签发携带 {id, username, role, exp} 的令牌，默认有效期1小时
func GenerateToken(userID int, username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(config.AppConfig.TokenExpiry).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// IsTokenExpired 判断校验错误是否由令牌过期引起
func IsTokenExpired(err error) bool {
	if verr, ok := err.(*jwt.ValidationError); ok {
		return verr.Errors&jwt.ValidationErrorExpired != 0
	}
	return false
}

// ValidateToken 校验签名和有效期，返回解码后的身份信息
func ValidateToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("无效的签名方法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}

	userID, ok := claims["id"].(float64)
	if !ok {
		return nil, errors.New("无效的用户ID")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID:   int(userID),
		Username: username,
		Role:     role,
	}, nil
}
