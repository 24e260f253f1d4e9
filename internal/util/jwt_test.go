package util

import (
	"store-rating-backend/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setupJWTConfig(expiry time.Duration) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenExpiry = expiry
}

func TestGenerateAndValidateToken(t *testing.T) {
	setupJWTConfig(time.Hour)

	tokenString, err := GenerateToken(42, "alice@example.com", "normal_user")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Username)
	assert.Equal(t, "normal_user", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	setupJWTConfig(time.Hour)

	tokenString, err := GenerateToken(1, "bob@example.com", "admin")
	assert.NoError(t, err)

	// 换密钥后原令牌必须失效
	config.AppConfig.JWTSecret = "another-secret"
	claims, err := ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	setupJWTConfig(-time.Minute)

	tokenString, err := GenerateToken(1, "bob@example.com", "admin")
	assert.NoError(t, err)

	claims, err := ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Empty(t *testing.T) {
	setupJWTConfig(time.Hour)

	claims, err := ValidateToken("")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	setupJWTConfig(time.Hour)

	claims, err := ValidateToken("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
