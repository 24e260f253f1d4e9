package model

import "time"

// 用户角色常量
const (
	RoleNormalUser = "normal_user"
	RoleStoreOwner = "store_owner"
	RoleAdmin      = "admin"
)

// User 结构体表示用户模型
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
