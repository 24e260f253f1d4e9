package model

import "time"

// Store 结构体表示商店模型，user_id 为店主
type Store struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`

	// OwnerName 来自与 users 表的联查，不落库
	OwnerName string `json:"owner_name,omitempty"`
}

// StoreStats 商店的聚合评分，读取时实时计算，不持久化
type StoreStats struct {
	AverageRating *float64 `json:"average_rating"` // 无评分时为 null
	ReviewCount   int      `json:"review_count"`
}
