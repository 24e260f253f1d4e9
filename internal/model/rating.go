package model

import "time"

// Rating 结构体表示评分模型，user_id 为评分人
type Rating struct {
	ID        int       `json:"id"`
	StoreID   int       `json:"store_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5 的整数
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// 联查字段，不落库
	UserName  string `json:"user_name,omitempty"`
	StoreName string `json:"store_name,omitempty"`
}
