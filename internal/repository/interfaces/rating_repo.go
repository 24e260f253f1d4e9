package interfaces

import "store-rating-backend/internal/model"

// RatingRepository 接口定义了评分仓库应该实现的方法。
// 所有权语义与 StoreRepository 相同：0 行受影响表示
// 评分不存在或调用者不是原评分人。
type RatingRepository interface {
	Create(rating *model.Rating) error
	FindByStore(storeID int) ([]*model.Rating, error)
	FindAll() ([]*model.Rating, error)
	FindByUser(userID int) ([]*model.Rating, error)
	UpdateOwned(rating *model.Rating) (int64, error)
	DeleteOwned(id, userID int) (int64, error)
}
