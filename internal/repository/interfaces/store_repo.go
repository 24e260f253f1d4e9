package interfaces

import "store-rating-backend/internal/model"

// StoreRepository 接口定义了商店仓库应该实现的方法。
// UpdateOwned 和 DeleteOwned 以 (id AND user_id) 为条件执行，
// 返回受影响的行数，0 行表示资源不存在或调用者不是店主。
type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(id int) (*model.Store, error)
	FindAll() ([]*model.Store, error)
	UpdateOwned(store *model.Store) (int64, error)
	DeleteOwned(id, userID int) (int64, error)
}
