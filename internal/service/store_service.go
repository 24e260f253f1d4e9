package service

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/repository/interfaces"
	"store-rating-backend/internal/util"

	"go.uber.org/zap"
)

// StoreService 处理与商店相关的业务逻辑
type StoreService struct {
	storeRepo  interfaces.StoreRepository
	ratingRepo interfaces.RatingRepository
}

// NewStoreService 创建一个新的 StoreService 实例
func NewStoreService(storeRepo interfaces.StoreRepository, ratingRepo interfaces.RatingRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, ratingRepo: ratingRepo}
}

// CreateStore 创建商店，店主固定为当前认证用户
func (s *StoreService) CreateStore(store *model.Store) error {
	if store.Name == "" || store.Address == "" {
		return errors.New(errors.ErrValidation, "Store name and address are required")
	}

	if err := s.storeRepo.Create(store); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建商店失败", err)
	}
	return nil
}

// GetStores 返回全部商店（公开接口）
func (s *StoreService) GetStores() ([]*model.Store, error) {
	stores, err := s.storeRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询商店列表失败", err)
	}
	return stores, nil
}

// GetStoreByID 返回商店详情和实时计算的聚合评分。
// 聚合每次读取时扫描该商店的评分行得出，和并发写入之间
// 没有原子性保证
func (s *StoreService) GetStoreByID(id int) (*model.Store, *model.StoreStats, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDatabase, "查询商店失败", err)
	}
	if store == nil {
		return nil, nil, errors.New(errors.ErrStoreNotFound, "Store not found")
	}

	ratings, err := s.ratingRepo.FindByStore(id)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDatabase, "查询商店评分失败", err)
	}
	stats := Aggregate(ratings)

	return store, &stats, nil
}

// UpdateStore 更新商店。只有店主本人能改：更新语句带
// user_id 条件，0 行受影响统一报"未找到"，不区分不存在
// 和无权限，避免泄露资源是否存在
func (s *StoreService) UpdateStore(store *model.Store) error {
	if store.Name == "" || store.Address == "" {
		return errors.New(errors.ErrValidation, "Store name and address are required")
	}

	affected, err := s.storeRepo.UpdateOwned(store)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新商店失败", err)
	}
	if affected == 0 {
		return errors.New(errors.ErrNotFoundOrNoPermission,
			"Store not found or you do not have permission to update this store")
	}

	util.Logger.Info("商店更新成功", zap.Int("store_id", store.ID))
	return nil
}

// DeleteStore 删除商店，所有权语义同 UpdateStore
func (s *StoreService) DeleteStore(id, userID int) error {
	affected, err := s.storeRepo.DeleteOwned(id, userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除商店失败", err)
	}
	if affected == 0 {
		return errors.New(errors.ErrNotFoundOrNoPermission,
			"Store not found or you do not have permission to delete this store")
	}

	util.Logger.Info("商店删除成功", zap.Int("store_id", id))
	return nil
}

// StoreServiceInterface 供处理器和测试使用的服务接口
type StoreServiceInterface interface {
	CreateStore(store *model.Store) error
	GetStores() ([]*model.Store, error)
	GetStoreByID(id int) (*model.Store, *model.StoreStats, error)
	UpdateStore(store *model.Store) error
	DeleteStore(id, userID int) error
}

var _ StoreServiceInterface = (*StoreService)(nil)
