package service

import (
	"math"
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/repository/interfaces"
	"store-rating-backend/internal/util"

	"go.uber.org/zap"
)

// RatingService 处理与评分相关的业务逻辑
type RatingService struct {
	ratingRepo interfaces.RatingRepository
}

// NewRatingService 创建一个新的 RatingService 实例
func NewRatingService(ratingRepo interfaces.RatingRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo}
}

// CreateRating 创建评分。任何认证用户都可以给任何商店评分，
// 包括自己的商店；同一用户重复评分不做拦截
func (s *RatingService) CreateRating(rating *model.Rating) error {
	if rating.StoreID == 0 {
		return errors.New(errors.ErrValidation, "Store ID and rating are required")
	}
	if rating.Rating < 1 || rating.Rating > 5 {
		return errors.New(errors.ErrValidation, "Rating must be between 1 and 5")
	}

	if err := s.ratingRepo.Create(rating); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建评分失败", err)
	}
	return nil
}

// GetStoreRatings 返回某商店的全部评分（公开接口，未聚合），
// 前端自行计算平均分
func (s *RatingService) GetStoreRatings(storeID int) ([]*model.Rating, error) {
	ratings, err := s.ratingRepo.FindByStore(storeID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询商店评分失败", err)
	}
	return ratings, nil
}

// GetAllRatings 返回全部评分，供管理后台使用
func (s *RatingService) GetAllRatings() ([]*model.Rating, error) {
	ratings, err := s.ratingRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询全部评分失败", err)
	}
	return ratings, nil
}

// GetUserRatings 返回当前用户提交的全部评分
func (s *RatingService) GetUserRatings(userID int) ([]*model.Rating, error) {
	ratings, err := s.ratingRepo.FindByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户评分失败", err)
	}
	return ratings, nil
}

// UpdateRating 更新评分。只有原评分人能改，0 行受影响
// 统一报"未找到"
func (s *RatingService) UpdateRating(rating *model.Rating) error {
	if rating.Rating < 1 || rating.Rating > 5 {
		return errors.New(errors.ErrValidation, "Rating must be between 1 and 5")
	}

	affected, err := s.ratingRepo.UpdateOwned(rating)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新评分失败", err)
	}
	if affected == 0 {
		return errors.New(errors.ErrNotFoundOrNoPermission,
			"Rating not found or you do not have permission to update this rating")
	}

	util.Logger.Info("评分更新成功", zap.Int("rating_id", rating.ID))
	return nil
}

// DeleteRating 删除评分，所有权语义同 UpdateRating
func (s *RatingService) DeleteRating(id, userID int) error {
	affected, err := s.ratingRepo.DeleteOwned(id, userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除评分失败", err)
	}
	if affected == 0 {
		return errors.New(errors.ErrNotFoundOrNoPermission,
			"Rating not found or you do not have permission to delete this rating")
	}

	util.Logger.Info("评分删除成功", zap.Int("rating_id", id))
	return nil
}

// Aggregate 计算一组评分的平均分（保留两位小数）和条数。
// 没有评分时平均分为 nil，条数为 0
func Aggregate(ratings []*model.Rating) model.StoreStats {
	stats := model.StoreStats{ReviewCount: len(ratings)}
	if len(ratings) == 0 {
		return stats
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*100) / 100
	stats.AverageRating = &avg
	return stats
}

// RatingServiceInterface 供处理器和测试使用的服务接口
type RatingServiceInterface interface {
	CreateRating(rating *model.Rating) error
	GetStoreRatings(storeID int) ([]*model.Rating, error)
	GetAllRatings() ([]*model.Rating, error)
	GetUserRatings(userID int) ([]*model.Rating, error)
	UpdateRating(rating *model.Rating) error
	DeleteRating(id, userID int) error
}

var _ RatingServiceInterface = (*RatingService)(nil)
