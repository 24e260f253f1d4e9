package mysql

import (
	"database/sql"
	"fmt"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/util"

	"go.uber.org/zap"
)

// ratingRepository 实现了 RatingRepository 接口
type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository 创建一个新的 ratingRepository 实例
func NewRatingRepository(db *sql.DB) *ratingRepository {
	return &ratingRepository{db}
}

// Create 创建一条评分。这里不做 (user_id, store_id) 去重，
// 同一用户重复评分会插入多条记录
func (r *ratingRepository) Create(rating *model.Rating) error {
	query := `INSERT INTO ratings (store_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`
	result, err := r.db.Exec(query, rating.StoreID, rating.UserID, rating.Rating, rating.Comment)
	if err != nil {
		util.Logger.Error("创建评分失败", zap.Error(err),
			zap.Int("store_id", rating.StoreID),
			zap.Int("user_id", rating.UserID))
		return fmt.Errorf("failed to create rating: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rating.ID = int(id)
	util.Logger.Info("评分创建成功",
		zap.Int("rating_id", rating.ID),
		zap.Int("store_id", rating.StoreID))
	return nil
}

// FindByStore 返回某商店的全部评分并联查评分人姓名
func (r *ratingRepository) FindByStore(storeID int) ([]*model.Rating, error) {
	query := `
		SELECT r.id, r.store_id, r.user_id, r.rating, r.comment, r.created_at, u.name
		FROM ratings r
		JOIN users u ON r.user_id = u.id
		WHERE r.store_id = ?`

	rows, err := r.db.Query(query, storeID)
	if err != nil {
		util.Logger.Error("查询商店评分失败", zap.Error(err), zap.Int("store_id", storeID))
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()
	return scanRatings(rows, func(rating *model.Rating, extra *string) {
		rating.UserName = *extra
	})
}

// FindAll 返回全部评分（管理后台视图），按创建时间倒序
func (r *ratingRepository) FindAll() ([]*model.Rating, error) {
	query := `
		SELECT r.id, r.store_id, r.user_id, r.rating, r.comment, r.created_at,
		       u.name AS user_name, s.name AS store_name
		FROM ratings r
		JOIN users u ON r.user_id = u.id
		JOIN stores s ON r.store_id = s.id
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		util.Logger.Error("查询全部评分失败", zap.Error(err))
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*model.Rating
	for rows.Next() {
		var rating model.Rating
		err := rows.Scan(&rating.ID, &rating.StoreID, &rating.UserID,
			&rating.Rating, &rating.Comment, &rating.CreatedAt,
			&rating.UserName, &rating.StoreName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	return ratings, rows.Err()
}

// FindByUser 返回某用户提交的全部评分并联查商店名，按创建时间倒序
func (r *ratingRepository) FindByUser(userID int) ([]*model.Rating, error) {
	query := `
		SELECT r.id, r.store_id, r.user_id, r.rating, r.comment, r.created_at, s.name
		FROM ratings r
		JOIN stores s ON r.store_id = s.id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		util.Logger.Error("查询用户评分失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()
	return scanRatings(rows, func(rating *model.Rating, extra *string) {
		rating.StoreName = *extra
	})
}

// UpdateOwned 按 (id AND user_id) 更新评分，返回受影响行数
func (r *ratingRepository) UpdateOwned(rating *model.Rating) (int64, error) {
	query := `UPDATE ratings SET rating = ?, comment = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.Exec(query, rating.Rating, rating.Comment, rating.ID, rating.UserID)
	if err != nil {
		util.Logger.Error("更新评分失败", zap.Error(err), zap.Int("rating_id", rating.ID))
		return 0, fmt.Errorf("failed to update rating: %w", err)
	}
	return result.RowsAffected()
}

// DeleteOwned 按 (id AND user_id) 删除评分，返回受影响行数
func (r *ratingRepository) DeleteOwned(id, userID int) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM ratings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		util.Logger.Error("删除评分失败", zap.Error(err), zap.Int("rating_id", id))
		return 0, fmt.Errorf("failed to delete rating: %w", err)
	}
	return result.RowsAffected()
}

// scanRatings 扫描带一个额外姓名列的评分行
func scanRatings(rows *sql.Rows, assign func(*model.Rating, *string)) ([]*model.Rating, error) {
	var ratings []*model.Rating
	for rows.Next() {
		var rating model.Rating
		var extra string
		err := rows.Scan(&rating.ID, &rating.StoreID, &rating.UserID,
			&rating.Rating, &rating.Comment, &rating.CreatedAt, &extra)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		assign(&rating, &extra)
		ratings = append(ratings, &rating)
	}
	return ratings, rows.Err()
}
