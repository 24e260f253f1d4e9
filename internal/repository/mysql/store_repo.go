package mysql

import (
	"database/sql"
	"fmt"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/util"

	"go.uber.org/zap"
)

// storeRepository 实现了 StoreRepository 接口
type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository 创建一个新的 storeRepository 实例
func NewStoreRepository(db *sql.DB) *storeRepository {
	return &storeRepository{db}
}

// Create 创建一个新商店，店主在创建时固定为当前用户
func (r *storeRepository) Create(store *model.Store) error {
	query := `INSERT INTO stores (user_id, name, address, phone, website, email, description, category)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, store.UserID, store.Name, store.Address,
		store.Phone, store.Website, store.Email, store.Description, store.Category)
	if err != nil {
		util.Logger.Error("创建商店失败", zap.Error(err), zap.Int("user_id", store.UserID))
		return fmt.Errorf("failed to create store: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	store.ID = int(id)
	util.Logger.Info("商店创建成功",
		zap.Int("store_id", store.ID),
		zap.Int("user_id", store.UserID))
	return nil
}

// FindByID 通过ID获取商店并联查店主姓名，不存在时返回 (nil, nil)
func (r *storeRepository) FindByID(id int) (*model.Store, error) {
	query := `
		SELECT s.id, s.user_id, s.name, s.address, s.phone, s.website, s.email,
		       s.description, s.category, s.created_at, COALESCE(u.name, '') AS owner_name
		FROM stores s
		LEFT JOIN users u ON s.user_id = u.id
		WHERE s.id = ?`

	var store model.Store
	err := r.db.QueryRow(query, id).Scan(
		&store.ID, &store.UserID, &store.Name, &store.Address, &store.Phone,
		&store.Website, &store.Email, &store.Description, &store.Category,
		&store.CreatedAt, &store.OwnerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		util.Logger.Error("查询商店失败", zap.Error(err), zap.Int("store_id", id))
		return nil, fmt.Errorf("failed to query store: %w", err)
	}
	return &store, nil
}

// FindAll 返回全部商店并联查店主姓名
func (r *storeRepository) FindAll() ([]*model.Store, error) {
	query := `
		SELECT s.id, s.user_id, s.name, s.address, s.phone, s.website, s.email,
		       s.description, s.category, s.created_at, COALESCE(u.name, '') AS owner_name
		FROM stores s
		LEFT JOIN users u ON s.user_id = u.id`

	rows, err := r.db.Query(query)
	if err != nil {
		util.Logger.Error("查询商店列表失败", zap.Error(err))
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []*model.Store
	for rows.Next() {
		var store model.Store
		err := rows.Scan(
			&store.ID, &store.UserID, &store.Name, &store.Address, &store.Phone,
			&store.Website, &store.Email, &store.Description, &store.Category,
			&store.CreatedAt, &store.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, &store)
	}
	return stores, rows.Err()
}

// UpdateOwned 按 (id AND user_id) 更新商店，返回受影响行数。
// 0 行表示商店不存在或调用者不是店主，调用方据此返回"未找到"
func (r *storeRepository) UpdateOwned(store *model.Store) (int64, error) {
	query := `UPDATE stores
              SET name = ?, address = ?, phone = ?, website = ?, email = ?, description = ?, category = ?
              WHERE id = ? AND user_id = ?`
	result, err := r.db.Exec(query, store.Name, store.Address, store.Phone,
		store.Website, store.Email, store.Description, store.Category,
		store.ID, store.UserID)
	if err != nil {
		util.Logger.Error("更新商店失败", zap.Error(err), zap.Int("store_id", store.ID))
		return 0, fmt.Errorf("failed to update store: %w", err)
	}
	return result.RowsAffected()
}

// DeleteOwned 按 (id AND user_id) 删除商店，返回受影响行数
func (r *storeRepository) DeleteOwned(id, userID int) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM stores WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		util.Logger.Error("删除商店失败", zap.Error(err), zap.Int("store_id", id))
		return 0, fmt.Errorf("failed to delete store: %w", err)
	}
	return result.RowsAffected()
}
