package mysql

import (
	"database/sql"
	"fmt"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/util"

	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

const userColumns = `id, name, username, email, address, password_hash, avatar_url, role, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.Address,
		&user.PasswordHash, &user.AvatarURL, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (name, username, email, address, password_hash, role)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, user.Name, user.Username, user.Email, user.Address,
		user.PasswordHash, user.Role)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = int(id)
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户，不存在时返回 (nil, nil)
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRow(query, id))
}

// FindByEmail 通过邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRow(query, email))
}

// FindByUsername 通过用户名查找用户
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return scanUser(r.db.QueryRow(query, username))
}

// Update 更新用户的基本信息（不含密码和角色）
func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET name = ?, address = ?, avatar_url = ? WHERE id = ?`
	_, err := r.db.Exec(query, user.Name, user.Address, user.AvatarURL, user.ID)
	if err != nil {
		util.Logger.Error("更新用户失败", zap.Error(err), zap.Int("user_id", user.ID))
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// UpdatePassword 更新用户密码哈希
func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		util.Logger.Error("更新用户密码失败", zap.Error(err), zap.Int("user_id", id))
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateRole 更新用户角色
func (r *userRepository) UpdateRole(id int, role string) error {
	_, err := r.db.Exec(`UPDATE users SET role = ? WHERE id = ?`, role, id)
	if err != nil {
		util.Logger.Error("更新用户角色失败", zap.Error(err), zap.Int("user_id", id))
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// Delete 删除用户，外键级联删除其商店和评分
func (r *userRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除用户失败", zap.Error(err), zap.Int("user_id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	util.Logger.Info("用户删除成功", zap.Int("user_id", id))
	return nil
}

// Count 返回用户总数
func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll 返回分页的用户列表
func (r *userRepository) FindAll(page, pageSize int) ([]*model.User, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		util.Logger.Error("查询用户列表失败", zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID, &user.Name, &user.Username, &user.Email, &user.Address,
			&user.PasswordHash, &user.AvatarURL, &user.Role, &user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
