package service

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/repository/interfaces"
	"store-rating-backend/internal/util"
	"store-rating-backend/internal/validation"

	"go.uber.org/zap"
)

// AdminService 处理管理后台的业务逻辑
type AdminService struct {
	userRepo interfaces.UserRepository
}

// NewAdminService 创建一个新的 AdminService 实例
func NewAdminService(userRepo interfaces.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

// GetUsers 返回分页的用户列表和总数
func (s *AdminService) GetUsers(page, pageSize int) ([]*model.User, int, error) {
	users, err := s.userRepo.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询用户列表失败", err)
	}
	total, err := s.userRepo.Count()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "统计用户失败", err)
	}
	return users, total, nil
}

// CreateUser 管理员创建用户，走和注册完全相同的校验
func (s *AdminService) CreateUser(user *model.User, password string) error {
	if msg := validation.ValidateName(user.Name); msg != "" {
		return errors.New(errors.ErrValidation, msg)
	}
	if msg := validation.ValidateEmail(user.Email); msg != "" {
		return errors.New(errors.ErrValidation, msg)
	}
	if msg := validation.ValidateAddress(user.Address, true); msg != "" {
		return errors.New(errors.ErrValidation, msg)
	}
	if msg := validation.ValidatePassword(password); msg != "" {
		return errors.New(errors.ErrWeakPassword, msg)
	}
	// 其余查重和哈希逻辑与注册一致，直接复用 UserService
	return NewUserService(s.userRepo).Register(user, password)
}

// UpdateUserRole 更新用户角色
func (s *AdminService) UpdateUserRole(userID int, role string) error {
	if !isValidRole(role) {
		return errors.New(errors.ErrValidation, "Invalid role")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "User not found")
	}

	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户角色失败", err)
	}

	util.Logger.Info("用户角色更新成功",
		zap.Int("user_id", userID),
		zap.String("role", role))
	return nil
}

// DeleteUser 删除用户，其名下的商店和评分由外键级联删除
func (s *AdminService) DeleteUser(userID int) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "User not found")
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除用户失败", err)
	}
	return nil
}

// AdminServiceInterface 供处理器和测试使用的服务接口
type AdminServiceInterface interface {
	GetUsers(page, pageSize int) ([]*model.User, int, error)
	CreateUser(user *model.User, password string) error
	UpdateUserRole(userID int, role string) error
	DeleteUser(userID int) error
}

var _ AdminServiceInterface = (*AdminService)(nil)
