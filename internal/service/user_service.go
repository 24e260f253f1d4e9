package service

import (
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/model"
	"store-rating-backend/internal/repository/interfaces"
	"store-rating-backend/internal/util"
	"store-rating-backend/internal/validation"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo       interfaces.UserRepository
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		tokenBlacklist: make(map[string]time.Time),
	}
}

// Register 注册新用户。所有字段先通过共享校验，再落库，
// 校验失败不会产生任何写入
func (s *UserService) Register(user *model.User, password string) error {
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

	// 未提供用户名时沿用邮箱
	if user.Username == "" {
		user.Username = user.Email
	}
	if user.Role == "" {
		user.Role = model.RoleNormalUser
	}
	if !isValidRole(user.Role) {
		return errors.New(errors.ErrValidation, "Invalid role")
	}

	// 检查邮箱或用户名是否已被占用
	existing, err := s.userRepo.FindByEmail(user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing == nil {
		existing, err = s.userRepo.FindByUsername(user.Username)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
		}
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "Username or email already exists")
	}

	// 生成密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	util.Logger.Info("用户注册成功", zap.Int("user_id", user.ID))
	return nil
}

// Login 用户登录。邮箱不存在和密码错误返回同一个错误，
// 不向调用方泄露具体原因
func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials")
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

// UpdateProfile 更新用户的姓名和地址，复用注册时的校验规则
// （地址在这里允许为空）
func (s *UserService) UpdateProfile(userID int, name, address string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if msg := validation.ValidateName(name); msg != "" {
			return nil, errors.New(errors.ErrValidation, msg)
		}
		user.Name = name
	}
	if msg := validation.ValidateAddress(address, false); msg != "" {
		return nil, errors.New(errors.ErrValidation, msg)
	}
	if address != "" {
		user.Address = address
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}
	return user, nil
}

// ChangePassword 修改密码：校验新密码强度和确认一致、
// 新旧不同，并验证当前密码正确
func (s *UserService) ChangePassword(userID int, current, newPassword, confirm string) error {
	if msg := validation.ValidatePasswordChange(current, newPassword, confirm); msg != "" {
		return errors.New(errors.ErrValidation, msg)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return errors.New(errors.ErrInvalidCredentials, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}

	if err := s.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新密码失败", err)
	}

	util.Logger.Info("用户密码修改成功", zap.Int("user_id", userID))
	return nil
}

// UpdateAvatar 更新用户头像
func (s *UserService) UpdateAvatar(userID int, avatarURL string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.AvatarURL = avatarURL
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新头像失败", err)
	}
	return nil
}

// GetUsers 返回分页的用户列表
func (s *UserService) GetUsers(page, pageSize int) ([]*model.User, error) {
	users, err := s.userRepo.FindAll(page, pageSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户列表失败", err)
	}
	return users, nil
}

// Logout 把当前令牌加入黑名单，保留到令牌自然过期之后
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	s.tokenBlacklist[token] = time.Now().Add(24 * time.Hour)
	s.blacklistMutex.Unlock()
	util.Logger.Info("用户注销，令牌已加入黑名单")
}

// IsTokenBlacklisted 检查令牌是否已被撤销
func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	expiry, exists := s.tokenBlacklist[token]
	s.blacklistMutex.RUnlock()
	if !exists {
		return false
	}
	if time.Now().After(expiry) {
		s.blacklistMutex.Lock()
		delete(s.tokenBlacklist, token)
		s.blacklistMutex.Unlock()
		return false
	}
	return true
}

func isValidRole(role string) bool {
	switch role {
	case model.RoleNormalUser, model.RoleStoreOwner, model.RoleAdmin:
		return true
	}
	return false
}

// UserServiceInterface 供处理器和测试使用的服务接口
type UserServiceInterface interface {
	Register(user *model.User, password string) error
	Login(email, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateProfile(userID int, name, address string) (*model.User, error)
	ChangePassword(userID int, current, newPassword, confirm string) error
	UpdateAvatar(userID int, avatarURL string) error
	GetUsers(page, pageSize int) ([]*model.User, error)
	Logout(token string)
	IsTokenBlacklisted(token string) bool
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
