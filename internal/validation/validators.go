// Package validation 集中了所有用户提交数据的校验规则。
// 注册、管理员创建用户、修改密码等入口必须复用这里的函数，
// 不允许在各自的处理器里重新实现。
package validation

import (
	stderrors "errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength     = 20
	NameMaxLength     = 60
	AddressMaxLength  = 400
	PasswordMinLength = 8
	PasswordMaxLength = 16

	// 密码必须包含的特殊字符集合
	passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName 校验用户姓名长度，合法时返回空字符串
func ValidateName(name string) string {
	length := utf8.RuneCountInString(name)
	if length < NameMinLength {
		return "Name must be at least 20 characters long"
	}
	if length > NameMaxLength {
		return "Name must not exceed 60 characters"
	}
	return ""
}

// ValidateEmail 校验邮箱格式
func ValidateEmail(email string) string {
	if !emailRegex.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

// ValidateAddress 校验地址，required 为 true 时（注册、管理员建号）空地址也拒绝
func ValidateAddress(address string, required bool) string {
	if utf8.RuneCountInString(address) > AddressMaxLength {
		return "Address must not exceed 400 characters"
	}
	if required && address == "" {
		return "Address is required"
	}
	return ""
}

// ValidatePassword 校验密码强度，按条件返回对应的提示
func ValidatePassword(password string) string {
	if len(password) < PasswordMinLength {
		return "Password must be at least 8 characters long"
	}
	if len(password) > PasswordMaxLength {
		return "Password must not exceed 16 characters"
	}
	if !containsUppercase(password) {
		return "Password must include at least one uppercase letter"
	}
	if !strings.ContainsAny(password, passwordSpecialChars) {
		return "Password must include at least one special character"
	}
	return ""
}

// ValidatePasswordConfirmation 校验确认密码
func ValidatePasswordConfirmation(password, confirm string) string {
	if password != confirm {
		return "Passwords do not match"
	}
	return ""
}

// ValidatePasswordChange 校验修改密码请求：新密码须通过强度校验、
// 与确认一致，且不能与当前密码相同
func ValidatePasswordChange(current, newPassword, confirm string) string {
	if current == "" {
		return "Current password is required"
	}
	if msg := ValidatePassword(newPassword); msg != "" {
		return msg
	}
	if msg := ValidatePasswordConfirmation(newPassword, confirm); msg != "" {
		return msg
	}
	if newPassword == current {
		return "New password must be different from the current password"
	}
	return ""
}

func containsUppercase(s string) bool {
	for _, c := range s {
		if c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}

// validateUserName 供 binding 标签使用的姓名校验
func validateUserName(fl validator.FieldLevel) bool {
	return ValidateName(fl.Field().String()) == ""
}

// validateStrongPassword 供 binding 标签使用的密码校验
func validateStrongPassword(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String()) == ""
}

// RegisterCustomValidators 把领域校验规则注册到 gin 的 binding 引擎，
// 使请求结构体可以直接使用 user_name / strong_password 标签
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_name", validateUserName)
		_ = v.RegisterValidation("strong_password", validateStrongPassword)
	}
}

// BindingErrorMessage 把 binding 标签的校验失败翻译成与共享校验
// 函数一致的提示。只看第一个失败项，无法识别的失败返回 fallback
func BindingErrorMessage(err error, fallback string) string {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fallback
	}

	fe := fieldErrors[0]
	value, _ := fe.Value().(string)
	switch fe.Tag() {
	case "user_name":
		if msg := ValidateName(value); msg != "" {
			return msg
		}
	case "strong_password":
		if msg := ValidatePassword(value); msg != "" {
			return msg
		}
	}
	return fallback
}
