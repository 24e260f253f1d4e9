package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateName 测试姓名长度边界
func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"19个字符应拒绝", strings.Repeat("a", 19), false},
		{"20个字符应接受", strings.Repeat("a", 20), true},
		{"60个字符应接受", strings.Repeat("a", 60), true},
		{"61个字符应拒绝", strings.Repeat("a", 61), false},
		{"空姓名应拒绝", "", false},
		{"正常姓名", "Alice Twenty Characters Name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateName(tt.input)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

// TestValidateEmail 测试邮箱格式
func TestValidateEmail(t *testing.T) {
	assert.Empty(t, ValidateEmail("alice@x.com"))
	assert.Empty(t, ValidateEmail("a.b@sub.domain.org"))

	assert.NotEmpty(t, ValidateEmail(""))
	assert.NotEmpty(t, ValidateEmail("alice"))
	assert.NotEmpty(t, ValidateEmail("alice@x"))
	assert.NotEmpty(t, ValidateEmail("alice x@x.com"))
	assert.NotEmpty(t, ValidateEmail("@x.com"))
}

// TestValidateAddress 测试地址长度与必填
func TestValidateAddress(t *testing.T) {
	assert.Empty(t, ValidateAddress("123 Main St", true))
	assert.Empty(t, ValidateAddress(strings.Repeat("a", 400), true))
	assert.NotEmpty(t, ValidateAddress(strings.Repeat("a", 401), true))

	// 注册时空地址拒绝，其他场景允许
	assert.Equal(t, "Address is required", ValidateAddress("", true))
	assert.Empty(t, ValidateAddress("", false))
}

// TestValidatePassword 测试密码的每个独立条件
func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Secret1!"))
	assert.Empty(t, ValidatePassword(`Abcdefg"`))

	// 长度不足
	assert.Equal(t, "Password must be at least 8 characters long", ValidatePassword("Ab1!"))
	// 长度超限
	assert.Equal(t, "Password must not exceed 16 characters", ValidatePassword("Abcdefgh1!Abcdefgh"))
	// 缺少大写字母
	assert.Equal(t, "Password must include at least one uppercase letter", ValidatePassword("secret1!"))
	// 缺少特殊字符
	assert.Equal(t, "Password must include at least one special character", ValidatePassword("Secret123"))
}

// TestValidatePasswordChange 测试修改密码的组合规则
func TestValidatePasswordChange(t *testing.T) {
	// 合法修改
	assert.Empty(t, ValidatePasswordChange("OldPass1!", "NewPass1!", "NewPass1!"))

	// 缺少当前密码
	assert.Equal(t, "Current password is required", ValidatePasswordChange("", "NewPass1!", "NewPass1!"))

	// 新密码强度不足
	assert.NotEmpty(t, ValidatePasswordChange("OldPass1!", "weak", "weak"))

	// 确认不一致
	assert.Equal(t, "Passwords do not match", ValidatePasswordChange("OldPass1!", "NewPass1!", "Other1!!"))

	// 新旧相同
	assert.Equal(t, "New password must be different from the current password",
		ValidatePasswordChange("SamePass1!", "SamePass1!", "SamePass1!"))
}
