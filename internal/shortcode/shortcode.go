// Package shortcode 负责短码的生成与校验。
//
// 本包不保证短码全局唯一，唯一性由数据库的唯一约束最终裁决，
// 调用方（Link Service）在插入冲突时重新生成。
package shortcode

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

const (
	// Charset 包含用于生成短码的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength 是随机生成的短码的长度
	CodeLength = 8
)

// 自定义短码格式：1-32 位字母、数字、下划线或连字符
var validCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// 保留字短码，与路由前缀冲突，禁止占用
var reservedCodes = map[string]struct{}{
	"api":    {},
	"health": {},
	"admin":  {},
	"static": {},
	"assets": {},
}

var (
	// ErrInvalidFormat 自定义短码不符合格式要求
	ErrInvalidFormat = errors.New("短码必须为 1-32 位字母、数字、下划线或连字符")
	// ErrReserved 自定义短码是保留字
	ErrReserved = errors.New("该短码为系统保留，无法使用")
)

// Generate 使用加密安全的随机数生成器生成一个固定长度的短码
func Generate() (string, error) {
	b := make([]byte, CodeLength)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Charset))))
		if err != nil {
			return "", err
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}

// ValidateCustom 校验用户自定义短码，纯函数，无 I/O
func ValidateCustom(code string) error {
	if !validCodePattern.MatchString(code) {
		return ErrInvalidFormat
	}
	if _, ok := reservedCodes[strings.ToLower(code)]; ok {
		return ErrReserved
	}
	return nil
}
