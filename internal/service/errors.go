package service

import (
	"errors"
)

// ErrNotFound 链接不存在，或存在但不属于调用者。
// 归属不符与不存在折叠为同一个错误，避免向非拥有者泄露链接是否存在。
var ErrNotFound = errors.New("链接不存在")

// InvalidInputError 调用方可自行修正的输入错误（URL 格式、短码格式、短码被占用等）
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// AuthError 认证/注册流程的业务错误（注册已关闭、初始化令牌错误等）
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

func invalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}
