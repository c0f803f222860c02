package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind 是存储层错误的分类
type Kind int

const (
	// KindOther 未归类的后端错误
	KindOther Kind = iota
	// KindUniqueViolation 唯一约束冲突，短码/邮箱被占用的竞态由此识别
	KindUniqueViolation
	// KindNotFound 查询无匹配行
	KindNotFound
	// KindConnectionFailed 后端不可达
	KindConnectionFailed
)

// Error 携带分类信息的存储层错误，上层据此区分
// “短码已被占用”这类可重试冲突与一般性故障。
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUniqueViolation:
		return fmt.Sprintf("存储层错误: 唯一约束冲突: %v", e.Err)
	case KindNotFound:
		return "存储层错误: 记录不存在"
	case KindConnectionFailed:
		return fmt.Sprintf("存储层错误: 数据库不可达: %v", e.Err)
	default:
		return fmt.Sprintf("存储层错误: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify 把 gorm/驱动返回的错误翻译成带分类的 *Error。
// 依赖 gorm 的 TranslateError，各方言的唯一约束错误都会
// 先被翻译成 gorm.ErrDuplicatedKey，这里不做任何字符串探测。
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindUniqueViolation, Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Err: err}
	default:
		return &Error{Kind: KindOther, Err: err}
	}
}

// IsKind 判断 err 是否为指定分类的存储层错误
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}
