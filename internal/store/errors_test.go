package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	t.Run("nil 错误原样返回", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})

	t.Run("唯一约束冲突", func(t *testing.T) {
		err := Classify(gorm.ErrDuplicatedKey)
		assert.True(t, IsKind(err, KindUniqueViolation))
	})

	t.Run("包装后的唯一约束冲突", func(t *testing.T) {
		err := Classify(fmt.Errorf("插入失败: %w", gorm.ErrDuplicatedKey))
		assert.True(t, IsKind(err, KindUniqueViolation))
	})

	t.Run("记录不存在", func(t *testing.T) {
		err := Classify(gorm.ErrRecordNotFound)
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("未归类错误", func(t *testing.T) {
		err := Classify(errors.New("connection reset"))
		assert.True(t, IsKind(err, KindOther))
		assert.False(t, IsKind(err, KindUniqueViolation))
	})

	t.Run("已分类错误不重复包装", func(t *testing.T) {
		original := &Error{Kind: KindConnectionFailed, Err: errors.New("dial tcp")}
		classified := Classify(original)
		assert.Same(t, original, classified.(*Error))
	})
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("底层错误")
	err := &Error{Kind: KindOther, Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestIsKind_NonStoreError(t *testing.T) {
	assert.False(t, IsKind(errors.New("其他错误"), KindOther))
}
