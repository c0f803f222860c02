package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"simplelink/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("无法连接到内存数据库: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Link{}, &model.Click{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewWithDB(db, SQLite)
}

func TestDateExpr(t *testing.T) {
	sqliteStore := NewWithDB(nil, SQLite)
	assert.Equal(t, "strftime('%Y-%m-%d', created_at)", sqliteStore.DateExpr())

	pgStore := NewWithDB(nil, Postgres)
	assert.Equal(t, "to_char(created_at, 'YYYY-MM-DD')", pgStore.DateExpr())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql"})
	assert.Error(t, err)
}

func TestTransaction_RollbackOnError(t *testing.T) {
	st := newTestStore(t)

	boom := errors.New("中途失败")
	err := st.Transaction(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&model.Link{OriginalURL: "https://example.com", ShortCode: "tx-test"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// 事务回滚后不应留下任何行
	var count int64
	st.DB().Model(&model.Link{}).Count(&count)
	assert.Zero(t, count)
}

func TestTransaction_Commit(t *testing.T) {
	st := newTestStore(t)

	err := st.Transaction(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&model.Link{OriginalURL: "https://example.com", ShortCode: "tx-ok"}).Error
	})
	assert.NoError(t, err)

	var count int64
	st.DB().Model(&model.Link{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPing(t *testing.T) {
	st := newTestStore(t)
	assert.NoError(t, st.Ping(context.Background()))
}

func TestUniqueShortCodeConstraint(t *testing.T) {
	st := newTestStore(t)

	assert.NoError(t, st.DB().Create(&model.Link{OriginalURL: "https://a.example.com", ShortCode: "dup"}).Error)

	err := st.DB().Create(&model.Link{OriginalURL: "https://b.example.com", ShortCode: "dup"}).Error
	assert.Error(t, err)
	assert.True(t, IsKind(Classify(err), KindUniqueViolation), "唯一约束冲突应被归类为 KindUniqueViolation")
}
