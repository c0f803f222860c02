// Package store 是数据访问层，把 Postgres 与嵌入式 SQLite 两种方言
// 收敛到同一个事务契约后面：同样的输入，同样的逻辑结果。
// 方言相关的 SQL 片段只在本包内出现，上层服务一律使用 ? 占位符。
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"simplelink/internal/model"
)

// Driver 标记后端方言
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

// Config 数据库连接配置
type Config struct {
	Driver   Driver
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path 是 SQLite 数据库文件路径
	Path string
}

// Store 封装底层连接池与方言标记
type Store struct {
	db     *gorm.DB
	driver Driver
}

// Open 根据配置选择方言并建立连接，完成建表迁移
//
// 方言分发只在这里发生一次，调用方拿到的 Store 行为与后端无关。
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case Postgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	case SQLite:
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("创建数据目录失败: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, &Error{Kind: KindConnectionFailed, Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &Error{Kind: KindConnectionFailed, Err: err}
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&model.User{}, &model.Link{}, &model.Click{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return &Store{db: db, driver: cfg.Driver}, nil
}

// NewWithDB 用已有的 gorm 连接构造 Store，测试使用
func NewWithDB(db *gorm.DB, driver Driver) *Store {
	return &Store{db: db, driver: driver}
}

// Driver 返回当前后端方言
func (s *Store) Driver() Driver {
	return s.driver
}

// DB 返回底层的 gorm 连接，非事务性的单条查询可直接使用
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction 在一个工作单元内执行 fn，fn 返回错误或 panic 时整体回滚。
// 多条语句的操作必须走这里，不允许跨事务边界拆开执行。
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// Ping 检查后端可用性，健康检查使用
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &Error{Kind: KindConnectionFailed, Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &Error{Kind: KindConnectionFailed, Err: err}
	}
	return nil
}

// DateExpr 返回把 created_at 截断到日历日的方言 SQL 片段。
// 这是聚合查询里唯一随后端变化的部分，集中在这里选择。
func (s *Store) DateExpr() string {
	switch s.driver {
	case Postgres:
		return "to_char(created_at, 'YYYY-MM-DD')"
	default:
		return "strftime('%Y-%m-%d', created_at)"
	}
}

// Close 归还连接池
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
