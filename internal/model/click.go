package model

import (
	"time"
)

// Click 点击记录，追加写入：每次重定向一条，创建链接时可选地补一条初始记录
//
// Source 一般是访问者的 User-Agent（或创建时显式传入的标签），
// QuerySource 是重定向 URL 上 ?source= 携带的来源标记，两者都允许为空。
type Click struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	LinkID      uint      `gorm:"not null;index" json:"link_id"`
	Source      *string   `gorm:"type:text" json:"source"`
	QuerySource *string   `gorm:"type:text" json:"query_source"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (Click) TableName() string {
	return "clicks"
}
