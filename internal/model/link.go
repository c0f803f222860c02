package model

import (
	"time"
)

// Link 短链接模型
//
// OwnerID 可为空：兼容早期匿名创建的链接，API 创建的链接始终带上创建者 ID。
// ClickCount 是冗余计数器，仅由重定向路径原子递增。
type Link struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OwnerID     *uint     `gorm:"index" json:"owner_id"`
	OriginalURL string    `gorm:"type:text;not null" json:"original_url"`
	ShortCode   string    `gorm:"size:32;uniqueIndex;not null" json:"short_code"`
	ClickCount  int64     `gorm:"default:0" json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`

	// 关联的点击记录，链接删除时级联删除
	Clicks []Click `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Link) TableName() string {
	return "links"
}
