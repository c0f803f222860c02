package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"simplelink/internal/model"
	"simplelink/internal/store"
)

// AnalyticsService 提供按链接维度的点击统计，只读
type AnalyticsService struct {
	store  *store.Store
	logger *zap.SugaredLogger
}

// NewAnalyticsService 创建统计服务实例
func NewAnalyticsService(st *store.Store, logger *zap.SugaredLogger) *AnalyticsService {
	return &AnalyticsService{store: st, logger: logger.Named("analytics_service")}
}

// DailyClicks 某一天的点击总数
type DailyClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// SourceCount 某个来源标记的出现次数
type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// GetDailyClicks 返回链接的按日点击数，日期升序，最多 30 天。
// 沿用线上行为：取的是有数据的最早 30 天，而不是最近的窗口。
func (s *AnalyticsService) GetDailyClicks(ctx context.Context, linkID, ownerID uint) ([]DailyClicks, error) {
	if err := s.verifyOwnership(ctx, linkID, ownerID); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s AS date, COUNT(*) AS clicks
		 FROM clicks
		 WHERE link_id = ?
		 GROUP BY date
		 ORDER BY date ASC
		 LIMIT 30`, s.store.DateExpr())

	stats := make([]DailyClicks, 0)
	if err := s.store.DB().WithContext(ctx).Raw(query, linkID).Scan(&stats).Error; err != nil {
		return nil, store.Classify(err)
	}
	return stats, nil
}

// GetTopSources 返回链接的来源标记排行：过滤空值，出现次数降序，
// 次数相同按来源文本升序保证结果稳定，最多 10 条。
func (s *AnalyticsService) GetTopSources(ctx context.Context, linkID, ownerID uint) ([]SourceCount, error) {
	if err := s.verifyOwnership(ctx, linkID, ownerID); err != nil {
		return nil, err
	}

	query := `SELECT query_source AS source, COUNT(*) AS count
		 FROM clicks
		 WHERE link_id = ? AND query_source IS NOT NULL AND query_source <> ''
		 GROUP BY query_source
		 ORDER BY count DESC, query_source ASC
		 LIMIT 10`

	stats := make([]SourceCount, 0)
	if err := s.store.DB().WithContext(ctx).Raw(query, linkID).Scan(&stats).Error; err != nil {
		return nil, store.Classify(err)
	}
	return stats, nil
}

// verifyOwnership 校验链接归属，不存在与不属于调用者一律返回 ErrNotFound
func (s *AnalyticsService) verifyOwnership(ctx context.Context, linkID, ownerID uint) error {
	var link model.Link
	err := s.store.DB().WithContext(ctx).
		Select("id").
		Where("id = ? AND owner_id = ?", linkID, ownerID).
		Take(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return store.Classify(err)
	}
	return nil
}
