package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"simplelink/internal/model"
	"simplelink/internal/store"
)

func newAnalyticsService(st *store.Store) *AnalyticsService {
	logger, _ := zap.NewDevelopment()
	return NewAnalyticsService(st, logger.Sugar())
}

// seedLink 直接插入一条归属指定用户的链接
func seedLink(t *testing.T, st *store.Store, ownerID uint, code string) *model.Link {
	t.Helper()

	link := model.Link{OwnerID: &ownerID, OriginalURL: "https://example.com/" + code, ShortCode: code}
	if err := st.DB().Create(&link).Error; err != nil {
		t.Fatalf("创建测试链接失败: %v", err)
	}
	return &link
}

// seedClick 插入一条指定时间与来源的点击记录
func seedClick(t *testing.T, st *store.Store, linkID uint, querySource string, createdAt time.Time) {
	t.Helper()

	source := "TestAgent/1.0"
	click := model.Click{LinkID: linkID, Source: &source, CreatedAt: createdAt}
	if querySource != "" {
		click.QuerySource = &querySource
	}
	if err := st.DB().Create(&click).Error; err != nil {
		t.Fatalf("创建测试点击记录失败: %v", err)
	}
}

func TestGetDailyClicks(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	owner := createUser(t, st, "owner@example.com")
	link := seedLink(t, st, owner, "abc")

	// 三天数据：5 月 1 日 2 次，5 月 2 日 3 次，5 月 4 日 1 次
	day1 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	day4 := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	seedClick(t, st, link.ID, "", day1)
	seedClick(t, st, link.ID, "", day1.Add(2*time.Hour))
	seedClick(t, st, link.ID, "", day2)
	seedClick(t, st, link.ID, "", day2.Add(time.Hour))
	seedClick(t, st, link.ID, "", day2.Add(5*time.Hour))
	seedClick(t, st, link.ID, "", day4)

	stats, err := svc.GetDailyClicks(context.Background(), link.ID, owner)
	assert.NoError(t, err)
	if assert.Len(t, stats, 3, "只有有数据的日期才应出现") {
		assert.Equal(t, DailyClicks{Date: "2026-05-01", Clicks: 2}, stats[0])
		assert.Equal(t, DailyClicks{Date: "2026-05-02", Clicks: 3}, stats[1])
		assert.Equal(t, DailyClicks{Date: "2026-05-04", Clicks: 1}, stats[2])
	}
}

func TestGetDailyClicks_LimitEarliest30(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	owner := createUser(t, st, "owner@example.com")
	link := seedLink(t, st, owner, "abc")

	// 35 个不同日期，应截断为最早的 30 天（沿用线上行为）
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 35; i++ {
		seedClick(t, st, link.ID, "", base.AddDate(0, 0, i))
	}

	stats, err := svc.GetDailyClicks(context.Background(), link.ID, owner)
	assert.NoError(t, err)
	if assert.Len(t, stats, 30) {
		assert.Equal(t, "2026-03-01", stats[0].Date)
		assert.Equal(t, "2026-03-30", stats[29].Date)
	}
}

func TestGetDailyClicks_ForeignOwner(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	ownerA := createUser(t, st, "a@example.com")
	ownerB := createUser(t, st, "b@example.com")
	link := seedLink(t, st, ownerA, "abc")

	_, err := svc.GetDailyClicks(context.Background(), link.ID, ownerB)
	assert.ErrorIs(t, err, ErrNotFound, "他人链接的统计应表现为不存在")
}

func TestGetDailyClicks_NoClicks(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	owner := createUser(t, st, "owner@example.com")
	link := seedLink(t, st, owner, "abc")

	stats, err := svc.GetDailyClicks(context.Background(), link.ID, owner)
	assert.NoError(t, err)
	assert.Empty(t, stats)
	assert.NotNil(t, stats, "无数据时应返回空列表而不是 null")
}

func TestGetTopSources(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	owner := createUser(t, st, "owner@example.com")
	link := seedLink(t, st, owner, "abc")

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedClick(t, st, link.ID, "newsletter", now)
	}
	for i := 0; i < 2; i++ {
		seedClick(t, st, link.ID, "twitter", now)
	}
	seedClick(t, st, link.ID, "blog", now)
	// 空来源与无来源不应出现在结果里
	seedClick(t, st, link.ID, "", now)

	stats, err := svc.GetTopSources(context.Background(), link.ID, owner)
	assert.NoError(t, err)
	if assert.Len(t, stats, 3) {
		assert.Equal(t, SourceCount{Source: "newsletter", Count: 3}, stats[0])
		assert.Equal(t, SourceCount{Source: "twitter", Count: 2}, stats[1])
		assert.Equal(t, SourceCount{Source: "blog", Count: 1}, stats[2])
	}
	for _, s := range stats {
		assert.NotEmpty(t, s.Source, "结果不应包含空来源")
	}
}

func TestGetTopSources_TieBreakAndLimit(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	owner := createUser(t, st, "owner@example.com")
	link := seedLink(t, st, owner, "abc")

	// 12 个出现次数相同的来源，应按来源文本升序取前 10 个
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		seedClick(t, st, link.ID, fmt.Sprintf("source-%02d", i), now)
	}

	stats, err := svc.GetTopSources(context.Background(), link.ID, owner)
	assert.NoError(t, err)
	if assert.Len(t, stats, 10, "最多返回 10 条") {
		assert.Equal(t, "source-00", stats[0].Source)
		assert.Equal(t, "source-09", stats[9].Source)
	}
}

func TestGetTopSources_ForeignOwner(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	ownerA := createUser(t, st, "a@example.com")
	ownerB := createUser(t, st, "b@example.com")
	link := seedLink(t, st, ownerA, "abc")

	_, err := svc.GetTopSources(context.Background(), link.ID, ownerB)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTopSources_UnknownLink(t *testing.T) {
	st := setupStore(t)
	svc := newAnalyticsService(st)
	owner := createUser(t, st, "owner@example.com")

	_, err := svc.GetTopSources(context.Background(), 9999, owner)
	assert.ErrorIs(t, err, ErrNotFound)
}
