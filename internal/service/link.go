package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simplelink/internal/model"
	"simplelink/internal/shortcode"
	"simplelink/internal/store"
)

// maxGenerateAttempts 随机短码插入冲突时的最大重试次数
const maxGenerateAttempts = 3

// LinkService 负责链接的创建、重定向、删除与列表
type LinkService struct {
	store  *store.Store
	logger *zap.SugaredLogger
}

// NewLinkService 创建链接服务实例
func NewLinkService(st *store.Store, logger *zap.SugaredLogger) *LinkService {
	return &LinkService{store: st, logger: logger.Named("link_service")}
}

// CreateLinkInput 创建链接的输入
type CreateLinkInput struct {
	URL string
	// CustomCode 为空时自动生成随机短码
	CustomCode string
	// Source 非空时在创建的同一事务内补一条初始点击记录
	Source *string
}

// Create 创建短链接
//
// 自定义短码先做格式与保留字校验，再在事务内查重给出友好错误；
// 查重与插入之间的竞态由唯一约束最终裁决，冲突同样归为输入错误。
// 随机短码不预查，插入撞上唯一约束时重新生成，最多重试三次。
func (s *LinkService) Create(ctx context.Context, ownerID uint, in CreateLinkInput) (*model.Link, error) {
	if err := validateURL(in.URL); err != nil {
		return nil, err
	}

	if in.CustomCode != "" {
		if err := shortcode.ValidateCustom(in.CustomCode); err != nil {
			return nil, invalidInput(err.Error())
		}
		link := &model.Link{OwnerID: &ownerID, OriginalURL: in.URL, ShortCode: in.CustomCode}
		err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&model.Link{}).Where("short_code = ?", in.CustomCode).Count(&count).Error; err != nil {
				return store.Classify(err)
			}
			if count > 0 {
				return invalidInput("该短码已被占用")
			}
			return s.insertLink(tx, link, in.Source)
		})
		if err != nil {
			if store.IsKind(err, store.KindUniqueViolation) {
				return nil, invalidInput("该短码已被占用")
			}
			return nil, err
		}
		return link, nil
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		code, err := shortcode.Generate()
		if err != nil {
			return nil, err
		}
		link := &model.Link{OwnerID: &ownerID, OriginalURL: in.URL, ShortCode: code}
		err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
			return s.insertLink(tx, link, in.Source)
		})
		if err == nil {
			return link, nil
		}
		if store.IsKind(err, store.KindUniqueViolation) {
			s.logger.Warnf("随机短码 %s 冲突，重新生成（第 %d 次）", code, attempt)
			continue
		}
		return nil, err
	}
	return nil, &store.Error{Kind: store.KindUniqueViolation, Err: errors.New("随机短码连续冲突")}
}

// insertLink 在事务内插入链接，可选地附带一条初始点击记录
func (s *LinkService) insertLink(tx *gorm.DB, link *model.Link, source *string) error {
	if err := tx.Create(link).Error; err != nil {
		return store.Classify(err)
	}
	if source != nil && *source != "" {
		click := model.Click{LinkID: link.ID, Source: source}
		if err := tx.Create(&click).Error; err != nil {
			return store.Classify(err)
		}
	}
	return nil
}

// Redirect 解析短码并记录一次点击
//
// 计数递增与行读取必须是同一条原子语句（UPDATE ... RETURNING），
// 两次并发重定向不会丢失计数；点击记录在同一事务内写入，
// 链接不存在时不会留下任何点击行。
func (s *LinkService) Redirect(ctx context.Context, code, userAgent, querySource string) (*model.Link, error) {
	var link model.Link
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&link).
			Clauses(clause.Returning{}).
			Where("short_code = ?", code).
			Update("click_count", gorm.Expr("click_count + 1"))
		if res.Error != nil {
			return store.Classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		source := userAgent
		if source == "" {
			source = "unknown"
		}
		click := model.Click{LinkID: link.ID, Source: &source}
		if querySource != "" {
			click.QuerySource = &querySource
		}
		if err := tx.Create(&click).Error; err != nil {
			return store.Classify(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete 删除调用者名下的链接及其全部点击记录
func (s *LinkService) Delete(ctx context.Context, linkID, ownerID uint) error {
	return s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var link model.Link
		if err := tx.Where("id = ? AND owner_id = ?", linkID, ownerID).Take(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return store.Classify(err)
		}
		if err := tx.Where("link_id = ?", link.ID).Delete(&model.Click{}).Error; err != nil {
			return store.Classify(err)
		}
		if err := tx.Delete(&link).Error; err != nil {
			return store.Classify(err)
		}
		return nil
	})
}

// List 返回调用者名下的全部链接，新创建的在前
func (s *LinkService) List(ctx context.Context, ownerID uint) ([]model.Link, error) {
	var links []model.Link
	err := s.store.DB().WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, store.Classify(err)
	}
	return links, nil
}

// validateURL 校验原始 URL：非空且以 http:// 或 https:// 开头
func validateURL(url string) error {
	if url == "" {
		return invalidInput("URL 不能为空")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return invalidInput("URL 必须以 http:// 或 https:// 开头")
	}
	return nil
}
