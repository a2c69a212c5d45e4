package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-blog/internal/repository"
	"go-blog/pkg/cache"
	"go-blog/pkg/log"
)

// 访问去重窗口：pv 按分钟去重，uv 按访客的自然日去重。
const (
	pvWindow = time.Minute
	uvWindow = 24 * time.Hour

	dayFormat = "2006-01-02"
)

// VisitService 接口定义了文章访问计数的业务操作。
type VisitService interface {
	// RecordVisit 为一次页面访问记账：判定 pv/uv 是否应计数，
	// 并以最多一条原子 UPDATE 更新文章的计数器。
	RecordVisit(ctx context.Context, visitorID, path string, articleID uint, now time.Time) error
}

// visitService 是 VisitService 接口的实现。
// 它用缓存作为去重账本，数据库是计数的唯一权威来源；
// 丢失全部缓存内容只会让访问被重新计为首次，不会破坏已存储的数据。
type visitService struct {
	articleRepo repository.ArticleRepository
	cache       cache.Cache
	// failOpen 为真时，缓存不可用视为"未见过"继续计数（可用性优先）；
	// 为假时跳过本次计数（准确性优先）。策略由配置决定，不在代码里混用。
	failOpen bool
}

// NewVisitService 创建一个新的 VisitService 实例。
func NewVisitService(articleRepo repository.ArticleRepository, c cache.Cache, failOpen bool) VisitService {
	return &visitService{
		articleRepo: articleRepo,
		cache:       c,
		failOpen:    failOpen,
	}
}

// RecordVisit 判定并应用一次访问的计数。
// pv 以 (访客, 路径) 在一分钟窗口内去重；
// uv 以 (访客, 自然日, 路径) 在 24 小时窗口内去重。
// 两个判定相互独立，最终合并成至多一次数据库更新。
func (s *visitService) RecordVisit(ctx context.Context, visitorID, path string, articleID uint, now time.Time) error {
	pvKey := fmt.Sprintf("pv:%s:%s", visitorID, path)
	uvKey := fmt.Sprintf("uv:%s:%s:%s", visitorID, now.Format(dayFormat), path)

	increasePV := s.shouldCount(ctx, pvKey, pvWindow)
	increaseUV := s.shouldCount(ctx, uvKey, uvWindow)

	if !increasePV && !increaseUV {
		return nil
	}
	return s.articleRepo.IncrementViews(articleID, increasePV, increaseUV)
}

// shouldCount 检查账本中是否已有该键，没有则写入带过期时间的标记并返回 true。
// 检查和写入不是原子的：同一访客的两个并发请求可能都通过判定，
// 偶尔多计一次是这里接受的不精确，数据库侧的原子自增保证计数只增不丢。
func (s *visitService) shouldCount(ctx context.Context, key string, ttl time.Duration) bool {
	_, err := s.cache.Get(ctx, key)
	if err == nil {
		// 窗口内已经计过
		return false
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		if !s.failOpen {
			log.Warnf("访问账本不可用，按配置跳过本次计数: %v", err)
			return false
		}
		log.Warnf("访问账本不可用，按配置视为首次访问: %v", err)
	}

	if setErr := s.cache.Set(ctx, key, "1", ttl); setErr != nil {
		// 标记写入失败只会让后续请求重复计数，窗口过期后自行恢复
		log.Warnf("写入访问账本失败: %v", setErr)
	}
	return true
}
