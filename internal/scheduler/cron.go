package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ai-digest/config"
	"ai-digest/internal/service"
)

type Scheduler struct {
	cron          *cron.Cron
	digest        *service.DigestService
	store         *service.ArticleStore
	limiter       *service.RateLimiter
	config        config.CronConfig
	digestEntryID cron.EntryID
}

func NewScheduler(digest *service.DigestService, store *service.ArticleStore, limiter *service.RateLimiter, cfg config.CronConfig) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		digest:  digest,
		store:   store,
		limiter: limiter,
		config:  cfg,
	}
}

func (s *Scheduler) Start() {
	// 定时生成并保存摘要
	s.digestEntryID, _ = s.cron.AddFunc(s.config.DigestInterval, s.runDigest)

	s.cron.Start()
	log.Printf("[Cron] Scheduler started (digest: %s)", s.config.DigestInterval)
}

// runDigest 和HTTP入口共用同一个限流器,冷却中直接跳过本轮
func (s *Scheduler) runDigest() {
	allowed, remaining := s.limiter.CheckAndRecord(time.Now())
	if !allowed {
		log.Printf("[Cron] 冷却中(剩余%ds), 跳过本轮生成", remaining)
		return
	}

	log.Println("[Cron] Generating digest...")
	result := s.digest.Generate(context.Background())

	saved, err := s.store.SaveArticles(result.Articles)
	if err != nil {
		log.Printf("[Cron] 保存失败: %v", err)
		return
	}

	log.Printf("[Cron] 保存%d篇文章 (fallback=%v)", saved, result.Fallback)
}

// GetNextDigestTime 获取下次生成时间
func (s *Scheduler) GetNextDigestTime() time.Time {
	entry := s.cron.Entry(s.digestEntryID)
	return entry.Next
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
