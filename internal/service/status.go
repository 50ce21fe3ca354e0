package service

import (
	"time"

	"gorm.io/gorm"

	"ai-digest/internal/model"
)

type StatusService struct {
	db *gorm.DB
}

type SystemStatus struct {
	// 文章统计
	TotalArticles int64 `json:"total_articles"`

	// 订阅统计
	TotalSubscribers int64 `json:"total_subscribers"`

	// 定时任务信息
	NextDigestTime time.Time `json:"next_digest_time"`
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// GetSystemStatus 获取系统状态
func (s *StatusService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{}

	// 统计文章
	s.db.Model(&model.Article{}).Count(&status.TotalArticles)

	// 统计订阅
	s.db.Model(&model.Subscriber{}).Count(&status.TotalSubscribers)

	return status, nil
}
