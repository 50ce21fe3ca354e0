package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-digest/internal/model"
)

// SubscriberService 邮件订阅管理
type SubscriberService struct {
	db *gorm.DB
}

func NewSubscriberService(db *gorm.DB) *SubscriberService {
	return &SubscriberService{db: db}
}

// Subscribe 登记订阅邮箱,重复订阅不报错
func (s *SubscriberService) Subscribe(email string) error {
	subscriber := model.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now(),
	}

	return s.db.Where("email = ?", email).FirstOrCreate(&subscriber).Error
}

// Unsubscribe 取消订阅
func (s *SubscriberService) Unsubscribe(email string) error {
	return s.db.Where("email = ?", email).Delete(&model.Subscriber{}).Error
}

// Count 当前订阅人数
func (s *SubscriberService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.Subscriber{}).Count(&count).Error
	return count, err
}
