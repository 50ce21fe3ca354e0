package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-digest/internal/model"
)

const (
	// 单次保存的文章数量上限
	maxBatchSize = 20
	// 序列化后的请求体上限
	maxPayloadBytes = 1024 * 1024
	// 列表查询默认条数
	defaultListLimit = 20
)

var (
	// ErrNoArticles 请求里没有文章
	ErrNoArticles = errors.New("no articles provided")
	// ErrBatchTooLarge 超出单批数量上限
	ErrBatchTooLarge = errors.New("too many articles")
	// ErrPayloadTooLarge 超出请求体大小上限
	ErrPayloadTooLarge = errors.New("request body too large")
)

// ArticleStore 文章持久化
type ArticleStore struct {
	db *gorm.DB
}

func NewArticleStore(db *gorm.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// SaveArticles 校验并保存一批文章,返回实际保存条数
// ID和时间戳由这里统一分配,整批共用同一个时间;不合法的候选单条跳过
func (s *ArticleStore) SaveArticles(candidates []model.Article) (int, error) {
	if len(candidates) == 0 {
		return 0, ErrNoArticles
	}
	if len(candidates) > maxBatchSize {
		return 0, ErrBatchTooLarge
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		return 0, err
	}
	if len(payload) > maxPayloadBytes {
		return 0, ErrPayloadTooLarge
	}

	now := time.Now()
	articles := make([]model.Article, 0, len(candidates))

	for i, candidate := range candidates {
		// 不信任调用方,入库前再校验一次
		if !isValidCandidate(candidate) {
			log.Printf("[Store] 第%d条候选不合法, 已跳过", i+1)
			continue
		}

		candidate.ID = uuid.NewString()
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		articles = append(articles, candidate)
	}

	if len(articles) == 0 {
		return 0, ErrNoArticles
	}

	// 整批一个事务,全部成功或全部回滚
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&articles).Error
	}); err != nil {
		return 0, err
	}

	return len(articles), nil
}

// ListArticles 按创建时间倒序取最近的文章
func (s *ArticleStore) ListArticles(limit int) ([]model.Article, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	var articles []model.Article
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

// ClearArticles 清空全部文章,返回删除条数
// 一次批量删除,超大数据集没有分块(沿用存储层单批上限)
func (s *ArticleStore) ClearArticles() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&model.Article{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// isValidCandidate 与解析阶段相同的字段契约
func isValidCandidate(a model.Article) bool {
	return a.Title != "" &&
		a.Description != "" &&
		a.SourceName != "" &&
		a.URL != "" &&
		a.Tags != nil
}
