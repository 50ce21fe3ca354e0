package service

import (
	"context"
	"log"
	"time"

	"ai-digest/internal/model"
)

// DigestResult 一次生成的结果,Fallback标记这批是否兜底数据
type DigestResult struct {
	Articles []model.Article         `json:"articles"`
	Sources  []model.GroundingSource `json:"sources"`
	Fallback bool                    `json:"-"`
}

type DigestService struct {
	gemini *GeminiService
}

func NewDigestService(gemini *GeminiService) *DigestService {
	return &DigestService{gemini: gemini}
}

// Generate 生成一批摘要文章
// 生成或解析失败时整批切换到兜底数据,调用方永远拿到结构合法的一批
func (s *DigestService) Generate(ctx context.Context) *DigestResult {
	raw, err := s.gemini.Generate(ctx)
	if err != nil {
		log.Printf("[Digest] 生成失败, 使用兜底数据: %v", err)
		return s.fallbackResult()
	}

	articles, dropped, err := ParseArticles(raw)
	if err != nil {
		log.Printf("[Digest] 解析失败, 使用兜底数据: %v", err)
		return s.fallbackResult()
	}

	if dropped > 0 {
		log.Printf("[Digest] 丢弃%d条不合法文章, 保留%d条", dropped, len(articles))
	}

	return &DigestResult{
		Articles: articles,
		Sources:  BuildSources(articles),
	}
}

// fallbackResult 兜底批次,引用直接指向文章自身的URL
func (s *DigestService) fallbackResult() *DigestResult {
	articles := FallbackArticles(time.Now())

	sources := make([]model.GroundingSource, 0, len(articles))
	for _, article := range articles {
		sources = append(sources, model.GroundingSource{
			URI:   article.URL,
			Title: article.Title,
		})
	}

	return &DigestResult{
		Articles: articles,
		Sources:  sources,
		Fallback: true,
	}
}
