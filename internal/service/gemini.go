package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"ai-digest/config"
)

// ErrEmptyResponse Gemini返回内容为空
var ErrEmptyResponse = errors.New("empty response from Gemini")

// 请求超过该时长只记录日志,不主动取消
const slowRequestThreshold = 30 * time.Second

// 生成摘要的固定提示词,要求5篇覆盖不同类别的文章,只返回JSON数组
const digestPrompt = `Create 5 *distinct and diverse* AI news articles, each representing a different, unique aspect of the AI industry. Ensure the content is realistic, current, and naturally connects to its source. Avoid repetition in topics or themes across the articles.

Cover these *specific and varied* categories:
1. A major tech company AI announcement (e.g., Google, Microsoft, Meta, Apple, Amazon, IBM, etc.) - focus on a *new product, research breakthrough, or significant strategic shift*.
2. An AI startup or funding news (from TechCrunch, VentureBeat, Axios Pro, etc.) - highlight a *different startup, funding round, or acquisition*.
3. Academic research or paper (from ArXiv, a specific university, or a research institution) - describe a *novel algorithm, a significant finding, or a new application of AI*.
4. Open source AI development (from Hugging Face, GitHub, a specific open-source project, etc.) - feature a *new library, model release, or community initiative*.
5. AI industry analysis or trends (from The Verge, Wired, Bloomberg, Reuters, etc.) - discuss a *unique market trend, regulatory development, or societal impact of AI*.

For each article:
- id: unique identifier (1-5)
- title: specific, engaging headline that matches the source type and *reflects the unique topic*.
- description: 2-3 sentences with specific details about the development, *distinct from other articles*.
- sourceName: publication name that matches the content type
- url: appropriate URL for that type of content and source
- trendingScore: 0.6-0.95
- tags: 2-4 relevant tags, *specific to the article's unique topic*

URL Guidelines (use the most appropriate):
- Company announcements: https://blog.google/technology/ai/, https://ai.meta.com/blog/, https://openai.com/blog/
- Startup/funding news: https://techcrunch.com/category/artificial-intelligence/, https://venturebeat.com/ai/
- Academic content: https://arxiv.org/list/cs.AI/recent
- Open source: https://huggingface.co/blog, https://github.com/topics/artificial-intelligence
- Industry analysis: https://www.theverge.com/ai-artificial-intelligence, https://www.wired.com/tag/artificial-intelligence/

IMPORTANT: The content must logically match the source - don't put startup funding news on OpenAI's blog, etc.

Return ONLY valid JSON:
[{"id":"1","title":"...","description":"...","sourceName":"...","url":"...","trendingScore":0.8,"tags":["AI","Tech"]}]`

type GeminiService struct {
	cfg    config.GeminiConfig
	client *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewGeminiService(cfg config.GeminiConfig) *GeminiService {
	return &GeminiService{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// HasAPIKey 是否已配置API密钥
func (s *GeminiService) HasAPIKey() bool {
	return s.cfg.APIKey != ""
}

// Generate 调用Gemini生成一批文章候选,返回原始文本
func (s *GeminiService) Generate(ctx context.Context) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: digestPrompt}}},
		},
	}

	jsonBody, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", s.cfg.BaseURL, s.cfg.Model, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if elapsed := time.Since(start); elapsed > slowRequestThreshold {
		log.Printf("[Gemini] 请求耗时 %s, 超过 %s", elapsed, slowRequestThreshold)
	}
	if err != nil {
		return "", fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API返回错误 (%d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
