package service

import (
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"

	"ai-digest/internal/model"
)

var (
	// ErrNotAnArray 响应不是JSON数组,整批作废
	ErrNotAnArray = errors.New("AI response is not a JSON array")
	// ErrMalformedJSON JSON解析失败,整批作废
	ErrMalformedJSON = errors.New("AI response is not valid JSON")
)

// 模型输出可能包着```json ... ```代码围栏
var fenceRegexp = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

// ParseArticles 解析并校验生成的文章数组
// 单条字段不合法只丢弃该条并计数,不影响整批;返回合法文章(保持原顺序)和丢弃数量
func ParseArticles(raw string) ([]model.Article, int, error) {
	text := strings.TrimSpace(raw)

	if m := fenceRegexp.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, 0, ErrNotAnArray
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, 0, ErrMalformedJSON
	}

	articles := make([]model.Article, 0, len(items))
	dropped := 0

	for i, item := range items {
		article, ok := validateArticle(item)
		if !ok {
			log.Printf("[Parser] 第%d条字段校验失败, 已丢弃", i+1)
			dropped++
			continue
		}
		articles = append(articles, article)
	}

	return articles, dropped, nil
}

// validateArticle 校验单条候选的字段类型
// trendingScore越界不做裁剪,按原值放行
func validateArticle(item map[string]any) (model.Article, bool) {
	title, ok := nonEmptyString(item["title"])
	if !ok {
		return model.Article{}, false
	}
	description, ok := nonEmptyString(item["description"])
	if !ok {
		return model.Article{}, false
	}
	sourceName, ok := nonEmptyString(item["sourceName"])
	if !ok {
		return model.Article{}, false
	}
	url, ok := nonEmptyString(item["url"])
	if !ok {
		return model.Article{}, false
	}

	score, ok := item["trendingScore"].(float64)
	if !ok {
		return model.Article{}, false
	}

	rawTags, ok := item["tags"].([]any)
	if !ok {
		return model.Article{}, false
	}
	tags := make([]string, 0, len(rawTags))
	for _, t := range rawTags {
		tag, ok := t.(string)
		if !ok {
			return model.Article{}, false
		}
		tags = append(tags, tag)
	}

	article := model.Article{
		Title:         title,
		Description:   description,
		SourceName:    sourceName,
		URL:           url,
		TrendingScore: score,
		Tags:          tags,
	}

	// 模型给的id只是批内序号,保存时会被替换
	if id, ok := item["id"].(string); ok {
		article.ID = id
	}

	return article, true
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
