package service

import (
	"fmt"
	"strings"

	"ai-digest/internal/model"
)

// 按顺序匹配已知媒体,第一个命中生效
var sourceRules = []struct {
	keyword  string
	uri      string
	titleFmt string
}{
	{"techcrunch", "https://techcrunch.com/category/artificial-intelligence/", "Find similar AI news and %s coverage on TechCrunch"},
	{"verge", "https://www.theverge.com/ai-artificial-intelligence", "Explore more AI coverage related to %s on The Verge"},
	{"openai", "https://openai.com/blog/", "Learn more about OpenAI research related to %s"},
	{"google", "https://blog.google/technology/ai/", "Explore Google AI developments related to %s"},
	{"meta", "https://ai.meta.com/blog/", "Find Meta AI research related to %s"},
	{"arxiv", "https://arxiv.org/list/cs.AI/recent", "Find academic papers related to %s on ArXiv"},
	{"research", "https://arxiv.org/list/cs.AI/recent", "Find academic papers related to %s on ArXiv"},
	{"hugging face", "https://huggingface.co/blog", "Explore open-source AI developments on Hugging Face related to %s"},
	{"github", "https://github.com/topics/artificial-intelligence", "Find AI-related open-source projects on GitHub related to %s"},
	{"wired", "https://www.wired.com/tag/artificial-intelligence/", "Read industry analysis on Wired related to %s"},
	{"venturebeat", "https://venturebeat.com/ai/", "Find AI startup and funding news on VentureBeat related to %s"},
	{"x (twitter)", "https://x.com/search?q=%23AI", "See AI discussions on X (Twitter) related to %s"},
}

// BuildSource 根据sourceName推导引用来源,未命中时退回社区讨论页
func BuildSource(article model.Article) model.GroundingSource {
	name := strings.ToLower(article.SourceName)
	title := strings.ToLower(article.Title)

	for _, rule := range sourceRules {
		if strings.Contains(name, rule.keyword) {
			return model.GroundingSource{
				URI:   rule.uri,
				Title: fmt.Sprintf(rule.titleFmt, title),
			}
		}
	}

	return model.GroundingSource{
		URI:   "https://news.ycombinator.com/",
		Title: fmt.Sprintf("Discuss %s with the tech community on Hacker News", title),
	}
}

// BuildSources 为整批文章逐条推导引用来源
func BuildSources(articles []model.Article) []model.GroundingSource {
	sources := make([]model.GroundingSource, 0, len(articles))
	for _, article := range articles {
		sources = append(sources, BuildSource(article))
	}
	return sources
}
