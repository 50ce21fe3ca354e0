package service

import (
	"time"

	"ai-digest/internal/model"
)

// FallbackArticles 生成或解析失败时的兜底文章,固定5条,全部指向长期有效的页面
func FallbackArticles(now time.Time) []model.Article {
	articles := []model.Article{
		{
			ID:            "1",
			Title:         "AI Industry Discussions Heat Up on X as New Models Launch",
			Description:   "The AI community on X (formerly Twitter) is buzzing with discussions about the latest model releases and their implications for the industry. Developers and researchers are sharing insights on performance benchmarks and real-world applications.",
			SourceName:    "X (Twitter)",
			URL:           "https://x.com/search?q=%23AI",
			TrendingScore: 0.92,
			Tags:          []string{"X", "Twitter", "AI Community", "Discussion"},
		},
		{
			ID:            "2",
			Title:         "TechCrunch Reports on Latest AI Startup Funding Round",
			Description:   "TechCrunch covers the latest developments in AI startup funding, highlighting emerging companies working on innovative machine learning solutions and their potential market impact.",
			SourceName:    "TechCrunch",
			URL:           "https://techcrunch.com/category/artificial-intelligence/",
			TrendingScore: 0.88,
			Tags:          []string{"TechCrunch", "Startups", "Funding", "AI Industry"},
		},
		{
			ID:            "3",
			Title:         "Hacker News Community Debates AI Ethics and Implementation",
			Description:   "The Hacker News community engages in thoughtful discussions about AI ethics, implementation challenges, and the future of artificial intelligence in various industries.",
			SourceName:    "Hacker News",
			URL:           "https://news.ycombinator.com/",
			TrendingScore: 0.85,
			Tags:          []string{"Hacker News", "AI Ethics", "Community", "Discussion"},
		},
		{
			ID:            "4",
			Title:         "Hugging Face Releases New Open Source AI Tools",
			Description:   "Hugging Face announces new open-source tools and models for the AI community, focusing on democratizing access to advanced machine learning capabilities and fostering collaboration.",
			SourceName:    "Hugging Face",
			URL:           "https://huggingface.co/blog",
			TrendingScore: 0.81,
			Tags:          []string{"Hugging Face", "Open Source", "AI Tools", "Community"},
		},
		{
			ID:            "5",
			Title:         "The Verge Explores AI's Impact on Creative Industries",
			Description:   "The Verge investigates how artificial intelligence is transforming creative industries, from content generation to design automation, and the implications for creative professionals.",
			SourceName:    "The Verge",
			URL:           "https://www.theverge.com/ai-artificial-intelligence",
			TrendingScore: 0.78,
			Tags:          []string{"The Verge", "Creative AI", "Industry Impact", "Content"},
		},
	}

	for i := range articles {
		articles[i].CreatedAt = now
		articles[i].UpdatedAt = now
	}

	return articles
}
