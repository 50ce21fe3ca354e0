package model

import "time"

// Article AI资讯文章,保存时由存储层分配ID和时间戳
type Article struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:500;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	SourceName    string    `gorm:"size:255;not null" json:"sourceName"`
	URL           string    `gorm:"size:500;not null" json:"url"`
	TrendingScore float64   `json:"trendingScore"`
	Tags          []string  `gorm:"serializer:json" json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GroundingSource 文章引用来源,只在生成响应中返回,不落库
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}
