package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ai-digest/config"
	"ai-digest/internal/handler"
	"ai-digest/internal/model"
	"ai-digest/internal/scheduler"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化数据库
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	// 自动迁移
	db.AutoMigrate(&model.Article{}, &model.Subscriber{})

	// 初始化Gin
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册路由
	h := handler.NewHandler(db, cfg)
	h.RegisterRoutes(r)

	// 启动定时任务,和HTTP入口共用限流器
	sched := scheduler.NewScheduler(h.Digest(), h.Store(), h.Limiter(), cfg.Cron)
	sched.Start()
	defer sched.Stop()

	h.SetScheduler(sched)

	// 启动服务
	addr := cfg.GetServerAddress()
	log.Println("Server starting on", addr)
	r.Run(addr)
}
