package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SlpAus/takp-character-ranking-backend/api"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/config"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/health"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/shutdown"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/startup"
	"github.com/SlpAus/takp-character-ranking-backend/internal/ranking"
	"github.com/SlpAus/takp-character-ranking-backend/pkg/lifecycle"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 构建职业规则集，校验失败直接拒绝启动
	if err := ranking.ConfigureModule(cfg.Ranking); err != nil {
		panic(fmt.Sprintf("排名规则校验失败，无法启动: %v", err))
	}

	// 3. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 4. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 5. 异步启动后台的持续健康检查器
	go health.StartRedisHealthCheck()

	r := gin.Default()

	allowedOrigins := cfg.Server.Cors.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	// 6. 创建两阶段停机的生命周期管理器并启动后台调度器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()
	schedulerHandle, err := gracefulMgr.NewServiceHandle("排名重算调度器")
	if err != nil {
		panic(fmt.Sprintf("注册后台服务失败: %v", err))
	}
	go ranking.StartRecomputeScheduler(schedulerHandle)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}
	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 7. 阻塞等待停机信号，协调优雅停机和最终快照
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
