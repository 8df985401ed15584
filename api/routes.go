package api

import (
	"github.com/gin-gonic/gin"

	"github.com/SlpAus/takp-character-ranking-backend/internal/ranking"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 排名相关的路由组 /api/rankings
		rankingRoutes := api.Group("/rankings")
		{
			rankingRoutes.GET("/classes", ranking.GetClasses)
			rankingRoutes.GET("/exclusions", ranking.GetExclusionsHandler)
			rankingRoutes.GET("/:class", ranking.GetClassRanking)
			rankingRoutes.GET("/:class/:id", ranking.GetCharacterDetailHandler)
			rankingRoutes.GET("/:class/:id/gear", ranking.GetCharacterGearHandler)
			rankingRoutes.POST("/recompute", ranking.TriggerRecompute)
		}
	}
}
