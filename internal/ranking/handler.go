package ranking

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
)

// GetClasses 处理 GET /api/rankings/classes 请求
func GetClasses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"classes": GetClassSummaries()})
}

// GetClassRanking 处理 GET /api/rankings/:class 请求
func GetClassRanking(c *gin.Context) {
	class, err := character.ParseClass(c.Param("class"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "排名服务暂时不可用"})
		return
	}

	entries, err := GetClassLeaderboard(class)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取排名失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"class":   string(class),
		"ranking": entries,
	})
}

// GetCharacterDetailHandler 处理 GET /api/rankings/:class/:id 请求
func GetCharacterDetailHandler(c *gin.Context) {
	class, err := character.ParseClass(c.Param("class"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "排名服务暂时不可用"})
		return
	}

	detail, err := GetCharacterDetail(class, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取角色明细失败"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该职业下不存在这个角色"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetCharacterGearHandler 处理 GET /api/rankings/:class/:id/gear 请求
func GetCharacterGearHandler(c *gin.Context) {
	if _, err := character.ParseClass(c.Param("class")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	gear, ok := GetCharacterGear(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "角色不存在"})
		return
	}
	c.JSON(http.StatusOK, gear)
}

// GetExclusionsHandler 处理 GET /api/rankings/exclusions 请求
func GetExclusionsHandler(c *gin.Context) {
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "排名服务暂时不可用"})
		return
	}
	exclusions, err := GetExclusions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取排除名单失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exclusions": exclusions})
}

// TriggerRecompute 处理 POST /api/rankings/recompute 请求
func TriggerRecompute(c *gin.Context) {
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Redis不可用，无法重算排名"})
		return
	}

	runID, err := RecomputeRankings(c.Request.Context())
	if err != nil {
		fmt.Printf("手动重算失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "重算排名失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "排名已重新计算",
		"run_id":  runID,
	})
}
