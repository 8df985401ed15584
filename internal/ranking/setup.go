package ranking

import (
	"context"
	"fmt"

	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
)

// PrimeDB 确保排名快照表存在。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&ScoreSnapshot{}); err != nil {
		return fmt.Errorf("迁移排名快照表失败: %w", err)
	}
	return nil
}

// WarmupCache 执行一轮完整计算并填充Redis投影。
// 启动时和Redis故障恢复后都走这条路径。
func WarmupCache(ctx context.Context) error {
	runID, err := RecomputeRankings(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("排名缓存预热完成: run_id=%s。\n", runID)
	return nil
}
