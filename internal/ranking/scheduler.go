package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/config"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
	"github.com/SlpAus/takp-character-ranking-backend/pkg/lifecycle"
)

// StartRecomputeScheduler 启动一个后台Goroutine来定期重算排名。
// 每次成功重算后顺带把结果落盘，保证冷启动数据不会太陈旧。
func StartRecomputeScheduler(handle *lifecycle.Handle) {
	defer handle.Close()

	interval := time.Duration(config.Cfg.Ranking.RecomputeIntervalMinutes) * time.Minute
	fmt.Printf("排名重算调度器已启动，间隔 %v。\n", interval)

	for {
		// 用可中断的休眠代替ticker，收到停机信号时能立刻退出。
		if err := handle.Sleep(interval); err != nil {
			fmt.Printf("重算调度器: 休眠被中断，正在关闭... (%v)\n", err)
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("重算调度器: 检测到Redis不可用，跳过本次重算。")
			continue
		}

		if _, err := RecomputeRankings(handle.Ctx()); err != nil {
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("重算调度器错误: 重算排名失败: %v\n", err)
			}
			continue
		}

		if err := CreateConsistentSnapshotInDB(handle.Ctx()); err != nil {
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("重算调度器错误: 快照落盘失败: %v\n", err)
			}
		}
	}
}
