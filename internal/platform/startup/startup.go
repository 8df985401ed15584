package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/metadata"
	"github.com/SlpAus/takp-character-ranking-backend/internal/ranking"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 打开数据表、装载内存仓库、执行第一轮排名计算填充Redis。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := item.PrimeCachedDB(); err != nil {
		return err
	}
	if err := character.PrimeCachedDB(); err != nil {
		return err
	}
	if err := ranking.PrimeDB(); err != nil {
		return err
	}
	if runID, err := metadata.GetSnapshotRunID(database.DB); err == nil && runID != "" {
		if computedAt, err := metadata.GetSnapshotComputedAt(database.DB); err == nil {
			fmt.Printf("检测到上次落库的排名快照: run_id=%s, 计算于 %s。\n", runID, computedAt.Format(time.RFC3339))
		}
	}
	if err := ranking.WarmupCache(context.Background()); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis排名投影。
// 重新装载内存仓库后全量重算，结束时触发一次快照落盘。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	err := func() error {
		item.LockRepository()
		defer item.UnlockRepository()
		if err := item.InitializeRepository(); err != nil {
			return err
		}

		character.LockRepository()
		defer character.UnlockRepository()
		return character.InitializeRepository()
	}()
	if err != nil {
		return err
	}

	if err := ranking.WarmupCache(context.Background()); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成，正在触发一次新的数据快照...")
	if err := ranking.CreateConsistentSnapshotInDB(context.Background()); err != nil {
		fmt.Printf("警告: 缓存热重建后的快照创建失败: %v\n", err)
		return nil
	}
	fmt.Println("快照创建成功！")
	return nil
}
