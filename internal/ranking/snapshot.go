package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/metadata"
)

// CreateConsistentSnapshotInDB 把Redis中的排名投影原子地落盘到SQLite。
// 先用事务流水线一次性读出全部数据，再在一个数据库事务里整体替换旧快照，
// 两端各自原子，落盘的永远是同一轮计算的完整结果。
func CreateConsistentSnapshotInDB(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	pipe := database.RDB.TxPipeline()
	runIDCmd := pipe.Get(database.Ctx, metadata.RedisRunIDKey)
	computedAtCmd := pipe.Get(database.Ctx, metadata.RedisComputedAtKey)
	infoCmd := pipe.HGetAll(database.Ctx, characterInfoKey)
	breakdownCmd := pipe.HGetAll(database.Ctx, breakdownKey)
	classCmds := make(map[character.Class]*redis.StringSliceCmd, len(character.AllClasses))
	for _, class := range character.AllClasses {
		classCmds[class] = pipe.ZRevRange(database.Ctx, classRankingKey(class), 0, -1)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil && err != redis.Nil {
		return fmt.Errorf("无法从Redis原子地读取排名快照: %w", err)
	}

	runID, err := runIDCmd.Result()
	if err != nil {
		if err == redis.Nil {
			fmt.Println("快照: Redis中还没有任何一轮计算结果，跳过落盘。")
			return nil
		}
		return fmt.Errorf("读取run_id失败: %w", err)
	}
	infoMap, err := infoCmd.Result()
	if err != nil {
		return fmt.Errorf("读取角色信息哈希失败: %w", err)
	}
	breakdownMap, err := breakdownCmd.Result()
	if err != nil {
		return fmt.Errorf("读取得分明细哈希失败: %w", err)
	}

	computedAt := time.Now().UTC()
	if str, err := computedAtCmd.Result(); err == nil {
		if parsed, parseErr := time.Parse(time.RFC3339, str); parseErr == nil {
			computedAt = parsed
		}
	}

	rows := make([]ScoreSnapshot, 0, len(infoMap))
	for _, class := range character.AllClasses {
		members, err := classCmds[class].Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("读取职业 %s 的排名失败: %w", class, err)
		}
		for _, characterID := range members {
			infoJSON, ok := infoMap[characterID]
			if !ok {
				fmt.Printf("快照警告: 角色 %s 缺少信息记录，跳过该行。\n", characterID)
				continue
			}
			var info characterInfoDTO
			if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
				fmt.Printf("快照警告: 解析角色 %s 的信息失败，跳过该行: %v\n", characterID, err)
				continue
			}

			var score float64
			if breakdownJSON, ok := breakdownMap[characterID]; ok {
				var breakdown ScoreBreakdown
				if err := json.Unmarshal([]byte(breakdownJSON), &breakdown); err == nil {
					score = breakdown.FinalScore
				}
			}

			rows = append(rows, ScoreSnapshot{
				RunID:       runID,
				CharacterID: characterID,
				Class:       string(class),
				Rank:        info.Rank,
				Score:       score,
				Breakdown:   breakdownMap[characterID],
			})
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return persistSnapshotRows(database.DB, rows, runID, computedAt)
}

// persistSnapshotRows 在一个事务里用新一轮的快照行整体替换上一轮。
// 替换必须是物理删除：快照表每轮全量重写，软删除只会让旧轮次无限堆积。
func persistSnapshotRows(db *gorm.DB, rows []ScoreSnapshot, runID string, computedAt time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&ScoreSnapshot{}).Error; err != nil {
			return fmt.Errorf("清理上一轮快照失败: %w", err)
		}

		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return fmt.Errorf("写入角色 %s 的快照行失败: %w", rows[i].CharacterID, err)
			}
		}

		if err := metadata.SetSnapshotRunID(tx, runID); err != nil {
			return fmt.Errorf("更新快照run_id失败: %w", err)
		}
		if err := metadata.SetSnapshotComputedAt(tx, computedAt); err != nil {
			return fmt.Errorf("更新快照时间戳失败: %w", err)
		}
		return nil
	})
}
