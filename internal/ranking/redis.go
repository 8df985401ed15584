package ranking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/metadata"
)

// Redis键布局。
// 每个职业一个有序集合存名次，两个哈希分别存角色基础信息和得分明细。
// 整个投影可以随时从SQLite重建，Redis里没有唯一数据。
const (
	classRankingKeyPrefix = "ranking:class:"
	characterInfoKey      = "ranking:character_info"
	breakdownKey          = "ranking:breakdown"
	exclusionsKey         = "ranking:exclusions"
)

func classRankingKey(class character.Class) string {
	return classRankingKeyPrefix + string(class)
}

// characterInfoDTO 是写入info哈希的载荷。
type characterInfoDTO struct {
	Name  string `json:"name"`
	Guild string `json:"guild"`
	Race  string `json:"race"`
	Level int    `json:"level"`
	Class string `json:"class"`
	Rank  int    `json:"rank"`
}

// storeResultInRedis 把一轮计算结果原子性地写入Redis。
// 先在流水线里删掉旧键再写新值，最后写入run_id，
// 健康检查靠run_id的变化识别这次重建。
func storeResultInRedis(result *Result, runID string) error {
	pipe := database.RDB.TxPipeline()

	for _, class := range character.AllClasses {
		pipe.Del(database.Ctx, classRankingKey(class))
	}
	pipe.Del(database.Ctx, characterInfoKey, breakdownKey, exclusionsKey)

	for class, ranked := range result.Classes {
		key := classRankingKey(class)
		for _, rc := range ranked {
			pipe.ZAdd(database.Ctx, key, redis.Z{Score: rc.Score, Member: rc.CharacterID})

			info, err := json.Marshal(characterInfoDTO{
				Name:  rc.Name,
				Guild: rc.Guild,
				Race:  rc.Race,
				Level: rc.Level,
				Class: string(rc.Class),
				Rank:  rc.Rank,
			})
			if err != nil {
				return fmt.Errorf("序列化角色 %s 的信息失败: %w", rc.CharacterID, err)
			}
			pipe.HSet(database.Ctx, characterInfoKey, rc.CharacterID, info)

			breakdown, err := json.Marshal(rc.Breakdown)
			if err != nil {
				return fmt.Errorf("序列化角色 %s 的得分明细失败: %w", rc.CharacterID, err)
			}
			pipe.HSet(database.Ctx, breakdownKey, rc.CharacterID, breakdown)
		}
	}

	if len(result.Exclusions) > 0 {
		payload, err := json.Marshal(result.Exclusions)
		if err != nil {
			return fmt.Errorf("序列化排除名单失败: %w", err)
		}
		pipe.Set(database.Ctx, exclusionsKey, payload, 0)
	}

	pipe.Set(database.Ctx, metadata.RedisRunIDKey, runID, 0)
	pipe.Set(database.Ctx, metadata.RedisComputedAtKey, time.Now().UTC().Format(time.RFC3339), 0)

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("写入Redis排名投影失败: %w", err)
	}
	return nil
}
