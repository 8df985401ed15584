package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/config"
	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
)

// 排名只覆盖满级角色，低等级角色的属性没有可比性。
const requiredLevel = 65

// ruleSet 是当前生效的职业规则集，由ConfigureModule在启动时构建。
var ruleSet *RuleSet

// ConfigureModule 根据配置构建职业规则集。
// 规则校验失败会返回ConfigInvariantError，调用方应当拒绝启动。
func ConfigureModule(cfg config.RankingConfig) error {
	rs, err := BuildRuleSet(cfg)
	if err != nil {
		return err
	}
	ruleSet = rs
	return nil
}

// RecomputeRankings 对仓库中的角色种群执行一轮完整计算并写入Redis。
// 返回这一轮的run_id。相同的仓库内容重复调用会产出完全相同的排名。
func RecomputeRankings(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	if ruleSet == nil {
		return "", fmt.Errorf("排名规则集尚未初始化")
	}

	snapshots := character.GetAllSnapshots()
	population := make([]character.Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if s.Character.Level == requiredLevel {
			population = append(population, s)
		}
	}
	fmt.Printf("排名计算开始: 仓库共 %d 个角色，其中 %d 个满级角色进入本轮。\n",
		character.GetCharacterCount(), len(population))

	result := RankPopulation(population, ruleSet)

	runUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成run_id失败: %w", err)
	}
	runID := runUUID.String()

	if err := storeResultInRedis(result, runID); err != nil {
		return "", err
	}

	ranked := 0
	for _, list := range result.Classes {
		ranked += len(list)
	}
	fmt.Printf("排名计算完成: run_id=%s, 参与角色 %d 个, 排除 %d 个。\n", runID, ranked, len(result.Exclusions))
	return runID, nil
}

// --- 查询服务 ---

// ClassSummaryDTO 是职业列表接口的单个条目。
type ClassSummaryDTO struct {
	Class string `json:"class"`
	Size  int    `json:"size"`
}

// LeaderboardEntryDTO 是职业排名接口的单行。
type LeaderboardEntryDTO struct {
	Rank        int     `json:"rank"`
	CharacterID string  `json:"character_id"`
	Name        string  `json:"name"`
	Guild       string  `json:"guild"`
	Race        string  `json:"race"`
	Level       int     `json:"level"`
	Score       float64 `json:"score"`
}

// CharacterDetailDTO 是单个角色的完整得分明细。
type CharacterDetailDTO struct {
	CharacterID string          `json:"character_id"`
	Name        string          `json:"name"`
	Guild       string          `json:"guild"`
	Race        string          `json:"race"`
	Level       int             `json:"level"`
	Class       string          `json:"class"`
	Rank        int             `json:"rank"`
	Breakdown   *ScoreBreakdown `json:"breakdown"`
}

// GearDTO 是角色装备清单和聚焦档案的组合。
type GearDTO struct {
	CharacterID string                   `json:"character_id"`
	Inventory   []character.EquippedItem `json:"inventory"`
	Profile     *item.GearFocusProfile   `json:"profile"`
}

// GetClassSummaries 返回全部职业和各自的种群规模。
func GetClassSummaries() []ClassSummaryDTO {
	summaries := make([]ClassSummaryDTO, 0, len(character.AllClasses))
	for _, class := range character.AllClasses {
		summaries = append(summaries, ClassSummaryDTO{
			Class: string(class),
			Size:  character.GetClassSize(class),
		})
	}
	return summaries
}

// GetClassLeaderboard 从Redis读取一个职业的完整排名。
func GetClassLeaderboard(class character.Class) ([]LeaderboardEntryDTO, error) {
	ids, err := database.RDB.ZRevRange(database.Ctx, classRankingKey(class), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("读取职业 %s 的排名失败: %w", class, err)
	}
	if len(ids) == 0 {
		return []LeaderboardEntryDTO{}, nil
	}

	scoresCmd := database.RDB.ZMScore(database.Ctx, classRankingKey(class), ids...)
	infosCmd := database.RDB.HMGet(database.Ctx, characterInfoKey, ids...)
	scores, err := scoresCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("读取职业 %s 的得分失败: %w", class, err)
	}
	infos, err := infosCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("读取职业 %s 的角色信息失败: %w", class, err)
	}

	entries := make([]LeaderboardEntryDTO, 0, len(ids))
	for i, id := range ids {
		infoJSON, ok := infos[i].(string)
		if !ok {
			fmt.Printf("排名警告: 角色 %s 缺少信息记录，跳过该行。\n", id)
			continue
		}
		var info characterInfoDTO
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			fmt.Printf("排名警告: 解析角色 %s 的信息失败，跳过该行: %v\n", id, err)
			continue
		}
		entries = append(entries, LeaderboardEntryDTO{
			Rank:        info.Rank,
			CharacterID: id,
			Name:        info.Name,
			Guild:       info.Guild,
			Race:        info.Race,
			Level:       info.Level,
			Score:       scores[i],
		})
	}

	// 有序集合对同分成员按成员名排序，这里恢复计算时定下的名次顺序。
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Rank < entries[b].Rank
	})
	return entries, nil
}

// GetCharacterDetail 返回单个角色的名次和逐指标明细。
// 角色不存在或不属于请求的职业时返回 (nil, nil)。
func GetCharacterDetail(class character.Class, characterID string) (*CharacterDetailDTO, error) {
	pipe := database.RDB.TxPipeline()
	infoCmd := pipe.HGet(database.Ctx, characterInfoKey, characterID)
	breakdownCmd := pipe.HGet(database.Ctx, breakdownKey, characterID)
	if _, err := pipe.Exec(database.Ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("读取角色 %s 的明细失败: %w", characterID, err)
	}

	infoJSON, err := infoCmd.Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取角色 %s 的信息失败: %w", characterID, err)
	}
	var info characterInfoDTO
	if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
		return nil, fmt.Errorf("解析角色 %s 的信息失败: %w", characterID, err)
	}
	if info.Class != string(class) {
		return nil, nil
	}

	detail := &CharacterDetailDTO{
		CharacterID: characterID,
		Name:        info.Name,
		Guild:       info.Guild,
		Race:        info.Race,
		Level:       info.Level,
		Class:       info.Class,
		Rank:        info.Rank,
	}

	breakdownJSON, err := breakdownCmd.Result()
	if err == nil {
		var breakdown ScoreBreakdown
		if err := json.Unmarshal([]byte(breakdownJSON), &breakdown); err != nil {
			return nil, fmt.Errorf("解析角色 %s 的得分明细失败: %w", characterID, err)
		}
		detail.Breakdown = &breakdown
	} else if err != redis.Nil {
		return nil, fmt.Errorf("读取角色 %s 的得分明细失败: %w", characterID, err)
	}
	return detail, nil
}

// GetCharacterGear 返回角色的装备清单和实时计算的聚焦档案。
// 档案不走Redis，直接从内存仓库构建，装备数据变化后立即可见。
func GetCharacterGear(characterID string) (*GearDTO, bool) {
	snapshot, ok := character.GetSnapshotByID(characterID)
	if !ok {
		return nil, false
	}
	return &GearDTO{
		CharacterID: characterID,
		Inventory:   snapshot.Inventory,
		Profile:     item.BuildGearFocusProfile(snapshot.Inventory),
	}, true
}

// GetExclusions 返回最近一轮计算排除的角色名单。
func GetExclusions() ([]Exclusion, error) {
	payload, err := database.RDB.Get(database.Ctx, exclusionsKey).Result()
	if err == redis.Nil {
		return []Exclusion{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取排除名单失败: %w", err)
	}
	var exclusions []Exclusion
	if err := json.Unmarshal([]byte(payload), &exclusions); err != nil {
		return nil, fmt.Errorf("解析排除名单失败: %w", err)
	}
	return exclusions, nil
}
