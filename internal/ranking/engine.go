package ranking

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SlpAus/takp-character-ranking-backend/internal/character"
	"github.com/SlpAus/takp-character-ranking-backend/internal/item"
)

// RankedCharacter 是一个角色在职业排名中的最终条目。
type RankedCharacter struct {
	CharacterID string          `json:"character_id"`
	Name        string          `json:"name"`
	Guild       string          `json:"guild"`
	Race        string          `json:"race"`
	Level       int             `json:"level"`
	Class       character.Class `json:"class"`
	Rank        int             `json:"rank"`
	Score       float64         `json:"score"`
	Breakdown   *ScoreBreakdown `json:"breakdown"`
}

// Exclusion 记录一个被排除出排名的角色及原因。
// 排除是单个角色的问题，永远不会让整轮计算失败。
type Exclusion struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Reason      string `json:"reason"`
}

// Result 是一轮完整计算的产物。
type Result struct {
	Classes    map[character.Class][]RankedCharacter
	Exclusions []Exclusion
}

// RankPopulation 对整个角色种群执行一轮确定性的计分。
// 四个阶段：并行提取装备档案、按职业归并种群最大值、并行聚合得分、
// 稳定降序排序。相同输入总是产出相同结果。
func RankPopulation(snapshots []character.Snapshot, rules *RuleSet) *Result {
	result := &Result{
		Classes: make(map[character.Class][]RankedCharacter),
	}

	// 阶段一：逐角色解析职业并构建装备聚焦档案。
	// 档案构建是纯CPU工作，按核数并行。
	inputs := make([]*characterInput, len(snapshots))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range snapshots {
		i := i
		g.Go(func() error {
			snapshot := snapshots[i]
			if _, err := character.ParseClass(snapshot.Character.Class); err != nil {
				mu.Lock()
				result.Exclusions = append(result.Exclusions, Exclusion{
					CharacterID: snapshot.Character.CharacterID,
					Name:        snapshot.Character.Name,
					Reason:      err.Error(),
				})
				mu.Unlock()
				return nil
			}
			inputs[i] = &characterInput{
				snapshot: snapshot,
				profile:  item.BuildGearFocusProfile(snapshot.Inventory),
			}
			return nil
		})
	}
	// 阶段一的goroutine只通过排除名单上报问题，不会返回错误。
	_ = g.Wait()

	// 排除名单的顺序跟随输入顺序，保证确定性。
	sortExclusions(result.Exclusions, snapshots)

	byClass := make(map[character.Class][]*characterInput)
	for _, in := range inputs {
		if in == nil {
			continue
		}
		class := character.Class(in.snapshot.Character.Class)
		byClass[class] = append(byClass[class], in)
	}

	// 阶段二：每个职业独立求种群最大值，作为后续归一化的屏障。
	// 阶段三：拿到分母后并行聚合每个角色的得分。
	var scoreGroup errgroup.Group
	scoreGroup.SetLimit(runtime.NumCPU())
	var resultMu sync.Mutex

	for class, classInputs := range byClass {
		class, classInputs := class, classInputs
		table := rules.TableFor(class)
		if table == nil {
			resultMu.Lock()
			for _, in := range classInputs {
				result.Exclusions = append(result.Exclusions, Exclusion{
					CharacterID: in.snapshot.Character.CharacterID,
					Name:        in.snapshot.Character.Name,
					Reason:      "没有该职业的规则表",
				})
			}
			resultMu.Unlock()
			continue
		}

		scoreGroup.Go(func() error {
			maxima := computeMaxima(table, classInputs)

			ranked := make([]RankedCharacter, 0, len(classInputs))
			for _, in := range classInputs {
				c := &in.snapshot.Character
				breakdown := scoreCharacter(table, in, maxima)
				ranked = append(ranked, RankedCharacter{
					CharacterID: c.CharacterID,
					Name:        c.Name,
					Guild:       c.Guild,
					Race:        c.Race,
					Level:       c.Level,
					Class:       class,
					Score:       breakdown.FinalScore,
					Breakdown:   breakdown,
				})
			}

			// 阶段四：稳定降序排序，同分角色保持导入顺序。
			sort.SliceStable(ranked, func(a, b int) bool {
				return ranked[a].Score > ranked[b].Score
			})
			for i := range ranked {
				ranked[i].Rank = i + 1
			}

			resultMu.Lock()
			result.Classes[class] = ranked
			resultMu.Unlock()
			return nil
		})
	}
	_ = scoreGroup.Wait()

	return result
}

// sortExclusions 把并行阶段产生的排除名单恢复成输入顺序。
func sortExclusions(exclusions []Exclusion, snapshots []character.Snapshot) {
	order := make(map[string]int, len(snapshots))
	for i := range snapshots {
		order[snapshots[i].Character.CharacterID] = i
	}
	sort.SliceStable(exclusions, func(a, b int) bool {
		return order[exclusions[a].CharacterID] < order[exclusions[b].CharacterID]
	})
}
