package item

import (
	"fmt"
	"sync"

	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
)

// --- In-memory Repository ---

// repository 是item模块的中央数据仓库。
// 物品聚焦数据在启动时从SQLite整体加载，加载后只读。
type repository struct {
	effectsByName map[string][]FocusEffect
}

// globalRepository 是我们仓库的私有单例实例
var globalRepository *repository

// rwLock 保护globalRepository指针本身，重建时整体换新。
var rwLock sync.RWMutex

// InitializeRepository 从SQLite加载物品聚焦数据，初始化内存查找表。
func InitializeRepository() error {
	var effectsFromDB []FocusEffect
	if err := database.DB.Order("id asc").Find(&effectsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载物品聚焦数据: %w", err)
	}

	repo := buildRepository(effectsFromDB)
	globalRepository = repo
	fmt.Printf("物品聚焦仓库 (Repository) 初始化成功，覆盖 %d 个物品名。\n", len(repo.effectsByName))
	return nil
}

func buildRepository(effects []FocusEffect) *repository {
	repo := &repository{
		effectsByName: make(map[string][]FocusEffect),
	}
	for _, effect := range effects {
		key := effect.NormalizedName
		if key == "" {
			key = NormalizeItemName(effect.ItemName)
		}
		if key == "" {
			continue
		}
		repo.effectsByName[key] = append(repo.effectsByName[key], effect)
	}
	return repo
}

// ReplaceRepository 用给定的聚焦效果整体替换内存查找表。
// 供离线工具和测试使用，生产路径走InitializeRepository。
func ReplaceRepository(effects []FocusEffect) {
	globalRepository = buildRepository(effects)
}

// LockRepository 获取用于重建仓库的写锁。
func LockRepository() {
	rwLock.Lock()
}

// UnlockRepository 释放写锁。
func UnlockRepository() {
	rwLock.Unlock()
}

// EffectsForItemName 按物品名返回其全部聚焦效果。
// 名字会先规整再查找；查不到返回nil，表示该物品没有聚焦效果。
func EffectsForItemName(name string) []FocusEffect {
	if globalRepository == nil {
		return nil
	}
	return globalRepository.effectsByName[NormalizeItemName(name)]
}
