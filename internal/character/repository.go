package character

import (
	"fmt"
	"sync"

	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
)

// --- In-memory Repository ---

// repository 是character模块的中央数据仓库。
// 角色快照在启动（或导入后重建）时从SQLite整体加载，加载后只读。
type repository struct {
	idToIndex map[string]int
	snapshots []Snapshot
	byClass   map[Class][]int
}

// globalRepository 是我们仓库的私有单例实例
var globalRepository *repository

// rwLock 保护globalRepository指针本身，重建时整体换新。
var rwLock sync.RWMutex

// InitializeRepository 从SQLite加载角色与装备数据，初始化内存仓库。
// 这个函数在应用启动时调用一次，重建时在写锁保护下再次调用。
func InitializeRepository() error {
	var charsFromDB []Character
	if err := database.DB.Order("id asc").Find(&charsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载角色数据: %w", err)
	}

	var itemsFromDB []EquippedItem
	if err := database.DB.Order("id asc").Find(&itemsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载装备数据: %w", err)
	}

	size := len(charsFromDB)
	repo := &repository{
		idToIndex: make(map[string]int, size),
		snapshots: make([]Snapshot, size),
		byClass:   make(map[Class][]int),
	}

	for i, c := range charsFromDB {
		repo.idToIndex[c.CharacterID] = i
		repo.snapshots[i] = Snapshot{Character: c}
		if class, err := ParseClass(c.Class); err == nil {
			repo.byClass[class] = append(repo.byClass[class], i)
		}
		// 未知职业的角色保留在仓库中，由排名引擎记录排除原因
	}

	for _, item := range itemsFromDB {
		if idx, ok := repo.idToIndex[item.CharacterID]; ok {
			repo.snapshots[idx].Inventory = append(repo.snapshots[idx].Inventory, item)
		}
		// 没有对应角色的装备行直接忽略
	}

	globalRepository = repo
	fmt.Printf("角色仓库 (Repository) 初始化成功，加载了 %d 个角色。\n", size)
	return nil
}

// --- Public Methods for Concurrency Control ---

// LockRepository 获取用于重建仓库的写锁。
func LockRepository() {
	rwLock.Lock()
}

// UnlockRepository 释放写锁。
func UnlockRepository() {
	rwLock.Unlock()
}

// --- Public Methods for Data Access ---
// 这些方法是线程安全的，因为它们访问的是加载后只读的数据。

// GetCharacterCount 返回仓库中的角色数量
func GetCharacterCount() int {
	if globalRepository == nil {
		return 0
	}
	return len(globalRepository.snapshots)
}

// GetAllSnapshots 返回全部角色快照（共享底层数组，调用方只读）
func GetAllSnapshots() []Snapshot {
	if globalRepository == nil {
		return nil
	}
	return globalRepository.snapshots
}

// GetSnapshotByID 按角色ID返回单个快照
func GetSnapshotByID(id string) (Snapshot, bool) {
	if globalRepository == nil {
		return Snapshot{}, false
	}
	index, ok := globalRepository.idToIndex[id]
	if !ok {
		return Snapshot{}, false
	}
	return globalRepository.snapshots[index], true
}

// GetClassSize 返回某个职业的角色数量
func GetClassSize(class Class) int {
	if globalRepository == nil {
		return 0
	}
	return len(globalRepository.byClass[class])
}
