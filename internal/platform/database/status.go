package database

import (
	"fmt"
	"sync"
)

// healthState 负责线程安全地管理和提供Redis投影的健康状态。
// 排行榜数据是SQLite的Redis投影，Redis重启会使投影失效，
// 在重建完成前相关API需要降级。
type healthState struct {
	mu             sync.RWMutex
	isRedisHealthy bool
	lastKnownRunID string
}

// 全局的状态实例
var globalHealth = &healthState{
	isRedisHealthy: true, // 默认启动时是健康的
}

// IsRedisHealthy 返回当前Redis的健康状态。
func IsRedisHealthy() bool {
	globalHealth.mu.RLock()
	defer globalHealth.mu.RUnlock()
	return globalHealth.isRedisHealthy
}

// SetInitialRunID 在应用启动时调用一次，记录初始的Redis run_id。
func SetInitialRunID(runID string) {
	globalHealth.mu.Lock()
	defer globalHealth.mu.Unlock()
	globalHealth.lastKnownRunID = runID
}

// UpdateStatus 用于线程安全地更新健康状态。
func UpdateStatus(isHealthy bool, newRunID string) {
	globalHealth.mu.Lock()
	defer globalHealth.mu.Unlock()

	// 只有当状态发生变化时才打印日志
	if globalHealth.isRedisHealthy != isHealthy {
		globalHealth.isRedisHealthy = isHealthy
		if isHealthy {
			fmt.Println("健康检查: Redis服务状态已更新为 [可用]")
		} else {
			fmt.Println("健康检查警告: Redis服务状态已更新为 [不可用]，排行榜API将降级")
		}
	}

	// 只有在健康状态下，才更新已知的run_id
	if isHealthy {
		globalHealth.lastKnownRunID = newRunID
	}
}

// GetLastKnownRunID 用于线程安全地获取已知的run_id。
func GetLastKnownRunID() string {
	globalHealth.mu.RLock()
	defer globalHealth.mu.RUnlock()
	return globalHealth.lastKnownRunID
}
