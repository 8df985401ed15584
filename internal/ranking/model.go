package ranking

import "gorm.io/gorm"

// ScoreSnapshot 是持久化在SQLite中的一行排名快照。
// 每轮快照整体替换上一轮，RunID标记这些行属于哪一轮计算。
type ScoreSnapshot struct {
	gorm.Model
	RunID       string  `gorm:"index"`
	CharacterID string  `gorm:"index"`
	Class       string  `gorm:"index"`
	Rank        int
	Score       float64
	// Breakdown 是ScoreBreakdown的JSON序列化，供离线排查某一轮计分用。
	Breakdown string
}
