package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/metadata"
)

func snapshotTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ScoreSnapshot{}, &metadata.Metadata{}))
	return db
}

func snapshotRows(runID string, ids ...string) []ScoreSnapshot {
	rows := make([]ScoreSnapshot, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, ScoreSnapshot{
			RunID:       runID,
			CharacterID: id,
			Class:       "Warrior",
			Rank:        i + 1,
			Score:       float64(90 - i),
		})
	}
	return rows
}

func TestPersistSnapshotRowsReplacesPreviousRound(t *testing.T) {
	db := snapshotTestDB(t)
	computedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	require.NoError(t, persistSnapshotRows(db, snapshotRows("run-1", "w1", "w2", "w3"), "run-1", computedAt))
	require.NoError(t, persistSnapshotRows(db, snapshotRows("run-2", "w1", "w2"), "run-2", computedAt.Add(time.Hour)))
	require.NoError(t, persistSnapshotRows(db, snapshotRows("run-3", "w2", "w1"), "run-3", computedAt.Add(2*time.Hour)))

	var visible int64
	require.NoError(t, db.Model(&ScoreSnapshot{}).Count(&visible).Error)
	assert.Equal(t, int64(2), visible)

	// 旧轮次必须被物理删除，不能以软删除行的形式堆积
	var physical int64
	require.NoError(t, db.Unscoped().Model(&ScoreSnapshot{}).Count(&physical).Error)
	assert.Equal(t, int64(2), physical)

	var remaining []ScoreSnapshot
	require.NoError(t, db.Order("rank asc").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "run-3", remaining[0].RunID)
	assert.Equal(t, "w2", remaining[0].CharacterID)

	runID, err := metadata.GetSnapshotRunID(db)
	require.NoError(t, err)
	assert.Equal(t, "run-3", runID)

	storedAt, err := metadata.GetSnapshotComputedAt(db)
	require.NoError(t, err)
	assert.True(t, storedAt.Equal(computedAt.Add(2*time.Hour)))
}
