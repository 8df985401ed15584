package metadata

// --- SQLite Keys ---
// 这些键用于 metadata 表的 key 列。
const (
	// SnapshotRunIDKey 存储最近一次已落库快照对应的重算run_id。
	SnapshotRunIDKey = "snapshot_run_id"

	// SnapshotComputedAtKey 存储最近一次已落库快照的计算时间（RFC3339）。
	SnapshotComputedAtKey = "snapshot_computed_at"
)

// --- Redis Keys ---
// 这些键用于在Redis中存储排名投影的元数据。
const (
	// RedisRunIDKey 是一个Redis String，存储当前Redis排名投影对应的重算run_id。
	// 由ranking模块在每次重算成功后写入，是投影与SQLite快照对账的“检查点”。
	RedisRunIDKey = "meta:ranking_run_id"

	// RedisComputedAtKey 是一个Redis String，存储当前投影的计算时间（RFC3339）。
	RedisComputedAtKey = "meta:ranking_computed_at"
)
