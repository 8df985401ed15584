package item

import (
	"fmt"

	"github.com/SlpAus/takp-character-ranking-backend/internal/platform/database"
)

// PrimeCachedDB 负责初始化item模块的数据库和内存仓库
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := InitializeRepository(); err != nil {
		return err
	}
	return nil
}

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&FocusEffect{}); err != nil {
		return fmt.Errorf("无法迁移item表: %w", err)
	}
	fmt.Println("Item数据库表迁移成功。")
	return nil
}
