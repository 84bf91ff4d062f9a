package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/unit"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database 数据库管理器
type Database struct {
	DB             *gorm.DB
	Path           string
	SafeMode       bool
	SchemaVersion  int
	MigrationError string
}

// Options 数据库初始化选项
type Options struct {
	// SeedDistances 首次建库时写入的默认距离，为空则不写入
	SeedDistances []unit.Distance
}

// NewDatabase 创建数据库连接
func NewDatabase(dbPath string, opts Options) (*Database, error) {
	if dbPath != ":memory:" {
		// 确保目录存在
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("创建数据目录失败: %w", err)
		}
	}

	// 连接数据库
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if err := configureDB(db); err != nil {
		return nil, fmt.Errorf("配置数据库失败: %w", err)
	}

	d := &Database{DB: db, Path: dbPath}
	if err := migrateWithVersion(db, d); err != nil {
		// 迁移失败进入“安全模式”，只读列表仍可用于排查
		d.SafeMode = true
		d.MigrationError = err.Error()
		slog.Error("数据库迁移失败，进入安全模式", "error", err)
	} else if err := seedDistances(context.Background(), db, opts.SeedDistances); err != nil {
		slog.Warn("写入默认距离失败", "error", err)
	}

	slog.Info("数据库初始化成功", "path", dbPath, "schema_version", d.SchemaVersion)

	return d, nil
}

// configureDB 配置 SQLite 参数
func configureDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	// 单用户单写者：固定一个连接，PRAGMA 对整个进程生效
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON", // 外键级联删除依赖此开关
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL", // 每次提交都 fsync，断电后不丢已提交事务
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("执行 %s 失败: %w", pragma, err)
		}
	}

	return nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(schema.Models()...)
}

const latestSchemaVersion = 1

func migrateWithVersion(db *gorm.DB, out *Database) error {
	if db == nil {
		return fmt.Errorf("db 不能为空")
	}
	if out == nil {
		return fmt.Errorf("out 不能为空")
	}

	// 先确保 schema_meta 存在（即使后续迁移失败，也能记录状态）
	if err := db.AutoMigrate(&schema.SchemaMeta{}); err != nil {
		return fmt.Errorf("创建 schema_meta 失败: %w", err)
	}

	var meta schema.SchemaMeta
	err := db.First(&meta, 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			meta = schema.SchemaMeta{ID: 1, SchemaVersion: 0}
			if err := db.Create(&meta).Error; err != nil {
				return fmt.Errorf("初始化 schema_meta 失败: %w", err)
			}
		} else {
			return fmt.Errorf("读取 schema_meta 失败: %w", err)
		}
	}

	cur := meta.SchemaVersion
	out.SchemaVersion = cur

	if cur > latestSchemaVersion {
		return fmt.Errorf("数据库 schema_version=%d 高于当前程序支持的版本=%d", cur, latestSchemaVersion)
	}
	if cur == latestSchemaVersion {
		return nil
	}

	if err := autoMigrate(db); err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}

	meta.SchemaVersion = latestSchemaVersion
	if err := db.Save(&meta).Error; err != nil {
		return fmt.Errorf("写入 schema_meta 失败: %w", err)
	}
	out.SchemaVersion = latestSchemaVersion
	return nil
}

// seedDistances 首次建库写入默认距离，只执行一次（以 schema_meta.seeded_at 为准）
func seedDistances(ctx context.Context, db *gorm.DB, distances []unit.Distance) error {
	if len(distances) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta schema.SchemaMeta
		if err := tx.First(&meta, 1).Error; err != nil {
			return fmt.Errorf("读取 schema_meta 失败: %w", err)
		}
		if meta.SeededAt > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&schema.Distance{}).Count(&count).Error; err != nil {
			return fmt.Errorf("统计距离失败: %w", err)
		}
		if count == 0 {
			rows := make([]schema.Distance, 0, len(distances))
			for _, d := range distances {
				rows = append(rows, schema.Distance{Value: d.Value, Unit: d.Unit})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("写入默认距离失败: %w", err)
			}
			slog.Info("已写入默认距离", "count", len(rows))
		}

		return tx.Model(&meta).Update("seeded_at", time.Now().UnixMilli()).Error
	})
}

// Close 关闭数据库连接
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
