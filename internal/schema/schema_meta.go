package schema

import "time"

// SchemaMeta 记录数据库 schema 版本，升级以版本号为门闸而不是每次启动都 AutoMigrate。
// 表内仅维护单行（ID=1）。
type SchemaMeta struct {
	ID            int       `gorm:"primaryKey"`
	SchemaVersion int       `gorm:"not null"`
	SeededAt      int64     `gorm:"default:0"` // 默认距离写入时间（毫秒），0 表示未写入
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (SchemaMeta) TableName() string {
	return "schema_meta"
}

// Models 返回需要迁移的全部模型，顺序保证被引用表先建
func Models() []any {
	return []any{
		&Weapon{},
		&Ammunition{},
		&Distance{},
		&Result{},
	}
}
