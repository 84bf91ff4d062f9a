package schema

import "time"

// Weapon 武器档案
// 数据量级：十级
type Weapon struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:weapon;size:100;not null;uniqueIndex:idx_weapons_weapon"` // 唯一名称，如 Remington 700
	Caliber   string    `gorm:"size:32;not null;index:idx_weapons_caliber"`                     // 口径，如 7.62 mm
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Weapon) TableName() string {
	return "weapons"
}
