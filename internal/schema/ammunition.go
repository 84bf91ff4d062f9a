package schema

import "time"

// Ammunition 弹药档案，口径仅作提示，不与武器口径强校验
type Ammunition struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:ammunition;size:100;not null;uniqueIndex:idx_ammunition_ammunition"`
	Caliber   string    `gorm:"size:32;not null;index:idx_ammunition_caliber"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Ammunition) TableName() string {
	return "ammunition"
}
