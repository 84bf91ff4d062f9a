package schema

import (
	"time"

	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// Distance 射击距离，(distance, unit) 组合唯一
type Distance struct {
	ID        int64             `gorm:"primaryKey;autoIncrement"`
	Value     float64           `gorm:"column:distance;not null;uniqueIndex:idx_distances_value_unit,priority:1"`
	Unit      unit.DistanceUnit `gorm:"size:8;not null;uniqueIndex:idx_distances_value_unit,priority:2;index:idx_distances_unit"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Distance) TableName() string {
	return "distances"
}

// Measure 转为换算用的距离值
func (d Distance) Measure() unit.Distance {
	return unit.Distance{Value: d.Value, Unit: d.Unit}
}

// Display 显示格式，如 100m
func (d Distance) Display() string {
	return d.Measure().String()
}
