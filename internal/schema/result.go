package schema

import (
	"fmt"
	"time"
)

// Result 武器+弹药+距离 组合对应的归零转塔位置（点击数，可为负）。
// 三个外键均为 ON DELETE CASCADE：删除任一被引用实体时同时删除对应结果。
type Result struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	WeaponID     int64     `gorm:"not null;uniqueIndex:idx_results_triple,priority:1;index:idx_results_weapon"`
	AmmunitionID int64     `gorm:"not null;uniqueIndex:idx_results_triple,priority:2;index:idx_results_ammo"`
	DistanceID   int64     `gorm:"not null;uniqueIndex:idx_results_triple,priority:3;index:idx_results_distance"`
	Clicks       int       `gorm:"column:result;not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Weapon     *Weapon     `gorm:"foreignKey:WeaponID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Ammunition *Ammunition `gorm:"foreignKey:AmmunitionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Distance   *Distance   `gorm:"foreignKey:DistanceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName 指定表名
func (Result) TableName() string {
	return "results"
}

// Triple 结果的唯一定位键
type Triple struct {
	WeaponID     int64
	AmmunitionID int64
	DistanceID   int64
}

// Key 返回结果的定位键
func (r Result) Key() Triple {
	return Triple{WeaponID: r.WeaponID, AmmunitionID: r.AmmunitionID, DistanceID: r.DistanceID}
}

func (t Triple) String() string {
	return fmt.Sprintf("weapon=%d ammunition=%d distance=%d", t.WeaponID, t.AmmunitionID, t.DistanceID)
}

// Display 列表显示，如 "Remington 700 + Federal Match @ 100m = 15"，需预加载关联
func (r Result) Display() string {
	weapon, ammo, dist := "?", "?", "?"
	if r.Weapon != nil {
		weapon = r.Weapon.Name
	}
	if r.Ammunition != nil {
		ammo = r.Ammunition.Name
	}
	if r.Distance != nil {
		dist = r.Distance.Display()
	}
	return fmt.Sprintf("%s + %s @ %s = %d", weapon, ammo, dist, r.Clicks)
}
