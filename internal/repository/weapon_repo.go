package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"gorm.io/gorm"
)

const entityWeapon = "weapon"

// WeaponRepository 武器仓储
type WeaponRepository struct {
	db *gorm.DB
}

// NewWeaponRepository 创建仓储
func NewWeaponRepository(db *gorm.DB) *WeaponRepository {
	return &WeaponRepository{db: db}
}

// Create 新建武器，名称重复返回 DuplicateKeyError
func (r *WeaponRepository) Create(ctx context.Context, w *schema.Weapon) error {
	if w == nil {
		return fmt.Errorf("weapon is nil")
	}
	w.ID = 0
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("创建武器失败: %w", translateWriteError(err, entityWeapon, w.Name, 0))
	}
	return nil
}

// GetByID 根据 ID 获取武器
func (r *WeaponRepository) GetByID(ctx context.Context, id int64) (*schema.Weapon, error) {
	var w schema.Weapon
	err := r.db.WithContext(ctx).First(&w, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityWeapon, id)
		}
		return nil, fmt.Errorf("查询武器失败: %w", err)
	}
	return &w, nil
}

// FindByName 根据名称获取武器
func (r *WeaponRepository) FindByName(ctx context.Context, name string) (*schema.Weapon, error) {
	var w schema.Weapon
	err := r.db.WithContext(ctx).Where("weapon = ?", name).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityWeapon, name)
		}
		return nil, fmt.Errorf("查询武器失败: %w", err)
	}
	return &w, nil
}

// List 获取全部武器，按名称（忽略大小写）再按 ID 排序
func (r *WeaponRepository) List(ctx context.Context) ([]schema.Weapon, error) {
	var weapons []schema.Weapon
	err := r.db.WithContext(ctx).Order("weapon COLLATE NOCASE, id").Find(&weapons).Error
	if err != nil {
		return nil, fmt.Errorf("查询武器失败: %w", err)
	}
	return weapons, nil
}

// Update 更新名称与口径，ID 不变
func (r *WeaponRepository) Update(ctx context.Context, w *schema.Weapon) error {
	if w == nil || w.ID == 0 {
		return fmt.Errorf("weapon id is required")
	}
	res := r.db.WithContext(ctx).Model(&schema.Weapon{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{"weapon": w.Name, "caliber": w.Caliber})
	if res.Error != nil {
		return fmt.Errorf("更新武器失败: %w", translateWriteError(res.Error, entityWeapon, w.Name, w.ID))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityWeapon, w.ID)
	}
	return r.db.WithContext(ctx).First(w, w.ID).Error
}

// Delete 删除武器；引用它的结果由外键级联删除
func (r *WeaponRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&schema.Weapon{}, id)
	if res.Error != nil {
		return fmt.Errorf("删除武器失败: %w", translateWriteError(res.Error, entityWeapon, "", id))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityWeapon, id)
	}
	return nil
}

// Count 统计武器数量
func (r *WeaponRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Weapon{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计武器失败: %w", err)
	}
	return count, nil
}
