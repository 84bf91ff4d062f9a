package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"gorm.io/gorm"
)

const entityAmmunition = "ammunition"

// AmmunitionRepository 弹药仓储
type AmmunitionRepository struct {
	db *gorm.DB
}

// NewAmmunitionRepository 创建仓储
func NewAmmunitionRepository(db *gorm.DB) *AmmunitionRepository {
	return &AmmunitionRepository{db: db}
}

// Create 新建弹药，名称重复返回 DuplicateKeyError
func (r *AmmunitionRepository) Create(ctx context.Context, a *schema.Ammunition) error {
	if a == nil {
		return fmt.Errorf("ammunition is nil")
	}
	a.ID = 0
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("创建弹药失败: %w", translateWriteError(err, entityAmmunition, a.Name, 0))
	}
	return nil
}

// GetByID 根据 ID 获取弹药
func (r *AmmunitionRepository) GetByID(ctx context.Context, id int64) (*schema.Ammunition, error) {
	var a schema.Ammunition
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityAmmunition, id)
		}
		return nil, fmt.Errorf("查询弹药失败: %w", err)
	}
	return &a, nil
}

// FindByName 根据名称获取弹药
func (r *AmmunitionRepository) FindByName(ctx context.Context, name string) (*schema.Ammunition, error) {
	var a schema.Ammunition
	err := r.db.WithContext(ctx).Where("ammunition = ?", name).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityAmmunition, name)
		}
		return nil, fmt.Errorf("查询弹药失败: %w", err)
	}
	return &a, nil
}

// List 获取全部弹药，按名称（忽略大小写）再按 ID 排序
func (r *AmmunitionRepository) List(ctx context.Context) ([]schema.Ammunition, error) {
	var ammunition []schema.Ammunition
	err := r.db.WithContext(ctx).Order("ammunition COLLATE NOCASE, id").Find(&ammunition).Error
	if err != nil {
		return nil, fmt.Errorf("查询弹药失败: %w", err)
	}
	return ammunition, nil
}

// ListByCaliber 获取指定口径的弹药
func (r *AmmunitionRepository) ListByCaliber(ctx context.Context, caliber string) ([]schema.Ammunition, error) {
	var ammunition []schema.Ammunition
	err := r.db.WithContext(ctx).
		Where("caliber = ?", caliber).
		Order("ammunition COLLATE NOCASE, id").
		Find(&ammunition).Error
	if err != nil {
		return nil, fmt.Errorf("按口径查询弹药失败: %w", err)
	}
	return ammunition, nil
}

// Update 更新名称与口径，ID 不变
func (r *AmmunitionRepository) Update(ctx context.Context, a *schema.Ammunition) error {
	if a == nil || a.ID == 0 {
		return fmt.Errorf("ammunition id is required")
	}
	res := r.db.WithContext(ctx).Model(&schema.Ammunition{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{"ammunition": a.Name, "caliber": a.Caliber})
	if res.Error != nil {
		return fmt.Errorf("更新弹药失败: %w", translateWriteError(res.Error, entityAmmunition, a.Name, a.ID))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityAmmunition, a.ID)
	}
	return r.db.WithContext(ctx).First(a, a.ID).Error
}

// Delete 删除弹药；引用它的结果由外键级联删除
func (r *AmmunitionRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&schema.Ammunition{}, id)
	if res.Error != nil {
		return fmt.Errorf("删除弹药失败: %w", translateWriteError(res.Error, entityAmmunition, "", id))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityAmmunition, id)
	}
	return nil
}

// Count 统计弹药数量
func (r *AmmunitionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Ammunition{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计弹药失败: %w", err)
	}
	return count, nil
}
