package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/unit"
	"gorm.io/gorm"
)

const entityDistance = "distance"

// DistanceRepository 距离仓储
type DistanceRepository struct {
	db *gorm.DB
}

// NewDistanceRepository 创建仓储
func NewDistanceRepository(db *gorm.DB) *DistanceRepository {
	return &DistanceRepository{db: db}
}

// Create 新建距离，(distance, unit) 重复返回 DuplicateKeyError
func (r *DistanceRepository) Create(ctx context.Context, d *schema.Distance) error {
	if d == nil {
		return fmt.Errorf("distance is nil")
	}
	d.ID = 0
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("创建距离失败: %w", translateWriteError(err, entityDistance, d.Display(), 0))
	}
	return nil
}

// GetByID 根据 ID 获取距离
func (r *DistanceRepository) GetByID(ctx context.Context, id int64) (*schema.Distance, error) {
	var d schema.Distance
	err := r.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityDistance, id)
		}
		return nil, fmt.Errorf("查询距离失败: %w", err)
	}
	return &d, nil
}

// Find 根据数值与单位获取距离，相当于距离的按名查询
func (r *DistanceRepository) Find(ctx context.Context, m unit.Distance) (*schema.Distance, error) {
	var d schema.Distance
	err := r.db.WithContext(ctx).
		Where("distance = ? AND unit = ?", m.Value, m.Unit).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityDistance, m.String())
		}
		return nil, fmt.Errorf("查询距离失败: %w", err)
	}
	return &d, nil
}

// List 获取全部距离，按单位再按数值排序
func (r *DistanceRepository) List(ctx context.Context) ([]schema.Distance, error) {
	var distances []schema.Distance
	err := r.db.WithContext(ctx).Order("unit, distance, id").Find(&distances).Error
	if err != nil {
		return nil, fmt.Errorf("查询距离失败: %w", err)
	}
	return distances, nil
}

// Update 更新数值与单位，ID 不变
func (r *DistanceRepository) Update(ctx context.Context, d *schema.Distance) error {
	if d == nil || d.ID == 0 {
		return fmt.Errorf("distance id is required")
	}
	res := r.db.WithContext(ctx).Model(&schema.Distance{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{"distance": d.Value, "unit": d.Unit})
	if res.Error != nil {
		return fmt.Errorf("更新距离失败: %w", translateWriteError(res.Error, entityDistance, d.Display(), d.ID))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityDistance, d.ID)
	}
	return r.db.WithContext(ctx).First(d, d.ID).Error
}

// Delete 删除距离；引用它的结果由外键级联删除
func (r *DistanceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&schema.Distance{}, id)
	if res.Error != nil {
		return fmt.Errorf("删除距离失败: %w", translateWriteError(res.Error, entityDistance, "", id))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityDistance, id)
	}
	return nil
}

// Count 统计距离数量
func (r *DistanceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Distance{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计距离失败: %w", err)
	}
	return count, nil
}
