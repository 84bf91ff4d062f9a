package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityResult = "result"

// ResultFilter 结果查询条件，零值字段不参与过滤
type ResultFilter struct {
	WeaponID     int64
	AmmunitionID int64
	DistanceID   int64
}

// ResultRepository 结果仓储
type ResultRepository struct {
	db *gorm.DB
}

// NewResultRepository 创建仓储
func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Weapon").
		Preload("Ammunition").
		Preload("Distance")
}

// Create 新建结果。外键不存在返回 ReferentialIntegrityError，组合重复返回 DuplicateKeyError
func (r *ResultRepository) Create(ctx context.Context, res *schema.Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	res.ID = 0
	// 关联对象只用于展示，写入时忽略
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
	if err != nil {
		return fmt.Errorf("创建结果失败: %w", translateWriteError(err, entityResult, res.Key().String(), 0))
	}
	return nil
}

// GetByID 根据 ID 获取结果（含关联）
func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*schema.Result, error) {
	var res schema.Result
	err := r.withRefs(ctx).First(&res, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityResult, id)
		}
		return nil, fmt.Errorf("查询结果失败: %w", err)
	}
	return &res, nil
}

// FindByTriple 根据 武器+弹药+距离 获取结果
func (r *ResultRepository) FindByTriple(ctx context.Context, key schema.Triple) (*schema.Result, error) {
	var res schema.Result
	err := r.withRefs(ctx).
		Where("weapon_id = ? AND ammunition_id = ? AND distance_id = ?", key.WeaponID, key.AmmunitionID, key.DistanceID).
		First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(entityResult, key.String())
		}
		return nil, fmt.Errorf("查询结果失败: %w", err)
	}
	return &res, nil
}

// List 按条件获取结果，按 ID（插入顺序）排序
func (r *ResultRepository) List(ctx context.Context, filter ResultFilter) ([]schema.Result, error) {
	q := r.withRefs(ctx)
	if filter.WeaponID != 0 {
		q = q.Where("weapon_id = ?", filter.WeaponID)
	}
	if filter.AmmunitionID != 0 {
		q = q.Where("ammunition_id = ?", filter.AmmunitionID)
	}
	if filter.DistanceID != 0 {
		q = q.Where("distance_id = ?", filter.DistanceID)
	}

	var results []schema.Result
	if err := q.Order("id").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("查询结果失败: %w", err)
	}
	return results, nil
}

// UpdateClicks 更新结果的转塔位置
func (r *ResultRepository) UpdateClicks(ctx context.Context, id int64, clicks int) error {
	res := r.db.WithContext(ctx).Model(&schema.Result{}).
		Where("id = ?", id).
		Update("result", clicks)
	if res.Error != nil {
		return fmt.Errorf("更新结果失败: %w", translateWriteError(res.Error, entityResult, "", id))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityResult, id)
	}
	return nil
}

// Delete 删除结果
func (r *ResultRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&schema.Result{}, id)
	if res.Error != nil {
		return fmt.Errorf("删除结果失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityResult, id)
	}
	return nil
}

// Count 统计结果数量
func (r *ResultRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Result{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计结果失败: %w", err)
	}
	return count, nil
}
