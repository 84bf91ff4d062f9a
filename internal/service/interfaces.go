package service

import (
	"context"

	"github.com/yuqie6/ScopeClicks/internal/repository"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// 仓储依赖的最小接口集合（ISP）

type WeaponRepository interface {
	Create(ctx context.Context, w *schema.Weapon) error
	GetByID(ctx context.Context, id int64) (*schema.Weapon, error)
	FindByName(ctx context.Context, name string) (*schema.Weapon, error)
	List(ctx context.Context) ([]schema.Weapon, error)
	Update(ctx context.Context, w *schema.Weapon) error
	Delete(ctx context.Context, id int64) error
}

type AmmunitionRepository interface {
	Create(ctx context.Context, a *schema.Ammunition) error
	GetByID(ctx context.Context, id int64) (*schema.Ammunition, error)
	FindByName(ctx context.Context, name string) (*schema.Ammunition, error)
	List(ctx context.Context) ([]schema.Ammunition, error)
	ListByCaliber(ctx context.Context, caliber string) ([]schema.Ammunition, error)
	Update(ctx context.Context, a *schema.Ammunition) error
	Delete(ctx context.Context, id int64) error
}

type DistanceRepository interface {
	Create(ctx context.Context, d *schema.Distance) error
	GetByID(ctx context.Context, id int64) (*schema.Distance, error)
	Find(ctx context.Context, m unit.Distance) (*schema.Distance, error)
	List(ctx context.Context) ([]schema.Distance, error)
	Update(ctx context.Context, d *schema.Distance) error
	Delete(ctx context.Context, id int64) error
}

type ResultRepository interface {
	Create(ctx context.Context, res *schema.Result) error
	GetByID(ctx context.Context, id int64) (*schema.Result, error)
	FindByTriple(ctx context.Context, key schema.Triple) (*schema.Result, error)
	List(ctx context.Context, filter repository.ResultFilter) ([]schema.Result, error)
	UpdateClicks(ctx context.Context, id int64, clicks int) error
	Delete(ctx context.Context, id int64) error
}
