package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/testutil"
	"github.com/yuqie6/ScopeClicks/internal/unit"
	"gorm.io/gorm"
)

type fixture struct {
	weapons   *WeaponRepository
	ammo      *AmmunitionRepository
	dists     *DistanceRepository
	results   *ResultRepository
	weapon    schema.Weapon
	cartridge schema.Ammunition
	distance  schema.Distance
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		weapons:   NewWeaponRepository(db),
		ammo:      NewAmmunitionRepository(db),
		dists:     NewDistanceRepository(db),
		results:   NewResultRepository(db),
		weapon:    schema.Weapon{Name: "Remington 700", Caliber: "7.62 mm"},
		cartridge: schema.Ammunition{Name: "Federal Match", Caliber: "7.62 mm"},
		distance:  schema.Distance{Value: 100, Unit: unit.Meter},
	}
	if err := f.weapons.Create(ctx, &f.weapon); err != nil {
		t.Fatalf("create weapon: %v", err)
	}
	if err := f.ammo.Create(ctx, &f.cartridge); err != nil {
		t.Fatalf("create ammunition: %v", err)
	}
	if err := f.dists.Create(ctx, &f.distance); err != nil {
		t.Fatalf("create distance: %v", err)
	}
	return f
}

func (f *fixture) triple() schema.Triple {
	return schema.Triple{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID}
}

func TestResultRepositoryCreateAndFind(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	res := &schema.Result{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID, Clicks: 15}
	if err := f.results.Create(ctx, res); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := f.results.FindByTriple(ctx, f.triple())
	if err != nil {
		t.Fatalf("FindByTriple error: %v", err)
	}
	if got.ID != res.ID || got.Clicks != 15 {
		t.Fatalf("got=%+v", got)
	}
	if got.Display() != "Remington 700 + Federal Match @ 100m = 15" {
		t.Fatalf("Display=%q", got.Display())
	}

	dup := &schema.Result{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID}
	if err := f.results.Create(ctx, dup); !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("duplicate triple err=%v", err)
	}
}

func TestResultRepositoryRejectsOrphan(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	err := f.results.Create(ctx, &schema.Result{WeaponID: 999, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID})
	if !errors.Is(err, apperr.ErrReferentialIntegrity) {
		t.Fatalf("orphan create err=%v, want referential integrity", err)
	}
	n, _ := f.results.Count(ctx)
	if n != 0 {
		t.Fatalf("count=%d, want 0", n)
	}
}

func TestDeleteWeaponCascadesToResults(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	res := &schema.Result{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID, Clicks: 7}
	if err := f.results.Create(ctx, res); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// 级联策略：删除成功，依赖结果一并删除
	if err := f.weapons.Delete(ctx, f.weapon.ID); err != nil {
		t.Fatalf("Delete weapon err=%v, want nil (cascade)", err)
	}
	if _, err := f.results.GetByID(ctx, res.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("dependent result still present, err=%v", err)
	}
	// 其它实体不受影响
	if _, err := f.ammo.GetByID(ctx, f.cartridge.ID); err != nil {
		t.Fatalf("ammunition removed unexpectedly: %v", err)
	}
}

func TestDeleteDistanceCascadesToResults(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	_ = f.results.Create(ctx, &schema.Result{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID})
	if err := f.dists.Delete(ctx, f.distance.ID); err != nil {
		t.Fatalf("Delete distance error: %v", err)
	}
	n, _ := f.results.Count(ctx)
	if n != 0 {
		t.Fatalf("count=%d, want 0", n)
	}
}

func TestResultRepositoryListFilterAndUpdate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	far := schema.Distance{Value: 200, Unit: unit.Meter}
	if err := f.dists.Create(ctx, &far); err != nil {
		t.Fatalf("create distance: %v", err)
	}
	r1 := &schema.Result{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: f.distance.ID, Clicks: 15}
	r2 := &schema.Result{WeaponID: f.weapon.ID, AmmunitionID: f.cartridge.ID, DistanceID: far.ID, Clicks: 25}
	_ = f.results.Create(ctx, r1)
	_ = f.results.Create(ctx, r2)

	all, err := f.results.List(ctx, ResultFilter{})
	if err != nil || len(all) != 2 || all[0].ID != r1.ID {
		t.Fatalf("List all=%+v err=%v", all, err)
	}
	only, err := f.results.List(ctx, ResultFilter{DistanceID: far.ID})
	if err != nil || len(only) != 1 || only[0].Clicks != 25 {
		t.Fatalf("List filtered=%+v err=%v", only, err)
	}

	if err := f.results.UpdateClicks(ctx, r2.ID, -3); err != nil {
		t.Fatalf("UpdateClicks error: %v", err)
	}
	got, _ := f.results.GetByID(ctx, r2.ID)
	if got.Clicks != -3 {
		t.Fatalf("clicks=%d, want -3", got.Clicks)
	}
	if err := f.results.UpdateClicks(ctx, 999, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("UpdateClicks missing err=%v", err)
	}
}
