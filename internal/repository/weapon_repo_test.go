package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/testutil"
)

func TestWeaponRepositoryCreateAndGet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewWeaponRepository(db)
	ctx := context.Background()

	w := &schema.Weapon{Name: "Remington 700", Caliber: "7.62 mm"}
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if w.ID == 0 {
		t.Fatalf("ID not assigned")
	}

	got, err := repo.GetByID(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Name != "Remington 700" || got.Caliber != "7.62 mm" {
		t.Fatalf("got=%+v", got)
	}

	byName, err := repo.FindByName(ctx, "Remington 700")
	if err != nil || byName.ID != w.ID {
		t.Fatalf("FindByName got=%+v err=%v", byName, err)
	}
}

func TestWeaponRepositoryDuplicateName(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewWeaponRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &schema.Weapon{Name: "Precision Rifle", Caliber: "6.5 mm"}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	err := repo.Create(ctx, &schema.Weapon{Name: "Precision Rifle", Caliber: "7.62 mm"})
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("second Create err=%v, want duplicate key", err)
	}

	var dup *apperr.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "Precision Rifle" {
		t.Fatalf("err=%v, want DuplicateKeyError for Precision Rifle", err)
	}

	n, _ := repo.Count(ctx)
	if n != 1 {
		t.Fatalf("count=%d, want 1", n)
	}
}

func TestWeaponRepositoryNotFound(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewWeaponRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByID err=%v, want not found", err)
	}
	if _, err := repo.FindByName(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("FindByName err=%v, want not found", err)
	}
	if err := repo.Delete(ctx, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Delete err=%v, want not found", err)
	}
	if err := repo.Update(ctx, &schema.Weapon{ID: 42, Name: "x", Caliber: "9 mm"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update err=%v, want not found", err)
	}
}

func TestWeaponRepositoryUpdateKeepsID(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewWeaponRepository(db)
	ctx := context.Background()

	a := &schema.Weapon{Name: "Barrett M82", Caliber: "12.7 mm"}
	b := &schema.Weapon{Name: "Accuracy International", Caliber: "0.308 in"}
	_ = repo.Create(ctx, a)
	_ = repo.Create(ctx, b)

	upd := &schema.Weapon{ID: a.ID, Name: "Barrett M107", Caliber: "12.7 mm"}
	if err := repo.Update(ctx, upd); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if upd.ID != a.ID || upd.Name != "Barrett M107" {
		t.Fatalf("updated=%+v", upd)
	}

	// 改名为已有名称必须失败
	err := repo.Update(ctx, &schema.Weapon{ID: a.ID, Name: "Accuracy International", Caliber: "12.7 mm"})
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("rename to existing err=%v, want duplicate key", err)
	}
}

func TestWeaponRepositoryListOrderedByName(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewWeaponRepository(db)
	ctx := context.Background()

	for _, name := range []string{"remington 700", "Barrett M82", "Accuracy International"} {
		if err := repo.Create(ctx, &schema.Weapon{Name: name, Caliber: "7.62 mm"}); err != nil {
			t.Fatalf("Create %s error: %v", name, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"Accuracy International", "Barrett M82", "remington 700"}
	if len(list) != len(want) {
		t.Fatalf("len=%d, want %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].Name != w {
			t.Fatalf("list[%d]=%s, want %s", i, list[i].Name, w)
		}
	}
}

func TestAmmunitionRepositoryByCaliber(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewAmmunitionRepository(db)
	ctx := context.Background()

	for _, a := range []schema.Ammunition{
		{Name: "Federal Match", Caliber: "7.62 mm"},
		{Name: "Hornady ELD-M", Caliber: "7.62 mm"},
		{Name: "Winchester Match", Caliber: "0.308 in"},
	} {
		a := a
		if err := repo.Create(ctx, &a); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	got, err := repo.ListByCaliber(ctx, "7.62 mm")
	if err != nil {
		t.Fatalf("ListByCaliber error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Federal Match" || got[1].Name != "Hornady ELD-M" {
		t.Fatalf("got=%+v", got)
	}

	if err := repo.Create(ctx, &schema.Ammunition{Name: "Federal Match", Caliber: "9 mm"}); !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("duplicate err=%v", err)
	}
}
