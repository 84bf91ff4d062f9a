package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/repository"
	"github.com/yuqie6/ScopeClicks/internal/testutil"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

func newEquipmentService(t *testing.T) (*EquipmentService, *repository.WeaponRepository) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	weapons := repository.NewWeaponRepository(db)
	return NewEquipmentService(weapons, repository.NewAmmunitionRepository(db), repository.NewDistanceRepository(db)), weapons
}

func TestCreateWeaponTwiceFails(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	w, err := svc.CreateWeapon(ctx, "Precision Rifle", "6.5mm")
	if err != nil {
		t.Fatalf("CreateWeapon error: %v", err)
	}
	if w.ID == 0 || w.Caliber != "6.5 mm" {
		t.Fatalf("weapon=%+v", w)
	}

	_, err = svc.CreateWeapon(ctx, "Precision Rifle", "6.5 mm")
	var dup *apperr.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "Precision Rifle" {
		t.Fatalf("second create err=%v, want DuplicateKeyError", err)
	}
}

func TestCreateWeaponValidatesBeforeWrite(t *testing.T) {
	svc, weapons := newEquipmentService(t)
	ctx := context.Background()

	if _, err := svc.CreateWeapon(ctx, "Remington 700", "thirty"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err=%v, want validation", err)
	}
	if _, err := svc.CreateWeapon(ctx, "", "7.62 mm"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err=%v, want validation", err)
	}
	n, err := weapons.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("count=%d err=%v, want no rows", n, err)
	}
}

func TestUpdateWeaponKeepsIdentity(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	a, _ := svc.CreateWeapon(ctx, "Remington 700", "7.62 mm")
	b, _ := svc.CreateWeapon(ctx, "Tikka T3x", "6.5 mm")

	// 名称不变只改口径
	got, err := svc.UpdateWeapon(ctx, a.ID, "Remington 700", ".308 in")
	if err != nil || got.ID != a.ID || got.Caliber != ".308 in" {
		t.Fatalf("got=%+v err=%v", got, err)
	}
	if _, err := svc.UpdateWeapon(ctx, b.ID, "Remington 700", "6.5 mm"); !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("rename to taken name err=%v", err)
	}
	if _, err := svc.UpdateWeapon(ctx, 999, "Sako TRG", "8.6 mm"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("update missing err=%v", err)
	}
}

func TestCompatibleAmmunition(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	w, _ := svc.CreateWeapon(ctx, "Remington 700", "7.62mm")
	_, _ = svc.CreateAmmunition(ctx, "Federal Match", "7.62 mm")
	_, _ = svc.CreateAmmunition(ctx, "Hornady ELD", "6.5 mm")
	_, _ = svc.CreateAmmunition(ctx, "Lapua Scenar", "7.62 MM")

	got, err := svc.CompatibleAmmunition(ctx, w.ID)
	if err != nil {
		t.Fatalf("CompatibleAmmunition error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Federal Match" || got[1].Name != "Lapua Scenar" {
		t.Fatalf("got=%+v", got)
	}
	if _, err := svc.CompatibleAmmunition(ctx, 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing weapon err=%v", err)
	}
}

func TestDistanceLifecycle(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	d, err := svc.CreateDistance(ctx, unit.Distance{Value: 100, Unit: "meters"})
	if err != nil || d.Unit != unit.Meter || d.Display() != "100m" {
		t.Fatalf("d=%+v err=%v", d, err)
	}
	if _, err := svc.CreateDistance(ctx, unit.MustDistance(100, unit.Meter)); !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("duplicate distance err=%v", err)
	}
	if _, err := svc.CreateDistance(ctx, unit.Distance{Value: 0, Unit: unit.Meter}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("zero distance err=%v", err)
	}

	found, err := svc.FindDistance(ctx, unit.MustDistance(100, unit.Meter))
	if err != nil || found.ID != d.ID {
		t.Fatalf("found=%+v err=%v", found, err)
	}

	upd, err := svc.UpdateDistance(ctx, d.ID, unit.MustDistance(100, unit.Yard))
	if err != nil || upd.ID != d.ID || upd.Display() != "100yd" {
		t.Fatalf("upd=%+v err=%v", upd, err)
	}
	if err := svc.DeleteDistance(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDistance error: %v", err)
	}
	if err := svc.DeleteDistance(ctx, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete err=%v", err)
	}
}
