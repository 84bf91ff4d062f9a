package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// parseID 纯数字参数视为 ID
func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// resolveWeapon 先按名称查找武器，名称不存在且参数为纯数字时再按 ID 查找
func (a *app) resolveWeapon(ctx context.Context, arg string) (*schema.Weapon, error) {
	w, err := a.core.Services.Equipment.FindWeapon(ctx, strings.TrimSpace(arg))
	if id, ok := parseID(arg); ok && errors.Is(err, apperr.ErrNotFound) {
		return a.core.Services.Equipment.GetWeapon(ctx, id)
	}
	return w, err
}

// resolveAmmunition 先按名称查找弹药，名称不存在且参数为纯数字时再按 ID 查找
func (a *app) resolveAmmunition(ctx context.Context, arg string) (*schema.Ammunition, error) {
	am, err := a.core.Services.Equipment.FindAmmunition(ctx, strings.TrimSpace(arg))
	if id, ok := parseID(arg); ok && errors.Is(err, apperr.ErrNotFound) {
		return a.core.Services.Equipment.GetAmmunition(ctx, id)
	}
	return am, err
}

// resolveDistance 按 ID 或显示值（如 100m）查找距离
func (a *app) resolveDistance(ctx context.Context, arg string) (*schema.Distance, error) {
	if id, ok := parseID(arg); ok {
		return a.core.Services.Equipment.GetDistance(ctx, id)
	}
	d, err := unit.ParseDistance(arg)
	if err != nil {
		return nil, err
	}
	return a.core.Services.Equipment.FindDistance(ctx, d)
}

// resolveTriple 解析 <weapon> <ammo> <distance> 三个参数
func (a *app) resolveTriple(ctx context.Context, args []string) (schema.Triple, error) {
	w, err := a.resolveWeapon(ctx, args[0])
	if err != nil {
		return schema.Triple{}, err
	}
	am, err := a.resolveAmmunition(ctx, args[1])
	if err != nil {
		return schema.Triple{}, err
	}
	d, err := a.resolveDistance(ctx, args[2])
	if err != nil {
		return schema.Triple{}, err
	}
	return schema.Triple{WeaponID: w.ID, AmmunitionID: am.ID, DistanceID: d.ID}, nil
}
