package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

const (
	entityWeapon     = "weapon"
	entityAmmunition = "ammunition"
	entityDistance   = "distance"
)

// EquipmentService 装备档案管理：先校验再写库，写入前按名称做唯一性检查
type EquipmentService struct {
	weapons   WeaponRepository
	ammo      AmmunitionRepository
	distances DistanceRepository
}

// NewEquipmentService 创建装备服务
func NewEquipmentService(weapons WeaponRepository, ammo AmmunitionRepository, distances DistanceRepository) *EquipmentService {
	return &EquipmentService{weapons: weapons, ammo: ammo, distances: distances}
}

// ensureFree 检查名称未被其它记录占用；selfID 为当前更新的记录
func ensureFree(entity, key string, selfID, existingID int64, err error) error {
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		return err
	}
	if existingID != selfID {
		return &apperr.DuplicateKeyError{Entity: entity, Key: key}
	}
	return nil
}

func normalizeEquipment(nameField, name, caliber string) (string, string, error) {
	name, err := ValidateName(nameField, name)
	if err != nil {
		return "", "", err
	}
	caliber, err = NormalizeCaliber(caliber)
	if err != nil {
		return "", "", err
	}
	return name, caliber, nil
}

// ===== 武器 =====

// CreateWeapon 新建武器
func (s *EquipmentService) CreateWeapon(ctx context.Context, name, caliber string) (*schema.Weapon, error) {
	name, caliber, err := normalizeEquipment("weapon", name, caliber)
	if err != nil {
		slog.Warn("武器校验失败", "error", err)
		return nil, err
	}
	existing, err := s.weapons.FindByName(ctx, name)
	if err := ensureFree(entityWeapon, name, 0, idOf(existing), err); err != nil {
		return nil, err
	}

	w := &schema.Weapon{Name: name, Caliber: caliber}
	if err := s.weapons.Create(ctx, w); err != nil {
		return nil, err
	}
	slog.Info("武器已创建", "id", w.ID, "name", w.Name)
	return w, nil
}

// UpdateWeapon 更新武器名称与口径
func (s *EquipmentService) UpdateWeapon(ctx context.Context, id int64, name, caliber string) (*schema.Weapon, error) {
	if id <= 0 {
		return nil, apperr.Missing("weapon_id")
	}
	name, caliber, err := normalizeEquipment("weapon", name, caliber)
	if err != nil {
		slog.Warn("武器校验失败", "id", id, "error", err)
		return nil, err
	}
	existing, err := s.weapons.FindByName(ctx, name)
	if err := ensureFree(entityWeapon, name, id, idOf(existing), err); err != nil {
		return nil, err
	}

	w := &schema.Weapon{ID: id, Name: name, Caliber: caliber}
	if err := s.weapons.Update(ctx, w); err != nil {
		return nil, err
	}
	slog.Info("武器已更新", "id", w.ID, "name", w.Name)
	return w, nil
}

// DeleteWeapon 删除武器，其结果级联删除
func (s *EquipmentService) DeleteWeapon(ctx context.Context, id int64) error {
	if err := s.weapons.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("武器已删除", "id", id)
	return nil
}

// GetWeapon 根据 ID 获取武器
func (s *EquipmentService) GetWeapon(ctx context.Context, id int64) (*schema.Weapon, error) {
	return s.weapons.GetByID(ctx, id)
}

// FindWeapon 根据名称获取武器
func (s *EquipmentService) FindWeapon(ctx context.Context, name string) (*schema.Weapon, error) {
	return s.weapons.FindByName(ctx, name)
}

// ListWeapons 获取全部武器
func (s *EquipmentService) ListWeapons(ctx context.Context) ([]schema.Weapon, error) {
	return s.weapons.List(ctx)
}

// ===== 弹药 =====

// CreateAmmunition 新建弹药
func (s *EquipmentService) CreateAmmunition(ctx context.Context, name, caliber string) (*schema.Ammunition, error) {
	name, caliber, err := normalizeEquipment("ammunition", name, caliber)
	if err != nil {
		slog.Warn("弹药校验失败", "error", err)
		return nil, err
	}
	existing, err := s.ammo.FindByName(ctx, name)
	if err := ensureFree(entityAmmunition, name, 0, ammoIDOf(existing), err); err != nil {
		return nil, err
	}

	a := &schema.Ammunition{Name: name, Caliber: caliber}
	if err := s.ammo.Create(ctx, a); err != nil {
		return nil, err
	}
	slog.Info("弹药已创建", "id", a.ID, "name", a.Name)
	return a, nil
}

// UpdateAmmunition 更新弹药名称与口径
func (s *EquipmentService) UpdateAmmunition(ctx context.Context, id int64, name, caliber string) (*schema.Ammunition, error) {
	if id <= 0 {
		return nil, apperr.Missing("ammunition_id")
	}
	name, caliber, err := normalizeEquipment("ammunition", name, caliber)
	if err != nil {
		slog.Warn("弹药校验失败", "id", id, "error", err)
		return nil, err
	}
	existing, err := s.ammo.FindByName(ctx, name)
	if err := ensureFree(entityAmmunition, name, id, ammoIDOf(existing), err); err != nil {
		return nil, err
	}

	a := &schema.Ammunition{ID: id, Name: name, Caliber: caliber}
	if err := s.ammo.Update(ctx, a); err != nil {
		return nil, err
	}
	slog.Info("弹药已更新", "id", a.ID, "name", a.Name)
	return a, nil
}

// DeleteAmmunition 删除弹药，其结果级联删除
func (s *EquipmentService) DeleteAmmunition(ctx context.Context, id int64) error {
	if err := s.ammo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("弹药已删除", "id", id)
	return nil
}

// GetAmmunition 根据 ID 获取弹药
func (s *EquipmentService) GetAmmunition(ctx context.Context, id int64) (*schema.Ammunition, error) {
	return s.ammo.GetByID(ctx, id)
}

// FindAmmunition 根据名称获取弹药
func (s *EquipmentService) FindAmmunition(ctx context.Context, name string) (*schema.Ammunition, error) {
	return s.ammo.FindByName(ctx, name)
}

// ListAmmunition 获取全部弹药
func (s *EquipmentService) ListAmmunition(ctx context.Context) ([]schema.Ammunition, error) {
	return s.ammo.List(ctx)
}

// CompatibleAmmunition 与武器口径相同的弹药，仅供参考，结果不做强制
func (s *EquipmentService) CompatibleAmmunition(ctx context.Context, weaponID int64) ([]schema.Ammunition, error) {
	w, err := s.weapons.GetByID(ctx, weaponID)
	if err != nil {
		return nil, err
	}
	return s.ammo.ListByCaliber(ctx, w.Caliber)
}

// ===== 距离 =====

// CreateDistance 新建距离
func (s *EquipmentService) CreateDistance(ctx context.Context, d unit.Distance) (*schema.Distance, error) {
	d, err := ValidateDistance(d)
	if err != nil {
		slog.Warn("距离校验失败", "error", err)
		return nil, err
	}
	existing, err := s.distances.Find(ctx, d)
	if err := ensureFree(entityDistance, d.String(), 0, distanceIDOf(existing), err); err != nil {
		return nil, err
	}

	row := &schema.Distance{Value: d.Value, Unit: d.Unit}
	if err := s.distances.Create(ctx, row); err != nil {
		return nil, err
	}
	slog.Info("距离已创建", "id", row.ID, "distance", row.Display())
	return row, nil
}

// UpdateDistance 更新距离数值与单位
func (s *EquipmentService) UpdateDistance(ctx context.Context, id int64, d unit.Distance) (*schema.Distance, error) {
	if id <= 0 {
		return nil, apperr.Missing("distance_id")
	}
	d, err := ValidateDistance(d)
	if err != nil {
		slog.Warn("距离校验失败", "id", id, "error", err)
		return nil, err
	}
	existing, err := s.distances.Find(ctx, d)
	if err := ensureFree(entityDistance, d.String(), id, distanceIDOf(existing), err); err != nil {
		return nil, err
	}

	row := &schema.Distance{ID: id, Value: d.Value, Unit: d.Unit}
	if err := s.distances.Update(ctx, row); err != nil {
		return nil, err
	}
	slog.Info("距离已更新", "id", row.ID, "distance", row.Display())
	return row, nil
}

// DeleteDistance 删除距离，其结果级联删除
func (s *EquipmentService) DeleteDistance(ctx context.Context, id int64) error {
	if err := s.distances.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("距离已删除", "id", id)
	return nil
}

// GetDistance 根据 ID 获取距离
func (s *EquipmentService) GetDistance(ctx context.Context, id int64) (*schema.Distance, error) {
	return s.distances.GetByID(ctx, id)
}

// FindDistance 根据数值与单位获取距离
func (s *EquipmentService) FindDistance(ctx context.Context, d unit.Distance) (*schema.Distance, error) {
	d, err := ValidateDistance(d)
	if err != nil {
		return nil, err
	}
	return s.distances.Find(ctx, d)
}

// ListDistances 获取全部距离
func (s *EquipmentService) ListDistances(ctx context.Context) ([]schema.Distance, error) {
	return s.distances.List(ctx)
}

func idOf(w *schema.Weapon) int64 {
	if w == nil {
		return 0
	}
	return w.ID
}

func ammoIDOf(a *schema.Ammunition) int64 {
	if a == nil {
		return 0
	}
	return a.ID
}

func distanceIDOf(d *schema.Distance) int64 {
	if d == nil {
		return 0
	}
	return d.ID
}
