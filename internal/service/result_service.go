package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuqie6/ScopeClicks/internal/calculator"
	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/repository"
	"github.com/yuqie6/ScopeClicks/internal/schema"
)

// ResultService 结果解析：按 武器+弹药+距离 定位结果行，并交给计算器
type ResultService struct {
	weapons   WeaponRepository
	ammo      AmmunitionRepository
	distances DistanceRepository
	results   ResultRepository
	calc      *calculator.Calculator
}

// NewResultService 创建结果服务
func NewResultService(
	weapons WeaponRepository,
	ammo AmmunitionRepository,
	distances DistanceRepository,
	results ResultRepository,
	calc *calculator.Calculator,
) *ResultService {
	if calc == nil {
		calc = calculator.New(calculator.DefaultConfig())
	}
	return &ResultService{
		weapons:   weapons,
		ammo:      ammo,
		distances: distances,
		results:   results,
		calc:      calc,
	}
}

// checkRefs 确认三个引用实体都存在，避免产生孤儿结果
func (s *ResultService) checkRefs(ctx context.Context, key schema.Triple) error {
	if key.WeaponID <= 0 {
		return apperr.Missing("weapon_id")
	}
	if key.AmmunitionID <= 0 {
		return apperr.Missing("ammunition_id")
	}
	if key.DistanceID <= 0 {
		return apperr.Missing("distance_id")
	}
	if _, err := s.weapons.GetByID(ctx, key.WeaponID); err != nil {
		return err
	}
	if _, err := s.ammo.GetByID(ctx, key.AmmunitionID); err != nil {
		return err
	}
	if _, err := s.distances.GetByID(ctx, key.DistanceID); err != nil {
		return err
	}
	return nil
}

// GetOrCreate 获取组合对应的结果，不存在时以 0 点击新建；同一组合总是返回同一行
func (s *ResultService) GetOrCreate(ctx context.Context, key schema.Triple) (*schema.Result, error) {
	if err := s.checkRefs(ctx, key); err != nil {
		return nil, err
	}

	res, err := s.results.FindByTriple(ctx, key)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	row := &schema.Result{
		WeaponID:     key.WeaponID,
		AmmunitionID: key.AmmunitionID,
		DistanceID:   key.DistanceID,
	}
	if err := s.results.Create(ctx, row); err != nil {
		if !errors.Is(err, apperr.ErrDuplicateKey) {
			return nil, err
		}
		// 已被并发写入，回读现有行
		return s.results.FindByTriple(ctx, key)
	}
	slog.Info("结果已创建", "id", row.ID, "key", key.String())

	return s.results.GetByID(ctx, row.ID)
}

// Set 保存组合的目标转塔位置
func (s *ResultService) Set(ctx context.Context, key schema.Triple, clicks int) (*schema.Result, error) {
	if err := s.calc.CheckPosition("result", clicks); err != nil {
		return nil, err
	}
	res, err := s.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.results.UpdateClicks(ctx, res.ID, clicks); err != nil {
		return nil, err
	}
	res.Clicks = clicks
	slog.Info("结果已保存", "id", res.ID, "clicks", clicks)
	return res, nil
}

// Get 根据 ID 获取结果
func (s *ResultService) Get(ctx context.Context, id int64) (*schema.Result, error) {
	return s.results.GetByID(ctx, id)
}

// List 按条件获取结果
func (s *ResultService) List(ctx context.Context, filter repository.ResultFilter) ([]schema.Result, error) {
	return s.results.List(ctx, filter)
}

// Delete 删除结果
func (s *ResultService) Delete(ctx context.Context, id int64) error {
	if err := s.results.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("结果已删除", "id", id)
	return nil
}

// Calculate 从当前转塔位置调到组合已保存位置需要的点击
func (s *ResultService) Calculate(ctx context.Context, key schema.Triple, current int) (*schema.Result, calculator.Adjustment, error) {
	res, err := s.GetOrCreate(ctx, key)
	if err != nil {
		return nil, calculator.Adjustment{}, err
	}
	adj, err := s.calc.Delta(calculator.Elevation, current, res.Clicks)
	if err != nil {
		return nil, calculator.Adjustment{}, err
	}
	return res, adj, nil
}

// CorrectRequest 以组合为基准的弹着修正
type CorrectRequest struct {
	Key            schema.Triple
	Scope          calculator.Scope
	Miss           calculator.Miss
	CurrentWindage int
	// Save 为 true 时把修正后的高低位置写回结果
	Save bool
}

// CorrectResponse 修正结果；Result.Clicks 为保存后（或未保存时原有）的位置
type CorrectResponse struct {
	Result     *schema.Result
	Correction calculator.Correction
	Saved      bool
}

// Correct 目标距离取自结果的距离行，当前高低位置取自结果本身
func (s *ResultService) Correct(ctx context.Context, req CorrectRequest) (*CorrectResponse, error) {
	res, err := s.GetOrCreate(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if res.Distance == nil {
		return nil, fmt.Errorf("结果 %d 缺少距离信息", res.ID)
	}

	corr, err := s.calc.Correct(calculator.CorrectionRequest{
		Scope:            req.Scope,
		Target:           res.Distance.Measure(),
		Miss:             req.Miss,
		CurrentElevation: res.Clicks,
		CurrentWindage:   req.CurrentWindage,
	})
	if err != nil {
		return nil, err
	}

	out := &CorrectResponse{Result: res, Correction: corr}
	if req.Save && corr.NewElevation != res.Clicks {
		if err := s.results.UpdateClicks(ctx, res.ID, corr.NewElevation); err != nil {
			return nil, err
		}
		res.Clicks = corr.NewElevation
		out.Saved = true
		slog.Info("修正已保存", "id", res.ID, "clicks", res.Clicks)
	}
	return out, nil
}
