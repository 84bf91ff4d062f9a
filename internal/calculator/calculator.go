package calculator

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// DefaultPositionLimit 转塔位置允许范围 ±1000 点击
const DefaultPositionLimit = 1000

// ClickUnit 单次点击的标称单位：角度（moa/mil）或参考距离处的线性量（in/cm）
type ClickUnit string

const (
	ClickMOA        ClickUnit = "moa"
	ClickMIL        ClickUnit = "mil"
	ClickInch       ClickUnit = "in"
	ClickCentimeter ClickUnit = "cm"
)

// ParseClickUnit 解析点击单位
func ParseClickUnit(s string) (ClickUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moa":
		return ClickMOA, nil
	case "mil", "mrad":
		return ClickMIL, nil
	case "in", "inch", "ipc":
		return ClickInch, nil
	case "cm":
		return ClickCentimeter, nil
	case "":
		return "", apperr.Missing("click_unit")
	default:
		return "", apperr.Invalid("click_unit", s, "应为 moa、mil、in 或 cm")
	}
}

// angular 线性点击单位按 MOA 计算角度，角度单位原样返回
func (u ClickUnit) angular() unit.AngularUnit {
	if u == ClickMIL {
		return unit.MIL
	}
	return unit.MOA
}

func (u ClickUnit) linear() (unit.LinearUnit, bool) {
	switch u {
	case ClickInch:
		return unit.Inch, true
	case ClickCentimeter:
		return unit.Centimeter, true
	}
	return "", false
}

// Scope 瞄具点击分辨率：每次点击 Value 个 Unit，线性单位在 Reference 距离处定义
type Scope struct {
	Unit      ClickUnit
	Value     float64
	Reference unit.Distance
}

// ScopeFromClicksPerUnit 由“每单位点击数”构造，如 4 clicks/MOA = 0.25 MOA/click
func ScopeFromClicksPerUnit(clicks float64, u ClickUnit, reference unit.Distance) (Scope, error) {
	if clicks <= 0 || math.IsNaN(clicks) || math.IsInf(clicks, 0) {
		return Scope{}, apperr.Invalid("clicks_per_unit", clicks, "必须大于 0")
	}
	return Scope{Unit: u, Value: 1 / clicks, Reference: reference}, nil
}

func (s Scope) validate() error {
	if s.Unit == "" {
		return apperr.Missing("click_unit")
	}
	if _, err := ParseClickUnit(string(s.Unit)); err != nil {
		return err
	}
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return apperr.Invalid("click_value", s.Value, "不是有效数字")
	}
	if s.Value <= 0 {
		return apperr.Invalid("click_value", s.Value, "必须大于 0")
	}
	if _, ok := s.Unit.linear(); ok {
		if _, err := unit.NewDistance(s.Reference.Value, s.Reference.Unit); err != nil {
			return fmt.Errorf("reference_distance: %w", err)
		}
	}
	return nil
}

// Config 计算器的显式配置，不读取任何全局状态
type Config struct {
	MOA           unit.MOAModel
	Rounding      RoundingPolicy
	PositionLimit int
}

// DefaultConfig 默认配置：精确 MOA、四舍五入、±1000
func DefaultConfig() Config {
	return Config{
		MOA:           unit.MOAExact,
		Rounding:      RoundHalfUp,
		PositionLimit: DefaultPositionLimit,
	}
}

// Calculator 点击数计算器
type Calculator struct {
	cfg  Config
	conv unit.Converter
}

// New 创建计算器，零值字段取默认
func New(cfg Config) *Calculator {
	def := DefaultConfig()
	if cfg.MOA == "" {
		cfg.MOA = def.MOA
	}
	if cfg.Rounding == "" {
		cfg.Rounding = def.Rounding
	}
	if cfg.PositionLimit <= 0 {
		cfg.PositionLimit = def.PositionLimit
	}
	return &Calculator{cfg: cfg, conv: unit.NewConverter(cfg.MOA)}
}

// Config 返回生效的配置
func (c *Calculator) Config() Config {
	return c.cfg
}

// Converter 返回与计算器一致的角度换算器
func (c *Calculator) Converter() unit.Converter {
	return c.conv
}

// Adjustment 单轴调整结果
type Adjustment struct {
	Axis      Axis
	Clicks    int       // 非负点击数
	Direction Direction // Clicks 为 0 时为 None
	RawClicks float64   // 取整前的点击数（非负）
	Angle     float64   // 偏差角度，单位见 AngleUnit
	AngleUnit unit.AngularUnit
}

// Signed 带符号的位置变化
func (a Adjustment) Signed() int {
	return a.Clicks * a.Direction.sign()
}

// CheckPosition 校验转塔位置是否在允许范围内
func (c *Calculator) CheckPosition(field string, v int) error {
	if v < -c.cfg.PositionLimit || v > c.cfg.PositionLimit {
		return apperr.Invalid(field, v, fmt.Sprintf("转塔位置必须在 -%d 到 %d 之间", c.cfg.PositionLimit, c.cfg.PositionLimit))
	}
	return nil
}

// Delta 从当前转塔位置调到目标位置需要的点击数与方向
func (c *Calculator) Delta(axis Axis, current, target int) (Adjustment, error) {
	if err := c.CheckPosition("current_position", current); err != nil {
		return Adjustment{}, err
	}
	if err := c.CheckPosition("target_position", target); err != nil {
		return Adjustment{}, err
	}
	d := target - current
	clicks := d
	if clicks < 0 {
		clicks = -clicks
	}
	adj := Adjustment{
		Axis:      axis,
		Clicks:    clicks,
		Direction: forPositionChange(axis, d),
		RawClicks: float64(clicks),
	}
	slog.Debug("计算转塔点击", "axis", axis, "current", current, "target", target, "clicks", clicks, "direction", adj.Direction)
	return adj, nil
}

// Miss 弹着偏差：X>0 偏右，Y>0 偏高
type Miss struct {
	X    float64
	Y    float64
	Unit unit.LinearUnit
}

// CorrectionRequest 根据弹着偏差求修正量
type CorrectionRequest struct {
	Scope            Scope
	Target           unit.Distance
	Miss             Miss
	CurrentElevation int
	CurrentWindage   int
}

// Correction 修正结果及调整后的转塔位置
type Correction struct {
	Elevation    Adjustment
	Windage      Adjustment
	NewElevation int
	NewWindage   int
}

// clickAngle 单次点击在目标距离处对应的角度（单位为 scope 的角度单位）
func (c *Calculator) clickAngle(s Scope) (float64, error) {
	lu, ok := s.Unit.linear()
	if !ok {
		return s.Value, nil
	}
	return c.conv.LinearToAngular(s.Value, lu, s.Reference, s.Unit.angular())
}

// RawClicks 偏差换算为取整前的点击数（带符号，与偏差同号）
func (c *Calculator) RawClicks(s Scope, target unit.Distance, miss float64, missUnit unit.LinearUnit) (float64, float64, error) {
	if err := s.validate(); err != nil {
		return 0, 0, err
	}
	per, err := c.clickAngle(s)
	if err != nil {
		return 0, 0, err
	}
	angle, err := c.conv.LinearToAngular(miss, missUnit, target, s.Unit.angular())
	if err != nil {
		return 0, 0, err
	}
	return angle / per, angle, nil
}

func (c *Calculator) axisAdjustment(axis Axis, s Scope, target unit.Distance, miss float64, missUnit unit.LinearUnit) (Adjustment, error) {
	raw, angle, err := c.RawClicks(s, target, miss, missUnit)
	if err != nil {
		return Adjustment{}, err
	}
	// 取整后仍超过两倍上限的调整从任何合法起点出发都必然越界
	if span := float64(2*c.cfg.PositionLimit + 1); math.IsNaN(raw) || math.Abs(raw) > span {
		return Adjustment{}, apperr.Invalid(string(axis)+"_clicks", raw, fmt.Sprintf("点击数超出转塔行程 %d", 2*c.cfg.PositionLimit))
	}
	clicks := c.cfg.Rounding.Round(math.Abs(raw))
	dir := None
	if clicks > 0 {
		dir = forMiss(axis, miss)
	}
	return Adjustment{
		Axis:      axis,
		Clicks:    clicks,
		Direction: dir,
		RawClicks: math.Abs(raw),
		Angle:     math.Abs(angle),
		AngleUnit: s.Unit.angular(),
	}, nil
}

// Correct 把观测到的弹着偏差换算为两轴的整数点击与方向
func (c *Calculator) Correct(req CorrectionRequest) (Correction, error) {
	if req.Miss.Unit == "" {
		return Correction{}, apperr.Missing("miss_unit")
	}
	if req.Target.Unit == "" {
		return Correction{}, apperr.Missing("target_distance")
	}
	if err := c.CheckPosition("current_elevation", req.CurrentElevation); err != nil {
		return Correction{}, err
	}
	if err := c.CheckPosition("current_windage", req.CurrentWindage); err != nil {
		return Correction{}, err
	}

	elev, err := c.axisAdjustment(Elevation, req.Scope, req.Target, req.Miss.Y, req.Miss.Unit)
	if err != nil {
		return Correction{}, err
	}
	wind, err := c.axisAdjustment(Windage, req.Scope, req.Target, req.Miss.X, req.Miss.Unit)
	if err != nil {
		return Correction{}, err
	}

	out := Correction{
		Elevation:    elev,
		Windage:      wind,
		NewElevation: req.CurrentElevation + elev.Signed(),
		NewWindage:   req.CurrentWindage + wind.Signed(),
	}
	if err := c.CheckPosition("new_elevation", out.NewElevation); err != nil {
		return Correction{}, err
	}
	if err := c.CheckPosition("new_windage", out.NewWindage); err != nil {
		return Correction{}, err
	}

	slog.Debug("计算弹着修正",
		"target", req.Target.String(),
		"elevation", fmt.Sprintf("%d %s", elev.Clicks, elev.Direction),
		"windage", fmt.Sprintf("%d %s", wind.Clicks, wind.Direction),
	)
	return out, nil
}
