package unit

import (
	"fmt"
	"math"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
)

// AngularUnit 瞄具调整的角度单位
type AngularUnit string

const (
	MOA AngularUnit = "moa"
	MIL AngularUnit = "mil"
)

// ParseAngularUnit 解析角度单位
func ParseAngularUnit(s string) (AngularUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moa":
		return MOA, nil
	case "mil", "mils", "mrad", "milliradian":
		return MIL, nil
	case "":
		return "", apperr.Missing("angular_unit")
	default:
		return "", apperr.Invalid("angular_unit", s, "不支持的角度单位")
	}
}

// MOAModel 决定 1 MOA 对应的线性张角
type MOAModel string

const (
	// MOAExact 1 MOA = 距离 × tan(1/60°)
	MOAExact MOAModel = "exact"
	// MOACustomary 1 MOA = 100 码处 1.047 英寸
	MOACustomary MOAModel = "customary"
)

// CustomaryInchesPer100Yd 习惯近似值
const CustomaryInchesPer100Yd = 1.047

// ParseMOAModel 解析 MOA 模型，空值取 exact
func ParseMOAModel(s string) (MOAModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "trig":
		return MOAExact, nil
	case "customary", "1.047", "shooter":
		return MOACustomary, nil
	default:
		return "", apperr.Invalid("moa_model", s, "应为 exact 或 customary")
	}
}

// Converter 角度与线性量互换。
// 换算对角度数量是线性的：n 个单位的张角 = n × 单位张角 × 距离，
// 同一 Converter 下往返换算只有浮点误差。
type Converter struct {
	MOA MOAModel
}

// NewConverter 创建换算器
func NewConverter(model MOAModel) Converter {
	if model == "" {
		model = MOAExact
	}
	return Converter{MOA: model}
}

// subtension 每单位角度、每米距离对应的线性米数
func (c Converter) subtension(u AngularUnit) (float64, error) {
	switch u {
	case MIL:
		return 1.0 / 1000, nil
	case MOA:
		switch c.MOA {
		case MOACustomary:
			// 1.047in / 3600in (100yd)
			return CustomaryInchesPer100Yd / 3600, nil
		case MOAExact, "":
			return math.Tan(math.Pi / 10800), nil
		default:
			return 0, apperr.Invalid("moa_model", string(c.MOA), "应为 exact 或 customary")
		}
	default:
		return 0, apperr.Invalid("angular_unit", string(u), "不支持的角度单位")
	}
}

// AngularToLinear 把角度换算成指定距离处的线性量（单位 out）
func (c Converter) AngularToLinear(angle float64, au AngularUnit, distance Distance, out LinearUnit) (float64, error) {
	if err := checkFinite("angle", angle); err != nil {
		return 0, err
	}
	s, err := c.subtension(au)
	if err != nil {
		return 0, err
	}
	dm, err := distanceMeters(distance)
	if err != nil {
		return 0, err
	}
	outPer, err := linearMetersPer(out)
	if err != nil {
		return 0, err
	}
	return angle * s * dm / outPer, nil
}

// LinearToAngular 把指定距离处的线性量换算成角度（单位 out）
func (c Converter) LinearToAngular(linear float64, lu LinearUnit, distance Distance, out AngularUnit) (float64, error) {
	if err := checkFinite("linear", linear); err != nil {
		return 0, err
	}
	inPer, err := linearMetersPer(lu)
	if err != nil {
		return 0, err
	}
	dm, err := distanceMeters(distance)
	if err != nil {
		return 0, err
	}
	s, err := c.subtension(out)
	if err != nil {
		return 0, err
	}
	return linear * inPer / (s * dm), nil
}

// ConvertAngular 在 MOA 与 MIL 之间换算
func (c Converter) ConvertAngular(value float64, from, to AngularUnit) (float64, error) {
	f, err := c.subtension(from)
	if err != nil {
		return 0, err
	}
	t, err := c.subtension(to)
	if err != nil {
		return 0, err
	}
	return value * f / t, nil
}

func distanceMeters(d Distance) (float64, error) {
	if err := checkDistance(d.Value); err != nil {
		return 0, err
	}
	return d.Meters()
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperr.Invalid(field, fmt.Sprint(v), "不是有效数字")
	}
	return nil
}
