package calculator

import (
	"math"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
)

// RoundingPolicy 原始点击数（浮点）取整到整数点击的策略
type RoundingPolicy string

const (
	// RoundHalfUp 四舍五入，.5 进位（默认）
	RoundHalfUp RoundingPolicy = "half_up"
	// RoundDown 截断，宁可少调
	RoundDown RoundingPolicy = "down"
	// RoundHalfEven 银行家舍入
	RoundHalfEven RoundingPolicy = "half_even"
)

// 浮点误差保护：2.4999999999 视为 2.5
const roundingEpsilon = 1e-9

// ParseRoundingPolicy 解析取整策略，空值取 half_up
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "half_up", "halfup":
		return RoundHalfUp, nil
	case "down", "truncate", "floor":
		return RoundDown, nil
	case "half_even", "halfeven", "bankers":
		return RoundHalfEven, nil
	default:
		return "", apperr.Invalid("rounding", s, "应为 half_up、down 或 half_even")
	}
}

// Round 对非负幅值取整
func (p RoundingPolicy) Round(magnitude float64) int {
	if magnitude <= 0 || math.IsNaN(magnitude) {
		return 0
	}
	if magnitude > math.MaxInt32 {
		return math.MaxInt32
	}
	switch p {
	case RoundDown:
		return int(math.Floor(magnitude + roundingEpsilon))
	case RoundHalfEven:
		return int(math.RoundToEven(snapHalf(magnitude)))
	default:
		return int(math.Floor(magnitude + 0.5 + roundingEpsilon))
	}
}

// snapHalf 把非常接近 .5 的值吸附到 .5，避免浮点误差决定舍入方向
func snapHalf(v float64) float64 {
	frac := v - math.Floor(v)
	if math.Abs(frac-0.5) < roundingEpsilon {
		return math.Floor(v) + 0.5
	}
	return v
}
