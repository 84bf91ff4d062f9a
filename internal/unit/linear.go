package unit

import (
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
)

// LinearUnit 靶面偏差（线性量）单位
type LinearUnit string

const (
	Inch       LinearUnit = "in"
	Centimeter LinearUnit = "cm"
	Millimeter LinearUnit = "mm"
)

func linearMetersPer(u LinearUnit) (float64, error) {
	switch u {
	case Inch:
		return 0.0254, nil
	case Centimeter:
		return 0.01, nil
	case Millimeter:
		return 0.001, nil
	default:
		return 0, apperr.Invalid("linear_unit", string(u), "不支持的长度单位")
	}
}

// ParseLinearUnit 解析长度单位
func ParseLinearUnit(s string) (LinearUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inch", "inches", `"`:
		return Inch, nil
	case "cm", "centimeter", "centimeters", "centimetre":
		return Centimeter, nil
	case "mm", "millimeter", "millimeters", "millimetre":
		return Millimeter, nil
	case "":
		return "", apperr.Missing("linear_unit")
	default:
		return "", apperr.Invalid("linear_unit", s, "不支持的长度单位")
	}
}

// ConvertLinear 在长度单位之间换算（精确线性比例）
func ConvertLinear(value float64, from, to LinearUnit) (float64, error) {
	f, err := linearMetersPer(from)
	if err != nil {
		return 0, err
	}
	t, err := linearMetersPer(to)
	if err != nil {
		return 0, err
	}
	return value * f / t, nil
}
