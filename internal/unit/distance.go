package unit

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
)

// DistanceUnit 射击距离单位，取值与 distances.unit 列一致
type DistanceUnit string

const (
	Meter DistanceUnit = "m"
	Yard  DistanceUnit = "yd"
	Foot  DistanceUnit = "ft"
)

// DistanceUnits 支持的距离单位（界面下拉顺序）
var DistanceUnits = []DistanceUnit{Meter, Yard, Foot}

func metersPer(u DistanceUnit) (float64, error) {
	switch u {
	case Meter:
		return 1, nil
	case Yard:
		return 0.9144, nil
	case Foot:
		return 0.3048, nil
	default:
		return 0, apperr.Invalid("distance_unit", string(u), "不支持的距离单位")
	}
}

// ParseDistanceUnit 解析距离单位，接受常见写法
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "meter", "meters", "metre", "metres":
		return Meter, nil
	case "yd", "yds", "yard", "yards":
		return Yard, nil
	case "ft", "foot", "feet":
		return Foot, nil
	case "":
		return "", apperr.Missing("distance_unit")
	default:
		return "", apperr.Invalid("distance_unit", s, "不支持的距离单位")
	}
}

// ConvertDistance 在距离单位之间做线性换算
func ConvertDistance(value float64, from, to DistanceUnit) (float64, error) {
	f, err := metersPer(from)
	if err != nil {
		return 0, err
	}
	t, err := metersPer(to)
	if err != nil {
		return 0, err
	}
	return value * f / t, nil
}

// Distance 带单位的距离值
type Distance struct {
	Value float64
	Unit  DistanceUnit
}

// NewDistance 创建并校验距离：必须为有限正数
func NewDistance(value float64, u DistanceUnit) (Distance, error) {
	if _, err := metersPer(u); err != nil {
		return Distance{}, err
	}
	if err := checkDistance(value); err != nil {
		return Distance{}, err
	}
	return Distance{Value: value, Unit: u}, nil
}

// MustDistance 同 NewDistance，失败时 panic，仅用于常量
func MustDistance(value float64, u DistanceUnit) Distance {
	d, err := NewDistance(value, u)
	if err != nil {
		panic(err)
	}
	return d
}

func checkDistance(value float64) error {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return apperr.Invalid("distance", value, "不是有效数字")
	case value == 0:
		return apperr.Invalid("distance", value, "距离为 0 时无法换算角度")
	case value < 0:
		return apperr.Invalid("distance", value, "距离不能为负")
	}
	return nil
}

// Meters 以米为单位的数值
func (d Distance) Meters() (float64, error) {
	return ConvertDistance(d.Value, d.Unit, Meter)
}

// In 换算到指定单位，不支持的单位返回 0
func (d Distance) In(u DistanceUnit) float64 {
	v, err := ConvertDistance(d.Value, d.Unit, u)
	if err != nil {
		return 0
	}
	return v
}

// String 显示格式与原始数据一致，如 100m、300yd
func (d Distance) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + string(d.Unit)
}

var distancePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([A-Za-z]+)\s*$`)

// ParseDistance 解析 "100m"、"300 yd" 之类的显示字符串
func ParseDistance(s string) (Distance, error) {
	m := distancePattern.FindStringSubmatch(s)
	if m == nil {
		if strings.TrimSpace(s) == "" {
			return Distance{}, apperr.Missing("distance")
		}
		return Distance{}, apperr.Invalid("distance", s, "格式应为 数值+单位，如 100m")
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Distance{}, apperr.Invalid("distance", s, "不是有效数字")
	}
	u, err := ParseDistanceUnit(m[2])
	if err != nil {
		return Distance{}, err
	}
	return NewDistance(v, u)
}
