package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

const (
	MaxNameLength    = 100
	MaxDistanceValue = 5000
)

var (
	namePattern    = regexp.MustCompile(`^[\p{L}\p{N} ._-]+$`)
	caliberPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d{1,3})?|\.\d{1,3})\s*(mm|in)$`)
)

// ValidateName 校验武器/弹药名称，返回去除首尾空白后的名称
func ValidateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Missing(field)
	}
	if n := len([]rune(name)); n > MaxNameLength {
		return "", apperr.Invalid(field, name, fmt.Sprintf("长度 %d 超过上限 %d", n, MaxNameLength))
	}
	if !namePattern.MatchString(name) {
		return "", apperr.Invalid(field, name, "只能包含字母、数字、空格和 - _ .")
	}
	return name, nil
}

// NormalizeCaliber 校验口径并规范为 "<数值> <单位>"，如 "7.62mm" -> "7.62 mm"
func NormalizeCaliber(caliber string) (string, error) {
	caliber = strings.TrimSpace(caliber)
	if caliber == "" {
		return "", apperr.Missing("caliber")
	}
	m := caliberPattern.FindStringSubmatch(caliber)
	if m == nil {
		return "", apperr.Invalid("caliber", caliber, "格式应为 7.62 mm 或 .308 in")
	}
	return m[1] + " " + strings.ToLower(m[2]), nil
}

// ValidateDistance 校验距离并规范单位写法：单位受支持，数值在 (0, 5000]
func ValidateDistance(d unit.Distance) (unit.Distance, error) {
	u, err := unit.ParseDistanceUnit(string(d.Unit))
	if err != nil {
		return unit.Distance{}, err
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) || d.Value <= 0 {
		return unit.Distance{}, apperr.Invalid("distance", d.Value, "必须大于 0")
	}
	if d.Value > MaxDistanceValue {
		return unit.Distance{}, apperr.Invalid("distance", d.Value, fmt.Sprintf("不能超过 %d", MaxDistanceValue))
	}
	return unit.Distance{Value: d.Value, Unit: u}, nil
}
