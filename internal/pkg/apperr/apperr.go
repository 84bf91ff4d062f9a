package apperr

import (
	"errors"
	"fmt"
)

// 错误分类哨兵值，调用方用 errors.Is 判断类别
var (
	ErrValidation           = errors.New("输入校验失败")
	ErrDuplicateKey         = errors.New("名称已存在")
	ErrReferentialIntegrity = errors.New("关联约束冲突")
	ErrNotFound             = errors.New("记录不存在")
)

// ValidationError 字段校验失败，在任何写库操作之前返回
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid 构造 ValidationError
func Invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// Missing 必填字段缺失
func Missing(field string) error {
	return &ValidationError{Field: field, Reason: "不能为空"}
}

// DuplicateKeyError 唯一键冲突
type DuplicateKeyError struct {
	Entity string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q 已存在", e.Entity, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// ReferentialIntegrityError 外键约束冲突
type ReferentialIntegrityError struct {
	Entity string
	ID     int64
	Err    error
}

func (e *ReferentialIntegrityError) Error() string {
	msg := fmt.Sprintf("%s id=%d 违反外键约束", e.Entity, e.ID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReferentialIntegrityError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrReferentialIntegrity}
	}
	return []error{ErrReferentialIntegrity, e.Err}
}

// NotFoundError 按 id/名称查询无结果
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s 不存在", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound 构造 NotFoundError，key 可以是 id 或名称
func NotFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}
