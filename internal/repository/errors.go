package repository

import (
	"errors"
	"strings"

	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translateWriteError 把 SQLite 约束错误映射到错误分类，其余原样返回
func translateWriteError(err error, entity, key string, id int64) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return &apperr.DuplicateKeyError{Entity: entity, Key: key}
	case isForeignKeyViolation(err):
		return &apperr.ReferentialIntegrityError{Entity: entity, ID: id, Err: err}
	default:
		return err
	}
}
