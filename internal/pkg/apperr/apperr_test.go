package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsUnwrapToSentinel(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{Invalid("distance", -1, "必须大于 0"), ErrValidation},
		{Missing("name"), ErrValidation},
		{&DuplicateKeyError{Entity: "weapon", Key: "Precision Rifle"}, ErrDuplicateKey},
		{&ReferentialIntegrityError{Entity: "result", ID: 3}, ErrReferentialIntegrity},
		{NotFound("weapon", 7), ErrNotFound},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("外层: %w", c.err)
		if !errors.Is(wrapped, c.want) {
			t.Fatalf("errors.Is(%v, %v) = false", wrapped, c.want)
		}
	}
}

func TestReferentialIntegrityKeepsCause(t *testing.T) {
	cause := errors.New("FOREIGN KEY constraint failed")
	err := &ReferentialIntegrityError{Entity: "result", ID: 1, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable from %v", err)
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("referential error should not match ValidationError")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Invalid("click_value", 0.0, "必须大于 0")
	if got := err.Error(); got != "click_value=0: 必须大于 0" {
		t.Fatalf("message=%q", got)
	}
	if got := Missing("caliber").Error(); got != "caliber: 不能为空" {
		t.Fatalf("message=%q", got)
	}
}
