package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindBusinessLogic, KindOf(BusinessLogic("rule violated")))
	assert.Equal(t, KindConflict, KindOf(Conflict("blocked")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

// classified errors survive wrapping
func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create application: %w", BusinessLogic("no open positions"))
	assert.Equal(t, KindBusinessLogic, KindOf(err))
}

func TestError_Message(t *testing.T) {
	err := NotFound("Job role with ID %d not found", 42)
	assert.Equal(t, "Job role with ID 42 not found", err.Error())
}

func TestError_FieldAggregation(t *testing.T) {
	err := ValidationFields(
		FieldError{Field: "jobRoleId", Message: "Valid job role ID is required"},
		FieldError{Field: "cvText", Message: "CV text is required"},
	)

	assert.Contains(t, err.Error(), "Valid job role ID is required")
	assert.Contains(t, err.Error(), "CV text is required")
	assert.Len(t, FieldsOf(err), 2)
}

func TestInternal_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("storage fault", cause)
	assert.ErrorIs(t, err, cause)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "business_logic", KindBusinessLogic.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "internal", KindInternal.String())
}
