package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/hiretrack/internal/errs"
	"github.com/blockedby/hiretrack/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validCreateInput() *CreateJobRoleInput {
	return &CreateJobRoleInput{
		Name:                "Senior Software Engineer",
		Location:            "Belfast",
		Capability:          "Engineering",
		Band:                "Senior",
		ClosingDate:         "2026-10-31",
		Summary:             "Build and run backend services",
		KeyResponsibilities: "Design, code, review",
	}
}

func TestValidateRequiredFields(t *testing.T) {
	assert.Nil(t, ValidateRequiredFields(validCreateInput()))

	in := validCreateInput()
	in.Band = ""
	err := ValidateRequiredFields(in)
	require.NotNil(t, err)
	assert.Equal(t, errs.KindValidation, err.Kind)
}

func TestValidateStatus(t *testing.T) {
	t.Run("defaults to open", func(t *testing.T) {
		status, err := ValidateStatus(nil)
		require.Nil(t, err)
		assert.Equal(t, models.JobRoleStatusOpen, status)

		status, err = ValidateStatus(strPtr(""))
		require.Nil(t, err)
		assert.Equal(t, models.JobRoleStatusOpen, status)
	})

	t.Run("accepts closed", func(t *testing.T) {
		status, err := ValidateStatus(strPtr("closed"))
		require.Nil(t, err)
		assert.Equal(t, models.JobRoleStatusClosed, status)
	})

	t.Run("rejects unknown", func(t *testing.T) {
		_, err := ValidateStatus(strPtr("archived"))
		assert.NotNil(t, err)
	})
}

func TestValidateNumberOfOpenPositions(t *testing.T) {
	t.Run("defaults to 1", func(t *testing.T) {
		positions, err := ValidateNumberOfOpenPositions(nil)
		require.Nil(t, err)
		assert.Equal(t, 1, positions)
	})

	t.Run("zero is allowed", func(t *testing.T) {
		positions, err := ValidateNumberOfOpenPositions(intPtr(0))
		require.Nil(t, err)
		assert.Equal(t, 0, positions)
	})

	t.Run("negative is rejected", func(t *testing.T) {
		_, err := ValidateNumberOfOpenPositions(intPtr(-1))
		assert.NotNil(t, err)
	})
}

func TestValidateClosingDate(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		parsed, err := ValidateClosingDate("2026-10-31T12:00:00+02:00")
		require.Nil(t, err)
		assert.Equal(t, time.UTC, parsed.Location())
		assert.Equal(t, 10, parsed.Hour())
	})

	t.Run("plain date", func(t *testing.T) {
		parsed, err := ValidateClosingDate("2026-10-31")
		require.Nil(t, err)
		assert.Equal(t, time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateClosingDate("next friday")
		assert.NotNil(t, err)
	})
}

func TestValidateCreateJobRole(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		values, err := ValidateCreateJobRole(validCreateInput())
		require.Nil(t, err)
		assert.Equal(t, models.JobRoleStatusOpen, values.Status)
		assert.Equal(t, 1, values.NumberOfOpenPositions)
		assert.False(t, values.ClosingDate.IsZero())
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		in := validCreateInput()
		in.Status = strPtr("closed")
		in.NumberOfOpenPositions = intPtr(5)
		values, err := ValidateCreateJobRole(in)
		require.Nil(t, err)
		assert.Equal(t, models.JobRoleStatusClosed, values.Status)
		assert.Equal(t, 5, values.NumberOfOpenPositions)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		in := validCreateInput()
		in.Name = ""
		in.ClosingDate = "garbage"
		_, err := ValidateCreateJobRole(in)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "missing required fields")
	})
}

func TestValidateUpdateJobRole(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		_, err := ValidateUpdateJobRole(&UpdateJobRoleInput{})
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "at least one field")
	})

	t.Run("blank string field", func(t *testing.T) {
		_, err := ValidateUpdateJobRole(&UpdateJobRoleInput{Name: strPtr("   ")})
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "name must be a non-empty string")
	})

	t.Run("single field", func(t *testing.T) {
		upd, err := ValidateUpdateJobRole(&UpdateJobRoleInput{Location: strPtr("Derry")})
		require.Nil(t, err)
		require.NotNil(t, upd.Location)
		assert.Equal(t, "Derry", *upd.Location)
		assert.Nil(t, upd.Name)
		assert.Nil(t, upd.Status)
	})

	t.Run("status and positions and date", func(t *testing.T) {
		upd, err := ValidateUpdateJobRole(&UpdateJobRoleInput{
			Status:                strPtr("closed"),
			NumberOfOpenPositions: intPtr(0),
			ClosingDate:           strPtr("2026-12-01"),
		})
		require.Nil(t, err)
		require.NotNil(t, upd.Status)
		assert.Equal(t, models.JobRoleStatusClosed, *upd.Status)
		require.NotNil(t, upd.NumberOfOpenPositions)
		assert.Equal(t, 0, *upd.NumberOfOpenPositions)
		require.NotNil(t, upd.ClosingDate)
		assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), *upd.ClosingDate)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := ValidateUpdateJobRole(&UpdateJobRoleInput{Status: strPtr("paused")})
		assert.NotNil(t, err)
	})
}
