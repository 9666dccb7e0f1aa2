// Package validation holds the pure input-checking rules for job roles and
// applications. Functions here do no I/O; they return either normalized
// values or a classified *errs.Error.
package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/blockedby/hiretrack/internal/errs"
	"github.com/blockedby/hiretrack/internal/models"
	"github.com/blockedby/hiretrack/internal/repository"
)

var validate = validator.New()

// CreateJobRoleInput is the payload for creating a job role.
// Status and NumberOfOpenPositions are optional and defaulted.
type CreateJobRoleInput struct {
	Name                  string  `json:"name" validate:"required"`
	Location              string  `json:"location" validate:"required"`
	Capability            string  `json:"capability" validate:"required"`
	Band                  string  `json:"band" validate:"required"`
	ClosingDate           string  `json:"closingDate" validate:"required"`
	Summary               string  `json:"summary" validate:"required"`
	KeyResponsibilities   string  `json:"keyResponsibilities" validate:"required"`
	Status                *string `json:"status,omitempty"`
	NumberOfOpenPositions *int    `json:"numberOfOpenPositions,omitempty"`
}

// UpdateJobRoleInput is the partial-update payload. Every field is optional;
// at least one must be present.
type UpdateJobRoleInput struct {
	Name                  *string `json:"name,omitempty"`
	Location              *string `json:"location,omitempty"`
	Capability            *string `json:"capability,omitempty"`
	Band                  *string `json:"band,omitempty"`
	ClosingDate           *string `json:"closingDate,omitempty"`
	Summary               *string `json:"summary,omitempty"`
	KeyResponsibilities   *string `json:"keyResponsibilities,omitempty"`
	Status                *string `json:"status,omitempty"`
	NumberOfOpenPositions *int    `json:"numberOfOpenPositions,omitempty"`
}

// IsEmpty checks if no fields were supplied.
func (in *UpdateJobRoleInput) IsEmpty() bool {
	return in.Name == nil && in.Location == nil && in.Capability == nil &&
		in.Band == nil && in.ClosingDate == nil && in.Summary == nil &&
		in.KeyResponsibilities == nil && in.Status == nil &&
		in.NumberOfOpenPositions == nil
}

// CreateJobRoleValues holds the normalized/defaulted values produced by
// ValidateCreateJobRole.
type CreateJobRoleValues struct {
	Status                models.JobRoleStatus
	NumberOfOpenPositions int
	ClosingDate           time.Time
}

// ValidateRequiredFields checks that every mandatory create field is present.
func ValidateRequiredFields(in *CreateJobRoleInput) *errs.Error {
	if err := validate.Struct(in); err != nil {
		return errs.Validation("missing required fields. Required: name, location, capability, band, closingDate, summary, keyResponsibilities")
	}
	return nil
}

// ValidateStatus defaults an absent status to "open" and checks the value.
func ValidateStatus(status *string) (models.JobRoleStatus, *errs.Error) {
	if status == nil || *status == "" {
		return models.JobRoleStatusOpen, nil
	}
	s := models.JobRoleStatus(*status)
	if s != models.JobRoleStatusOpen && s != models.JobRoleStatusClosed {
		return "", errs.Validation("invalid status. Must be 'open' or 'closed'")
	}
	return s, nil
}

// ValidateNumberOfOpenPositions defaults an absent count to 1 and rejects
// negative values.
func ValidateNumberOfOpenPositions(positions *int) (int, *errs.Error) {
	if positions == nil {
		return 1, nil
	}
	if *positions < 0 {
		return 0, errs.Validation("numberOfOpenPositions must be a non-negative number")
	}
	return *positions, nil
}

// ValidateClosingDate parses the closing date and normalizes it to a UTC
// instant. RFC3339 is tried first, then a plain YYYY-MM-DD date.
func ValidateClosingDate(closingDate string) (time.Time, *errs.Error) {
	if t, err := time.Parse(time.RFC3339, closingDate); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", closingDate); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errs.Validation("invalid closingDate. Must be a valid date string")
}

// ValidateCreateJobRole composes all create checks, short-circuiting on the
// first failure.
func ValidateCreateJobRole(in *CreateJobRoleInput) (*CreateJobRoleValues, *errs.Error) {
	if err := ValidateRequiredFields(in); err != nil {
		return nil, err
	}

	status, err := ValidateStatus(in.Status)
	if err != nil {
		return nil, err
	}

	positions, err := ValidateNumberOfOpenPositions(in.NumberOfOpenPositions)
	if err != nil {
		return nil, err
	}

	closingDate, err := ValidateClosingDate(in.ClosingDate)
	if err != nil {
		return nil, err
	}

	return &CreateJobRoleValues{
		Status:                status,
		NumberOfOpenPositions: positions,
		ClosingDate:           closingDate,
	}, nil
}

// ValidateUpdateJobRole checks a partial update and produces the typed
// fields-to-apply value consumed by the repository. String fields, when
// present, must be non-empty after trimming.
func ValidateUpdateJobRole(in *UpdateJobRoleInput) (*repository.JobRoleUpdate, *errs.Error) {
	if in.IsEmpty() {
		return nil, errs.Validation("at least one field must be provided for update")
	}

	stringFields := []struct {
		value *string
		name  string
	}{
		{in.Name, "name"},
		{in.Location, "location"},
		{in.Capability, "capability"},
		{in.Band, "band"},
		{in.Summary, "summary"},
		{in.KeyResponsibilities, "keyResponsibilities"},
	}
	for _, f := range stringFields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return nil, errs.Validation("%s must be a non-empty string", f.name)
		}
	}

	upd := &repository.JobRoleUpdate{
		Name:                in.Name,
		Location:            in.Location,
		Capability:          in.Capability,
		Band:                in.Band,
		Summary:             in.Summary,
		KeyResponsibilities: in.KeyResponsibilities,
	}

	if in.Status != nil {
		status, err := ValidateStatus(in.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
	}

	if in.NumberOfOpenPositions != nil {
		positions, err := ValidateNumberOfOpenPositions(in.NumberOfOpenPositions)
		if err != nil {
			return nil, err
		}
		upd.NumberOfOpenPositions = &positions
	}

	if in.ClosingDate != nil {
		closingDate, err := ValidateClosingDate(*in.ClosingDate)
		if err != nil {
			return nil, err
		}
		upd.ClosingDate = &closingDate
	}

	return upd, nil
}
