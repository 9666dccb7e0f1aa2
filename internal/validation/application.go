package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blockedby/hiretrack/internal/config"
	"github.com/blockedby/hiretrack/internal/errs"
	"github.com/blockedby/hiretrack/internal/models"
)

// CV text bounds: the trimmed text must carry some substance, the raw text
// must not blow up the row.
const (
	MinCVTextLength = 50
	MaxCVTextLength = 10000
)

// MaxCVFileNameLength bounds the original filename of an uploaded CV.
const MaxCVFileNameLength = 255

// CVFile describes an uploaded CV that has already been durably stored by the
// upload collaborator before the service is called.
type CVFile struct {
	FileName string `json:"fileName"`
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// ValidateJobRoleID checks that the id is a positive integer.
func ValidateJobRoleID(id int64) *errs.Error {
	if id <= 0 {
		return errs.ValidationFields(errs.FieldError{
			Field:   "jobRoleId",
			Message: "Valid job role ID is required",
		})
	}
	return nil
}

// ValidateUserID checks that the id is a positive integer.
func ValidateUserID(id int64) *errs.Error {
	if id <= 0 {
		return errs.ValidationFields(errs.FieldError{
			Field:   "userId",
			Message: "Valid user ID is required",
		})
	}
	return nil
}

// ValidateApplicationID checks that the id is a positive integer.
func ValidateApplicationID(id int64) *errs.Error {
	if id <= 0 {
		return errs.Validation("Valid application ID is required")
	}
	return nil
}

// ValidateCVText checks the free-text CV payload.
func ValidateCVText(text string) *errs.Error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errs.ValidationFields(errs.FieldError{
			Field:   "cvText",
			Message: "CV text is required",
		})
	}
	if len(trimmed) < MinCVTextLength {
		return errs.ValidationFields(errs.FieldError{
			Field:   "cvText",
			Message: fmt.Sprintf("CV text must be at least %d characters long", MinCVTextLength),
		})
	}
	if len(text) > MaxCVTextLength {
		return errs.ValidationFields(errs.FieldError{
			Field:   "cvText",
			Message: fmt.Sprintf("CV text must not exceed %d characters", MaxCVTextLength),
		})
	}
	return nil
}

// CVFileErrors checks an uploaded CV against the configured policy, collecting
// every violation instead of stopping at the first.
func CVFileErrors(file *CVFile, policy config.UploadPolicy) []errs.FieldError {
	if file == nil {
		return []errs.FieldError{{Field: "cvFile", Message: "CV file is required"}}
	}

	var fieldErrs []errs.FieldError

	if file.Size > policy.MaxFileSize {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field: "cvFile",
			Message: fmt.Sprintf("File size (%.2fMB) exceeds maximum allowed size (%.2fMB)",
				float64(file.Size)/(1024*1024), float64(policy.MaxFileSize)/(1024*1024)),
		})
	}

	if !contains(policy.AllowedMimeTypes, file.MimeType) {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field: "cvFile",
			Message: fmt.Sprintf("Invalid file type (%s). Allowed types: %s",
				file.MimeType, strings.Join(policy.AllowedMimeTypes, ", ")),
		})
	}

	ext := strings.ToLower(filepath.Ext(file.FileName))
	if !contains(policy.AllowedExtensions, ext) {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field: "cvFile",
			Message: fmt.Sprintf("Invalid file extension (%s). Allowed extensions: %s",
				ext, strings.Join(policy.AllowedExtensions, ", ")),
		})
	}

	if strings.TrimSpace(file.FileName) == "" {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field:   "cvFile",
			Message: "File must have a valid filename",
		})
	} else if len(file.FileName) > MaxCVFileNameLength {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field:   "cvFile",
			Message: fmt.Sprintf("Filename is too long (maximum %d characters)", MaxCVFileNameLength),
		})
	}

	return fieldErrs
}

// ValidateCVFile checks an uploaded CV against the configured policy.
func ValidateCVFile(file *CVFile, policy config.UploadPolicy) *errs.Error {
	if fieldErrs := CVFileErrors(file, policy); len(fieldErrs) > 0 {
		return errs.ValidationFields(fieldErrs...)
	}
	return nil
}

// StatusTransitionErrors checks a hire/reject transition. Both the current
// and target status are checked independently and both failures reported.
func StatusTransitionErrors(current, target models.ApplicationStatus) []errs.FieldError {
	var fieldErrs []errs.FieldError

	if current != models.ApplicationStatusInProgress {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field: "status",
			Message: fmt.Sprintf(`Cannot change status from "%s" to "%s". Only applications with status "in progress" can be hired or rejected.`,
				current, target),
		})
	}

	if target != models.ApplicationStatusHired && target != models.ApplicationStatusRejected {
		fieldErrs = append(fieldErrs, errs.FieldError{
			Field:   "status",
			Message: fmt.Sprintf(`Invalid status "%s". Must be "hired" or "rejected".`, target),
		})
	}

	return fieldErrs
}

// ValidateStatusTransition checks that an application may move from current
// to target.
func ValidateStatusTransition(current, target models.ApplicationStatus) *errs.Error {
	if fieldErrs := StatusTransitionErrors(current, target); len(fieldErrs) > 0 {
		return &errs.Error{Kind: errs.KindBusinessLogic, Fields: fieldErrs}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
