package models

import "time"

// ApplicationStatus represents the hiring status of an application.
type ApplicationStatus string

// ApplicationStatus constants define the possible states of an application.
// "in progress" is the initial state; "hired" and "rejected" are terminal.
const (
	ApplicationStatusInProgress ApplicationStatus = "in progress"
	ApplicationStatusHired      ApplicationStatus = "hired"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
)

// Application represents a candidate's submission against a job role.
// The CV is carried either as raw text or as a reference to a stored file.
type Application struct {
	ID        int64 `json:"id" db:"id"`
	JobRoleID int64 `json:"jobRoleId" db:"job_role_id"`
	UserID    int64 `json:"userId" db:"user_id"`

	// cv payload
	CVText     string  `json:"cvText,omitempty" db:"cv_text"`
	CVFileName *string `json:"cvFileName,omitempty" db:"cv_file_name"`
	CVFilePath *string `json:"cvFilePath,omitempty" db:"cv_file_path"`
	CVMimeType *string `json:"cvMimeType,omitempty" db:"cv_mime_type"`
	CVFileSize *int64  `json:"cvFileSize,omitempty" db:"cv_file_size"`

	// status
	Status ApplicationStatus `json:"status" db:"status"`

	// timestamps
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsValidStatus checks if the application status is valid.
func (a *Application) IsValidStatus() bool {
	switch a.Status {
	case ApplicationStatusInProgress, ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}

// IsActive checks if the application is still in progress.
func (a *Application) IsActive() bool {
	return a.Status == ApplicationStatusInProgress
}

// CanTransitionTo checks if the application may move to the target status.
// Only "in progress" applications may be hired or rejected; terminal states
// never change again.
func (a *Application) CanTransitionTo(target ApplicationStatus) bool {
	if a.Status != ApplicationStatusInProgress {
		return false
	}
	return target == ApplicationStatusHired || target == ApplicationStatusRejected
}

// HasCVFile checks if the application carries an uploaded CV file.
func (a *Application) HasCVFile() bool {
	return a.CVFilePath != nil && *a.CVFilePath != ""
}
