// Package models defines shared data types for the application.
package models

import "time"

// JobRoleStatus represents the lifecycle status of a job role.
type JobRoleStatus string

// JobRoleStatus constants define the possible states of a job role.
const (
	JobRoleStatusOpen   JobRoleStatus = "open"
	JobRoleStatusClosed JobRoleStatus = "closed"
)

// JobRole represents a posted position with a capacity and lifecycle status.
type JobRole struct {
	ID int64 `json:"id" db:"id"`

	// classification
	Name       string `json:"name" db:"name"`
	Location   string `json:"location" db:"location"`
	Capability string `json:"capability" db:"capability"`
	Band       string `json:"band" db:"band"`

	// content
	Summary             string `json:"summary" db:"summary"`
	KeyResponsibilities string `json:"keyResponsibilities" db:"key_responsibilities"`

	// lifecycle
	ClosingDate           time.Time     `json:"closingDate" db:"closing_date"`
	Status                JobRoleStatus `json:"status" db:"status"`
	NumberOfOpenPositions int           `json:"numberOfOpenPositions" db:"number_of_open_positions"`
}

// IsValidStatus checks if the job role status is valid.
func (j *JobRole) IsValidStatus() bool {
	return j.Status == JobRoleStatusOpen || j.Status == JobRoleStatusClosed
}

// IsOpen checks if the job role accepts applications.
func (j *JobRole) IsOpen() bool {
	return j.Status == JobRoleStatusOpen
}
