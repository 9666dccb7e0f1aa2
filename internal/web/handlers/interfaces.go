package handlers

import (
	"context"

	"github.com/blockedby/hiretrack/internal/models"
	"github.com/blockedby/hiretrack/internal/service"
	"github.com/blockedby/hiretrack/internal/validation"
)

// JobRoleService defines the interface for job role business operations.
type JobRoleService interface {
	GetAllJobRoles(ctx context.Context, limit, offset int, search string) (*service.JobRoleList, error)
	GetJobRoleByID(ctx context.Context, id int64) (*models.JobRole, error)
	GetJobRolesByStatus(ctx context.Context, status models.JobRoleStatus) ([]*models.JobRole, error)
	CreateJobRole(ctx context.Context, input *validation.CreateJobRoleInput) (*models.JobRole, error)
	UpdateJobRole(ctx context.Context, id int64, input *validation.UpdateJobRoleInput) (*models.JobRole, error)
	DeleteJobRole(ctx context.Context, id int64, forceDelete bool) (*service.DeleteJobRoleResult, error)
}

// ApplicationService defines the interface for application business
// operations.
type ApplicationService interface {
	CreateApplication(ctx context.Context, input *service.CreateApplicationInput) (*models.Application, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	GetApplicationsByJobRole(ctx context.Context, jobRoleID int64) ([]*models.Application, error)
	GetApplicationsByUserID(ctx context.Context, userID int64) ([]*models.Application, error)
	HireApplicant(ctx context.Context, applicationID int64) (*service.HireResult, error)
	RejectApplicant(ctx context.Context, applicationID int64) (*models.Application, error)
	DeleteApplication(ctx context.Context, applicationID int64) (*models.Application, error)
}
