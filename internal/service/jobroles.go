// Package service implements the business rules for job roles and
// applications. Collaborators are injected explicitly; there is no default
// construction inside business logic.
package service

import (
	"context"
	"fmt"

	"github.com/blockedby/hiretrack/internal/errs"
	"github.com/blockedby/hiretrack/internal/logger"
	"github.com/blockedby/hiretrack/internal/models"
	"github.com/blockedby/hiretrack/internal/repository"
	"github.com/blockedby/hiretrack/internal/validation"
)

// JobRolesRepository is the persistence contract used by JobRoleService.
type JobRolesRepository interface {
	Create(ctx context.Context, j *models.JobRole) error
	GetByID(ctx context.Context, id int64) (*models.JobRole, error)
	List(ctx context.Context, filter repository.ListFilter) ([]*models.JobRole, int, error)
	GetByStatus(ctx context.Context, status models.JobRoleStatus) ([]*models.JobRole, error)
	Update(ctx context.Context, id int64, upd repository.JobRoleUpdate) (*models.JobRole, error)
	DeleteWithApplications(ctx context.Context, id int64) (*models.JobRole, int64, error)
}

// JobRoleApplicationsReader is the read-side view of applications used when
// closing or deleting a job role.
type JobRoleApplicationsReader interface {
	GetByJobRoleID(ctx context.Context, jobRoleID int64) ([]*models.Application, error)
}

// JobRoleService orchestrates job role CRUD and enforces the
// no-close-or-delete-with-active-applications rule.
type JobRoleService struct {
	repo      JobRolesRepository
	apps      JobRoleApplicationsReader
	publisher EventPublisher
	log       *logger.Logger
}

// NewJobRoleService creates a new JobRoleService. publisher may be nil.
func NewJobRoleService(repo JobRolesRepository, apps JobRoleApplicationsReader, publisher EventPublisher, log *logger.Logger) *JobRoleService {
	return &JobRoleService{
		repo:      repo,
		apps:      apps,
		publisher: publisher,
		log:       log,
	}
}

// JobRoleList is the result of a job role listing.
type JobRoleList struct {
	Jobs  []*models.JobRole `json:"jobs"`
	Total int               `json:"total"`
}

// DeletedJobRole identifies the role removed by DeleteJobRole.
type DeletedJobRole struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DeleteJobRoleResult reports the outcome of a cascade delete.
type DeleteJobRoleResult struct {
	Success                  bool           `json:"success"`
	Job                      DeletedJobRole `json:"job"`
	DeletedApplicationsCount int64          `json:"deletedApplicationsCount"`
}

// GetAllJobRoles returns job roles filtered by an optional case-insensitive
// name search, optionally paginated. Total reflects the filtered count, not
// the page size.
func (s *JobRoleService) GetAllJobRoles(ctx context.Context, limit, offset int, search string) (*JobRoleList, error) {
	jobs, total, err := s.repo.List(ctx, repository.ListFilter{
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	if jobs == nil {
		jobs = []*models.JobRole{}
	}
	return &JobRoleList{Jobs: jobs, Total: total}, nil
}

// GetJobRoleByID returns a job role, or nil when absent.
func (s *JobRoleService) GetJobRoleByID(ctx context.Context, id int64) (*models.JobRole, error) {
	return s.repo.GetByID(ctx, id)
}

// GetJobRolesByStatus returns job roles with the given status.
func (s *JobRoleService) GetJobRolesByStatus(ctx context.Context, status models.JobRoleStatus) ([]*models.JobRole, error) {
	if status != models.JobRoleStatusOpen && status != models.JobRoleStatusClosed {
		return nil, errs.Validation("invalid status. Must be 'open' or 'closed'")
	}

	jobs, err := s.repo.GetByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*models.JobRole{}
	}
	return jobs, nil
}

// CreateJobRole validates the input and persists a new role.
func (s *JobRoleService) CreateJobRole(ctx context.Context, input *validation.CreateJobRoleInput) (*models.JobRole, error) {
	values, verr := validation.ValidateCreateJobRole(input)
	if verr != nil {
		return nil, verr
	}

	job := &models.JobRole{
		Name:                  input.Name,
		Location:              input.Location,
		Capability:            input.Capability,
		Band:                  input.Band,
		ClosingDate:           values.ClosingDate,
		Summary:               input.Summary,
		KeyResponsibilities:   input.KeyResponsibilities,
		Status:                values.Status,
		NumberOfOpenPositions: values.NumberOfOpenPositions,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job role: %w", err)
	}

	return job, nil
}

// UpdateJobRole applies a partial update. Setting status to closed while the
// role is open is blocked when active applications exist.
func (s *JobRoleService) UpdateJobRole(ctx context.Context, id int64, input *validation.UpdateJobRoleInput) (*models.JobRole, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NotFound("Job role with ID %d not found", id)
	}

	// no fields supplied: a no-op, not an error
	if input.IsEmpty() {
		return existing, nil
	}

	upd, verr := validation.ValidateUpdateJobRole(input)
	if verr != nil {
		return nil, verr
	}

	if upd.Status != nil && *upd.Status == models.JobRoleStatusClosed && existing.Status == models.JobRoleStatusOpen {
		active, err := s.countActiveApplications(ctx, id)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, errs.Conflict(
				"Cannot close job role with %d active application(s). Please process all applications before closing the position.",
				active)
		}
	}

	updated, err := s.repo.Update(ctx, id, *upd)
	if err != nil {
		return nil, fmt.Errorf("update job role: %w", err)
	}
	if updated == nil {
		return nil, errs.Internal("job role disappeared during update", nil)
	}

	return updated, nil
}

// DeleteJobRole removes a role and all of its applications. Unless
// forceDelete is set, active applications block the deletion.
func (s *JobRoleService) DeleteJobRole(ctx context.Context, id int64, forceDelete bool) (*DeleteJobRoleResult, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NotFound("Job role with ID %d not found", id)
	}

	if !forceDelete {
		active, err := s.countActiveApplications(ctx, id)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, errs.Conflict(
				"Cannot delete job role with %d active application(s). Please process all applications before deletion or use force delete.",
				active)
		}
	}

	job, deletedCount, err := s.repo.DeleteWithApplications(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete job role: %w", err)
	}
	if job == nil {
		// raced with another delete since the existence check
		return nil, errs.Internal("failed to delete job role - job not found during deletion", nil)
	}

	s.publishJobRoleDeleted(ctx, job, deletedCount)

	return &DeleteJobRoleResult{
		Success:                  true,
		Job:                      DeletedJobRole{ID: job.ID, Name: job.Name},
		DeletedApplicationsCount: deletedCount,
	}, nil
}

func (s *JobRoleService) countActiveApplications(ctx context.Context, jobRoleID int64) (int, error) {
	apps, err := s.apps.GetByJobRoleID(ctx, jobRoleID)
	if err != nil {
		return 0, fmt.Errorf("get applications for job role: %w", err)
	}

	active := 0
	for _, app := range apps {
		if app.IsActive() {
			active++
		}
	}
	return active, nil
}

func (s *JobRoleService) publishJobRoleDeleted(ctx context.Context, job *models.JobRole, deleted int64) {
	if s.publisher == nil {
		return
	}
	event := JobRoleDeletedEvent{
		JobRoleID:           job.ID,
		Name:                job.Name,
		DeletedApplications: deleted,
	}
	if err := s.publisher.PublishJobRoleDeleted(ctx, event); err != nil {
		s.log.Warn().Err(err).Int64("job_role_id", job.ID).Msg("failed to publish job role deleted event")
	}
}
