package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blockedby/hiretrack/internal/config"
	"github.com/blockedby/hiretrack/internal/errs"
	"github.com/blockedby/hiretrack/internal/logger"
	"github.com/blockedby/hiretrack/internal/models"
	"github.com/blockedby/hiretrack/internal/repository"
	"github.com/blockedby/hiretrack/internal/storage"
	"github.com/blockedby/hiretrack/internal/validation"
)

// ApplicationsRepository is the persistence contract used by
// ApplicationService.
type ApplicationsRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByJobRoleID(ctx context.Context, jobRoleID int64) ([]*models.Application, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Application, error)
	ExistsByUserAndJobRole(ctx context.Context, userID, jobRoleID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error)
	GetByIDWithJobRole(ctx context.Context, id int64) (*models.Application, *models.JobRole, error)
	Hire(ctx context.Context, applicationID, jobRoleID int64) (*models.Application, *models.JobRole, error)
	Delete(ctx context.Context, id int64) (*models.Application, error)
}

// JobRolesReader is the read-side view of job roles used during application
// creation.
type JobRolesReader interface {
	GetByID(ctx context.Context, id int64) (*models.JobRole, error)
}

// ApplicationService orchestrates application creation and the hire/reject
// state machine.
type ApplicationService struct {
	repo      ApplicationsRepository
	jobRoles  JobRolesReader
	blobs     storage.BlobStore
	publisher EventPublisher
	upload    config.UploadPolicy
	now       func() time.Time
	log       *logger.Logger
}

// NewApplicationService creates a new ApplicationService. publisher may be
// nil; now defaults to time.Now when nil.
func NewApplicationService(
	repo ApplicationsRepository,
	jobRoles JobRolesReader,
	blobs storage.BlobStore,
	publisher EventPublisher,
	upload config.UploadPolicy,
	now func() time.Time,
	log *logger.Logger,
) *ApplicationService {
	if now == nil {
		now = time.Now
	}
	return &ApplicationService{
		repo:      repo,
		jobRoles:  jobRoles,
		blobs:     blobs,
		publisher: publisher,
		upload:    upload,
		now:       now,
		log:       log,
	}
}

// CreateApplicationInput is the payload for submitting an application.
// Exactly one of CVText and CVFile is expected; when CVFile is set, the blob
// has already been durably stored by the upload collaborator.
type CreateApplicationInput struct {
	JobRoleID int64
	UserID    int64
	CVText    string
	CVFile    *validation.CVFile
}

// HireResult carries the updated application and job role after a hire.
type HireResult struct {
	Application *models.Application `json:"application"`
	JobRole     *models.JobRole     `json:"jobRole"`
}

// CreateApplication validates eligibility and persists a new application in
// the "in progress" state. When the insert fails after a CV file was already
// stored, the orphaned blob is deleted before the error propagates.
func (s *ApplicationService) CreateApplication(ctx context.Context, input *CreateApplicationInput) (*models.Application, error) {
	var fieldErrs []errs.FieldError
	if verr := validation.ValidateJobRoleID(input.JobRoleID); verr != nil {
		fieldErrs = append(fieldErrs, verr.Fields...)
	}
	if verr := validation.ValidateUserID(input.UserID); verr != nil {
		fieldErrs = append(fieldErrs, verr.Fields...)
	}
	if input.CVFile != nil {
		fieldErrs = append(fieldErrs, validation.CVFileErrors(input.CVFile, s.upload)...)
	} else if verr := validation.ValidateCVText(input.CVText); verr != nil {
		fieldErrs = append(fieldErrs, verr.Fields...)
	}
	if len(fieldErrs) > 0 {
		return nil, errs.ValidationFields(fieldErrs...)
	}

	exists, err := s.repo.ExistsByUserAndJobRole(ctx, input.UserID, input.JobRoleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.BusinessLogic("You have already applied for this job role")
	}

	jobRole, err := s.jobRoles.GetByID(ctx, input.JobRoleID)
	if err != nil {
		return nil, err
	}
	if jobRole == nil {
		return nil, errs.NotFound("Job role not found")
	}

	if !jobRole.IsOpen() {
		return nil, errs.BusinessLogic("This job role is not currently accepting applications")
	}

	if jobRole.NumberOfOpenPositions <= 0 {
		return nil, errs.BusinessLogic("There are no open positions for this job role")
	}

	app := &models.Application{
		JobRoleID: input.JobRoleID,
		UserID:    input.UserID,
		CVText:    strings.TrimSpace(input.CVText),
		Status:    models.ApplicationStatusInProgress,
		CreatedAt: s.now().UTC(),
	}
	if input.CVFile != nil {
		app.CVText = ""
		app.CVFileName = &input.CVFile.FileName
		app.CVFilePath = &input.CVFile.Path
		app.CVMimeType = &input.CVFile.MimeType
		app.CVFileSize = &input.CVFile.Size
	}

	if err := s.repo.Create(ctx, app); err != nil {
		// the blob is already durable; compensate so it does not orphan
		if input.CVFile != nil && s.blobs != nil {
			if derr := s.blobs.Delete(ctx, input.CVFile.Path); derr != nil {
				s.log.Error().Err(derr).Str("path", input.CVFile.Path).Msg("failed to delete orphaned cv file")
			}
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.publishApplicationEvent(ctx, app, "created")
	return app, nil
}

// GetApplicationByID returns an application, or nil when absent.
func (s *ApplicationService) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	if verr := validation.ValidateApplicationID(id); verr != nil {
		return nil, verr
	}
	return s.repo.GetByID(ctx, id)
}

// GetApplicationsByJobRole returns all applications for a job role, newest
// first. An unknown job role yields an empty slice, not an error.
func (s *ApplicationService) GetApplicationsByJobRole(ctx context.Context, jobRoleID int64) ([]*models.Application, error) {
	if verr := validation.ValidateJobRoleID(jobRoleID); verr != nil {
		return nil, verr
	}

	apps, err := s.repo.GetByJobRoleID(ctx, jobRoleID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []*models.Application{}
	}
	return apps, nil
}

// GetApplicationsByUserID returns all applications submitted by a user,
// newest first.
func (s *ApplicationService) GetApplicationsByUserID(ctx context.Context, userID int64) ([]*models.Application, error) {
	if verr := validation.ValidateUserID(userID); verr != nil {
		return nil, verr
	}

	apps, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []*models.Application{}
	}
	return apps, nil
}

// HireApplicant moves an application to "hired" and decrements the job
// role's open positions. The status update and the decrement commit together
// or not at all.
func (s *ApplicationService) HireApplicant(ctx context.Context, applicationID int64) (*HireResult, error) {
	if verr := validation.ValidateApplicationID(applicationID); verr != nil {
		return nil, verr
	}

	app, jobRole, err := s.repo.GetByIDWithJobRole(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errs.NotFound("Application not found")
	}

	if verr := validation.ValidateStatusTransition(app.Status, models.ApplicationStatusHired); verr != nil {
		return nil, verr
	}

	if jobRole.NumberOfOpenPositions <= 0 {
		return nil, errs.BusinessLogic("No open positions available for this job role")
	}

	hired, updatedRole, err := s.repo.Hire(ctx, applicationID, jobRole.ID)
	if err != nil {
		// positions may have been exhausted, or the application hired,
		// by a concurrent request since the read above
		if errors.Is(err, repository.ErrNoOpenPositions) {
			return nil, errs.BusinessLogic("No open positions available for this job role")
		}
		if errors.Is(err, repository.ErrNotInProgress) {
			return nil, errs.BusinessLogic("Application is no longer in progress")
		}
		return nil, fmt.Errorf("hire applicant: %w", err)
	}

	s.publishApplicationEvent(ctx, hired, "hired")
	return &HireResult{Application: hired, JobRole: updatedRole}, nil
}

// RejectApplicant moves an application to "rejected". No capacity side
// effect.
func (s *ApplicationService) RejectApplicant(ctx context.Context, applicationID int64) (*models.Application, error) {
	if verr := validation.ValidateApplicationID(applicationID); verr != nil {
		return nil, verr
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errs.NotFound("Application not found")
	}

	if verr := validation.ValidateStatusTransition(app.Status, models.ApplicationStatusRejected); verr != nil {
		return nil, verr
	}

	rejected, err := s.repo.UpdateStatus(ctx, applicationID, models.ApplicationStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("reject applicant: %w", err)
	}
	if rejected == nil {
		return nil, errs.NotFound("Application not found")
	}

	s.publishApplicationEvent(ctx, rejected, "rejected")
	return rejected, nil
}

// DeleteApplication removes an application and best-effort deletes its CV
// blob. A blob deletion failure is logged, not propagated: an unrelated
// storage hiccup must not make the row undeletable.
func (s *ApplicationService) DeleteApplication(ctx context.Context, applicationID int64) (*models.Application, error) {
	if verr := validation.ValidateApplicationID(applicationID); verr != nil {
		return nil, verr
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errs.NotFound("Application not found")
	}

	deleted, err := s.repo.Delete(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("delete application: %w", err)
	}
	if deleted == nil {
		return nil, errs.NotFound("Application not found")
	}

	if deleted.HasCVFile() && s.blobs != nil {
		if derr := s.blobs.Delete(ctx, *deleted.CVFilePath); derr != nil {
			s.log.Warn().Err(derr).Str("path", *deleted.CVFilePath).Msg("failed to delete cv file")
		}
	}

	return deleted, nil
}

func (s *ApplicationService) publishApplicationEvent(ctx context.Context, app *models.Application, kind string) {
	if s.publisher == nil {
		return
	}

	event := ApplicationEvent{
		ApplicationID: app.ID,
		JobRoleID:     app.JobRoleID,
		UserID:        app.UserID,
		Status:        string(app.Status),
	}

	var err error
	switch kind {
	case "created":
		err = s.publisher.PublishApplicationCreated(ctx, event)
	case "hired":
		err = s.publisher.PublishApplicationHired(ctx, event)
	case "rejected":
		err = s.publisher.PublishApplicationRejected(ctx, event)
	}
	if err != nil {
		s.log.Warn().Err(err).Int64("application_id", app.ID).Str("event", kind).Msg("failed to publish application event")
	}
}
