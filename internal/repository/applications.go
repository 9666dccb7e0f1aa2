package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockedby/hiretrack/internal/logger"
	"github.com/blockedby/hiretrack/internal/models"
)

// Sentinel errors for the guarded hire transaction.
var (
	// ErrNotInProgress means the application already reached a terminal status.
	ErrNotInProgress = errors.New("application is not in progress")
	// ErrNoOpenPositions means the job role has no open positions left.
	ErrNoOpenPositions = errors.New("no open positions left")
)

const applicationColumns = `id, job_role_id, user_id, cv_text, cv_file_name,
	       cv_file_path, cv_mime_type, cv_file_size, status, created_at`

// ApplicationsRepository handles applications table operations.
type ApplicationsRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewApplicationsRepository creates a new applications repository.
func NewApplicationsRepository(pool *pgxpool.Pool, log *logger.Logger) *ApplicationsRepository {
	return &ApplicationsRepository{pool: pool, log: log}
}

// Create creates a new application record.
func (r *ApplicationsRepository) Create(ctx context.Context, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationStatusInProgress
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (job_role_id, user_id, cv_text, cv_file_name,
		                          cv_file_path, cv_mime_type, cv_file_size, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, app.JobRoleID, app.UserID, app.CVText, app.CVFileName,
		app.CVFilePath, app.CVMimeType, app.CVFileSize, app.Status, app.CreatedAt,
	).Scan(&app.ID)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	r.log.Info().
		Int64("id", app.ID).
		Int64("job_role_id", app.JobRoleID).
		Int64("user_id", app.UserID).
		Msg("created application")

	return nil
}

// GetByID returns an application by ID, or nil when absent.
func (r *ApplicationsRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE id = $1
	`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}
	return app, nil
}

// GetByJobRoleID returns all applications for a job role, newest first.
func (r *ApplicationsRepository) GetByJobRoleID(ctx context.Context, jobRoleID int64) ([]*models.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE job_role_id = $1
		ORDER BY created_at DESC
	`, jobRoleID)
	if err != nil {
		return nil, fmt.Errorf("get applications by job role id: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// GetByUserID returns all applications submitted by a user, newest first.
func (r *ApplicationsRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get applications by user id: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ExistsByUserAndJobRole checks if the user already applied to the job role.
func (r *ApplicationsRepository) ExistsByUserAndJobRole(ctx context.Context, userID, jobRoleID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_role_id = $2)
	`, userID, jobRoleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}
	return exists, nil
}

// UpdateStatus updates the application status and returns the updated row,
// or nil when the id is unknown.
func (r *ApplicationsRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE applications
		SET status = $2
		WHERE id = $1
		RETURNING `+applicationColumns, id, status)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}

	r.log.Info().
		Int64("id", id).
		Str("status", string(status)).
		Msg("updated application status")

	return app, nil
}

// GetByIDWithJobRole returns the application joined with its job role in a
// single read. Both values are nil when the application is absent.
func (r *ApplicationsRepository) GetByIDWithJobRole(ctx context.Context, id int64) (*models.Application, *models.JobRole, error) {
	var app models.Application
	var j models.JobRole
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.job_role_id, a.user_id, a.cv_text, a.cv_file_name,
		       a.cv_file_path, a.cv_mime_type, a.cv_file_size, a.status, a.created_at,
		       j.id, j.name, j.location, j.capability, j.band, j.closing_date,
		       j.summary, j.key_responsibilities, j.status, j.number_of_open_positions
		FROM applications a
		JOIN job_roles j ON j.id = a.job_role_id
		WHERE a.id = $1
	`, id).Scan(
		&app.ID, &app.JobRoleID, &app.UserID, &app.CVText, &app.CVFileName,
		&app.CVFilePath, &app.CVMimeType, &app.CVFileSize, &app.Status, &app.CreatedAt,
		&j.ID, &j.Name, &j.Location, &j.Capability, &j.Band, &j.ClosingDate,
		&j.Summary, &j.KeyResponsibilities, &j.Status, &j.NumberOfOpenPositions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get application with job role: %w", err)
	}
	return &app, &j, nil
}

// Hire marks the application hired and decrements the job role's open
// positions in one transaction. Both statements are guarded: the status update
// only applies to "in progress" applications and the decrement only applies
// while positions remain. Either guard failing rolls the whole operation back.
func (r *ApplicationsRepository) Hire(ctx context.Context, applicationID, jobRoleID int64) (*models.Application, *models.JobRole, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin hire transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE applications
		SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING `+applicationColumns,
		applicationID, models.ApplicationStatusHired, models.ApplicationStatusInProgress)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotInProgress
		}
		return nil, nil, fmt.Errorf("mark application hired: %w", err)
	}

	jobRow := tx.QueryRow(ctx, `
		UPDATE job_roles
		SET number_of_open_positions = number_of_open_positions - 1
		WHERE id = $1 AND number_of_open_positions > 0
		RETURNING `+jobRoleColumns, jobRoleID)

	j, err := scanJobRole(jobRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNoOpenPositions
		}
		return nil, nil, fmt.Errorf("decrement open positions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit hire transaction: %w", err)
	}

	r.log.Info().
		Int64("application_id", applicationID).
		Int64("job_role_id", jobRoleID).
		Int("positions_left", j.NumberOfOpenPositions).
		Msg("hired applicant")

	return app, j, nil
}

// Delete removes an application and returns the deleted row, or nil when the
// id is unknown.
func (r *ApplicationsRepository) Delete(ctx context.Context, id int64) (*models.Application, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM applications
		WHERE id = $1
		RETURNING `+applicationColumns, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete application: %w", err)
	}

	r.log.Info().Int64("id", id).Msg("deleted application")
	return app, nil
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID, &app.JobRoleID, &app.UserID, &app.CVText, &app.CVFileName,
		&app.CVFilePath, &app.CVMimeType, &app.CVFileSize, &app.Status, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]*models.Application, error) {
	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}
