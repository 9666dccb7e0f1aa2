// Package repository provides postgresql persistence for job roles and
// applications.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockedby/hiretrack/internal/logger"
	"github.com/blockedby/hiretrack/internal/models"
)

const jobRoleColumns = `id, name, location, capability, band, closing_date,
	       summary, key_responsibilities, status, number_of_open_positions`

// ListFilter narrows and pages the job role listing.
// Search matches the name case-insensitively ("contains" semantics).
// Limit <= 0 means no limit; Offset < 0 is treated as 0.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// JobRoleUpdate is the typed partial-update value for a job role.
// Only non-nil fields are written.
type JobRoleUpdate struct {
	Name                  *string
	Location              *string
	Capability            *string
	Band                  *string
	Summary               *string
	KeyResponsibilities   *string
	ClosingDate           *time.Time
	Status                *models.JobRoleStatus
	NumberOfOpenPositions *int
}

// IsEmpty checks if the update carries no fields.
func (u *JobRoleUpdate) IsEmpty() bool {
	return u.Name == nil && u.Location == nil && u.Capability == nil &&
		u.Band == nil && u.Summary == nil && u.KeyResponsibilities == nil &&
		u.ClosingDate == nil && u.Status == nil && u.NumberOfOpenPositions == nil
}

// JobRolesRepository handles job_roles table operations.
type JobRolesRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewJobRolesRepository creates a new job roles repository.
func NewJobRolesRepository(pool *pgxpool.Pool, log *logger.Logger) *JobRolesRepository {
	return &JobRolesRepository{pool: pool, log: log}
}

// Create creates a new job role.
func (r *JobRolesRepository) Create(ctx context.Context, j *models.JobRole) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO job_roles (name, location, capability, band, closing_date,
		                       summary, key_responsibilities, status, number_of_open_positions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, j.Name, j.Location, j.Capability, j.Band, j.ClosingDate,
		j.Summary, j.KeyResponsibilities, j.Status, j.NumberOfOpenPositions,
	).Scan(&j.ID)
	if err != nil {
		return fmt.Errorf("create job role: %w", err)
	}

	r.log.Info().
		Int64("id", j.ID).
		Str("name", j.Name).
		Int("positions", j.NumberOfOpenPositions).
		Msg("created job role")

	return nil
}

// GetByID returns a job role by ID, or nil when absent.
func (r *JobRolesRepository) GetByID(ctx context.Context, id int64) (*models.JobRole, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+jobRoleColumns+`
		FROM job_roles
		WHERE id = $1
	`, id)

	j, err := scanJobRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job role by id: %w", err)
	}
	return j, nil
}

// List returns job roles matching the filter plus the filtered total.
func (r *JobRolesRepository) List(ctx context.Context, filter ListFilter) ([]*models.JobRole, int, error) {
	where := ""
	args := []any{}
	if strings.TrimSpace(filter.Search) != "" {
		where = "WHERE name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_roles `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count job roles: %w", err)
	}

	query := `SELECT ` + jobRoleColumns + ` FROM job_roles ` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list job roles: %w", err)
	}
	defer rows.Close()

	jobs, err := collectJobRoles(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// GetByStatus returns job roles with the given status, ordered by id.
func (r *JobRolesRepository) GetByStatus(ctx context.Context, status models.JobRoleStatus) ([]*models.JobRole, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobRoleColumns+`
		FROM job_roles
		WHERE status = $1
		ORDER BY id
	`, status)
	if err != nil {
		return nil, fmt.Errorf("get job roles by status: %w", err)
	}
	defer rows.Close()

	return collectJobRoles(rows)
}

// Update applies only the present fields and returns the merged row, or nil
// when the id is unknown.
func (r *JobRolesRepository) Update(ctx context.Context, id int64, upd JobRoleUpdate) (*models.JobRole, error) {
	setClauses := []string{}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Capability != nil {
		add("capability", *upd.Capability)
	}
	if upd.Band != nil {
		add("band", *upd.Band)
	}
	if upd.Summary != nil {
		add("summary", *upd.Summary)
	}
	if upd.KeyResponsibilities != nil {
		add("key_responsibilities", *upd.KeyResponsibilities)
	}
	if upd.ClosingDate != nil {
		add("closing_date", *upd.ClosingDate)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.NumberOfOpenPositions != nil {
		add("number_of_open_positions", *upd.NumberOfOpenPositions)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE job_roles
		SET `+strings.Join(setClauses, ", ")+`
		WHERE id = $1
		RETURNING `+jobRoleColumns,
		args...)

	j, err := scanJobRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update job role: %w", err)
	}

	r.log.Info().Int64("id", id).Msg("updated job role")
	return j, nil
}

// DecrementOpenPositions atomically decrements the open position count.
// The decrement is a single guarded statement so concurrent hires cannot
// drive the count below zero; nil is returned when the role is absent or
// already has no open positions.
func (r *JobRolesRepository) DecrementOpenPositions(ctx context.Context, id int64) (*models.JobRole, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE job_roles
		SET number_of_open_positions = number_of_open_positions - 1
		WHERE id = $1 AND number_of_open_positions > 0
		RETURNING `+jobRoleColumns, id)

	j, err := scanJobRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("decrement open positions: %w", err)
	}

	r.log.Info().
		Int64("id", id).
		Int("positions", j.NumberOfOpenPositions).
		Msg("decremented open positions")

	return j, nil
}

// DeleteWithApplications deletes the job role together with all of its
// applications in one transaction. Returns the deleted role and the number of
// applications removed; (nil, 0, nil) without side effects when the role does
// not exist.
func (r *JobRolesRepository) DeleteWithApplications(ctx context.Context, id int64) (*models.JobRole, int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+jobRoleColumns+`
		FROM job_roles
		WHERE id = $1
	`, id)

	j, err := scanJobRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("select job role for delete: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_role_id = $1`, id)
	if err != nil {
		return nil, 0, fmt.Errorf("delete applications: %w", err)
	}
	deleted := tag.RowsAffected()

	if _, err := tx.Exec(ctx, `DELETE FROM job_roles WHERE id = $1`, id); err != nil {
		return nil, 0, fmt.Errorf("delete job role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit delete transaction: %w", err)
	}

	r.log.Info().
		Int64("id", id).
		Int64("deleted_applications", deleted).
		Msg("deleted job role with applications")

	return j, deleted, nil
}

// scanJobRole scans a single job role row.
func scanJobRole(row pgx.Row) (*models.JobRole, error) {
	var j models.JobRole
	err := row.Scan(
		&j.ID, &j.Name, &j.Location, &j.Capability, &j.Band, &j.ClosingDate,
		&j.Summary, &j.KeyResponsibilities, &j.Status, &j.NumberOfOpenPositions,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJobRoles(rows pgx.Rows) ([]*models.JobRole, error) {
	var jobs []*models.JobRole
	for rows.Next() {
		j, err := scanJobRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job role: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job roles: %w", err)
	}
	return jobs, nil
}
