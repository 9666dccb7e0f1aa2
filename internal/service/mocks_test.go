package service

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/blockedby/hiretrack/internal/models"
	"github.com/blockedby/hiretrack/internal/repository"
	"github.com/blockedby/hiretrack/internal/storage"
)

// in-memory job roles repository backed by a map
type mockJobRolesRepo struct {
	mu     sync.Mutex
	roles  map[int64]*models.JobRole
	apps   *mockApplicationsRepo
	nextID int64
	err    error
}

func newMockJobRolesRepo() *mockJobRolesRepo {
	return &mockJobRolesRepo{roles: make(map[int64]*models.JobRole), nextID: 1}
}

func (m *mockJobRolesRepo) put(j *models.JobRole) *models.JobRole {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.ID == 0 {
		j.ID = m.nextID
		m.nextID++
	} else if j.ID >= m.nextID {
		m.nextID = j.ID + 1
	}
	cp := *j
	m.roles[j.ID] = &cp
	return j
}

func (m *mockJobRolesRepo) Create(ctx context.Context, j *models.JobRole) error {
	if m.err != nil {
		return m.err
	}
	m.put(j)
	return nil
}

func (m *mockJobRolesRepo) GetByID(ctx context.Context, id int64) (*models.JobRole, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (m *mockJobRolesRepo) List(ctx context.Context, filter repository.ListFilter) ([]*models.JobRole, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.JobRole
	for _, j := range m.roles {
		cp := *j
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, len(out), nil
}

func (m *mockJobRolesRepo) GetByStatus(ctx context.Context, status models.JobRoleStatus) ([]*models.JobRole, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.JobRole
	for _, j := range m.roles {
		if j.Status == status {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockJobRolesRepo) Update(ctx context.Context, id int64, upd repository.JobRoleUpdate) (*models.JobRole, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.roles[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		j.Name = *upd.Name
	}
	if upd.Location != nil {
		j.Location = *upd.Location
	}
	if upd.Capability != nil {
		j.Capability = *upd.Capability
	}
	if upd.Band != nil {
		j.Band = *upd.Band
	}
	if upd.Summary != nil {
		j.Summary = *upd.Summary
	}
	if upd.KeyResponsibilities != nil {
		j.KeyResponsibilities = *upd.KeyResponsibilities
	}
	if upd.ClosingDate != nil {
		j.ClosingDate = *upd.ClosingDate
	}
	if upd.Status != nil {
		j.Status = *upd.Status
	}
	if upd.NumberOfOpenPositions != nil {
		j.NumberOfOpenPositions = *upd.NumberOfOpenPositions
	}
	cp := *j
	return &cp, nil
}

func (m *mockJobRolesRepo) DeleteWithApplications(ctx context.Context, id int64) (*models.JobRole, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.roles[id]
	if !ok {
		return nil, 0, nil
	}
	delete(m.roles, id)
	cp := *j
	if m.apps == nil {
		return &cp, 0, nil
	}
	var deleted int64
	m.apps.mu.Lock()
	for appID, app := range m.apps.apps {
		if app.JobRoleID == id {
			delete(m.apps.apps, appID)
			deleted++
		}
	}
	m.apps.mu.Unlock()
	return &cp, deleted, nil
}

// in-memory applications repository backed by a map
type mockApplicationsRepo struct {
	mu     sync.Mutex
	apps   map[int64]*models.Application
	roles  *mockJobRolesRepo
	nextID int64
	err    error

	createErr error
}

func newMockApplicationsRepo(roles *mockJobRolesRepo) *mockApplicationsRepo {
	m := &mockApplicationsRepo{apps: make(map[int64]*models.Application), roles: roles, nextID: 1}
	if roles != nil {
		roles.apps = m
	}
	return m
}

func (m *mockApplicationsRepo) put(app *models.Application) *models.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	if app.ID == 0 {
		app.ID = m.nextID
		m.nextID++
	} else if app.ID >= m.nextID {
		m.nextID = app.ID + 1
	}
	cp := *app
	m.apps[app.ID] = &cp
	return app
}

func (m *mockApplicationsRepo) Create(ctx context.Context, app *models.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.err != nil {
		return m.err
	}
	m.put(app)
	return nil
}

func (m *mockApplicationsRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	cp := *app
	return &cp, nil
}

func (m *mockApplicationsRepo) GetByJobRoleID(ctx context.Context, jobRoleID int64) ([]*models.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Application
	for _, app := range m.apps {
		if app.JobRoleID == jobRoleID {
			cp := *app
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *mockApplicationsRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Application
	for _, app := range m.apps {
		if app.UserID == userID {
			cp := *app
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *mockApplicationsRepo) ExistsByUserAndJobRole(ctx context.Context, userID, jobRoleID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, app := range m.apps {
		if app.UserID == userID && app.JobRoleID == jobRoleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationsRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	app.Status = status
	cp := *app
	return &cp, nil
}

func (m *mockApplicationsRepo) GetByIDWithJobRole(ctx context.Context, id int64) (*models.Application, *models.JobRole, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	app, err := m.GetByID(ctx, id)
	if err != nil || app == nil {
		return nil, nil, err
	}
	role, err := m.roles.GetByID(ctx, app.JobRoleID)
	if err != nil {
		return nil, nil, err
	}
	return app, role, nil
}

// Hire mirrors the guarded transaction: the status flip and the decrement
// both re-check state under the lock.
func (m *mockApplicationsRepo) Hire(ctx context.Context, applicationID, jobRoleID int64) (*models.Application, *models.JobRole, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	m.roles.mu.Lock()
	defer m.roles.mu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[applicationID]
	if !ok || app.Status != models.ApplicationStatusInProgress {
		return nil, nil, repository.ErrNotInProgress
	}
	role, ok := m.roles.roles[jobRoleID]
	if !ok || role.NumberOfOpenPositions <= 0 {
		return nil, nil, repository.ErrNoOpenPositions
	}

	app.Status = models.ApplicationStatusHired
	role.NumberOfOpenPositions--

	appCp := *app
	roleCp := *role
	return &appCp, &roleCp, nil
}

func (m *mockApplicationsRepo) Delete(ctx context.Context, id int64) (*models.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	delete(m.apps, id)
	cp := *app
	return &cp, nil
}

// blob store that records deletions
type mockBlobStore struct {
	mu      sync.Mutex
	deleted []string
}

func (m *mockBlobStore) Save(ctx context.Context, originalName string, r io.Reader) (*storage.StoredFile, error) {
	return &storage.StoredFile{Path: "/uploads/test/" + originalName, Size: 1}, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, path)
	return nil
}

func (m *mockBlobStore) Exists(ctx context.Context, path string) (bool, error) {
	return true, nil
}

// event publisher that counts published events
type mockPublisher struct {
	mu       sync.Mutex
	created  []ApplicationEvent
	hired    []ApplicationEvent
	rejected []ApplicationEvent
	deleted  []JobRoleDeletedEvent
	err      error
}

func (m *mockPublisher) PublishApplicationCreated(ctx context.Context, e ApplicationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, e)
	return m.err
}

func (m *mockPublisher) PublishApplicationHired(ctx context.Context, e ApplicationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hired = append(m.hired, e)
	return m.err
}

func (m *mockPublisher) PublishApplicationRejected(ctx context.Context, e ApplicationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, e)
	return m.err
}

func (m *mockPublisher) PublishJobRoleDeleted(ctx context.Context, e JobRoleDeletedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, e)
	return m.err
}
