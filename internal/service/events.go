package service

import "context"

// ApplicationEvent is the payload published when an application changes.
type ApplicationEvent struct {
	ApplicationID int64  `json:"application_id"`
	JobRoleID     int64  `json:"job_role_id"`
	UserID        int64  `json:"user_id"`
	Status        string `json:"status"`
}

// JobRoleDeletedEvent is the payload published after a cascade delete.
type JobRoleDeletedEvent struct {
	JobRoleID           int64  `json:"job_role_id"`
	Name                string `json:"name"`
	DeletedApplications int64  `json:"deleted_applications"`
}

// EventPublisher publishes domain events to downstream consumers.
// Publishing is best effort: services log failures but never fail a request
// over them. A nil publisher disables publishing.
type EventPublisher interface {
	PublishApplicationCreated(ctx context.Context, event ApplicationEvent) error
	PublishApplicationHired(ctx context.Context, event ApplicationEvent) error
	PublishApplicationRejected(ctx context.Context, event ApplicationEvent) error
	PublishJobRoleDeleted(ctx context.Context, event JobRoleDeletedEvent) error
}
