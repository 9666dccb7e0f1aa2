// Package publisher implements domain event publishing over NATS.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/blockedby/hiretrack/internal/service"
)

// Subjects for published domain events.
const (
	SubjectApplicationCreated  = "applications.created"
	SubjectApplicationHired    = "applications.hired"
	SubjectApplicationRejected = "applications.rejected"
	SubjectJobRoleDeleted      = "jobroles.deleted"
)

// NATSClient interface to allow mocking
type NATSClient interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher implements service.EventPublisher.
type NATSPublisher struct {
	conn NATSClient
}

// NewNATSPublisher creates a new publisher.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// PublishApplicationCreated publishes an application-created event.
func (p *NATSPublisher) PublishApplicationCreated(ctx context.Context, event service.ApplicationEvent) error {
	return p.publish(SubjectApplicationCreated, event)
}

// PublishApplicationHired publishes an application-hired event.
func (p *NATSPublisher) PublishApplicationHired(ctx context.Context, event service.ApplicationEvent) error {
	return p.publish(SubjectApplicationHired, event)
}

// PublishApplicationRejected publishes an application-rejected event.
func (p *NATSPublisher) PublishApplicationRejected(ctx context.Context, event service.ApplicationEvent) error {
	return p.publish(SubjectApplicationRejected, event)
}

// PublishJobRoleDeleted publishes a job-role-deleted event.
func (p *NATSPublisher) PublishJobRoleDeleted(ctx context.Context, event service.JobRoleDeletedEvent) error {
	return p.publish(SubjectJobRoleDeleted, event)
}

func (p *NATSPublisher) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
