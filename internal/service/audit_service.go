package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
)

// AuditRecorder counts audited actions.
type AuditRecorder interface {
	RecordAudit(event string)
}

// AuditService records front-end actions published on the dispatcher.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	recorder   AuditRecorder
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, recorder AuditRecorder) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		recorder:   recorder,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventLogout,
		events.EventJobRoleCreated,
		events.EventJobRoleDeleted,
		events.EventApplicationSubmitted,
	} {
		a.dispatcher.Subscribe(t, a.handle)
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	if a.recorder != nil {
		a.recorder.RecordAudit(string(event.Type))
	}
	return nil
}

// publish emits an event; failures are logged and never fail the request.
func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, t events.EventType, identity *domain.Identity, payload any) {
	if d == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if identity != nil {
		event.Actor = events.Actor{UserID: identity.UserID, Email: identity.Email}
	}
	if err := d.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("audit publish failed", zap.String("event_type", string(t)), zap.Error(err))
	}
}
