package ports

import (
	"context"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

// AuditRepository stores lifecycle events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.LifecycleEvent) error
}

// AuditSink accepts committed lifecycle events for asynchronous storage.
type AuditSink interface {
	Enqueue(event domain.LifecycleEvent)
}
