// Package subscribers forwards domain events from the bus to websocket
// clients and the audit stream.
package subscribers

import (
	"context"
	"time"

	"caredesk/internal/domain"
	"caredesk/internal/event"
	"caredesk/internal/logger"
)

const auditTimeout = 2 * time.Second

type EventBus interface {
	Subscribe(eventName string, handler event.Handler)
}

type Hub interface {
	SendToUser(userID int64, ev *domain.WsServerEvent)
	Disconnect(userID int64)
}

type AuditLog interface {
	Append(ctx context.Context, event string, userID int64, payload any) (string, error)
}

// Register wires every forwarded event. audit may be nil.
func Register(bus EventBus, hub Hub, audit AuditLog, log logger.Logger) {
	for _, name := range []string{
		domain.EventAssignmentCreated,
		domain.EventAssignmentRemoved,
		domain.EventPatientDeleted,
	} {
		bus.Subscribe(name, NewOwnerForwarder(name, hub, audit, log).Handle)
	}

	bus.Subscribe(domain.EventAccountDeleted, NewAccountDeleted(hub, audit, log).Handle)
}

func appendAudit(audit AuditLog, log logger.Logger, name string, userID int64, payload any) {
	if audit == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	if _, err := audit.Append(ctx, name, userID, payload); err != nil {
		log.Warn("audit: append failed", "event", name, "user_id", userID, "error", err)
	}
}
