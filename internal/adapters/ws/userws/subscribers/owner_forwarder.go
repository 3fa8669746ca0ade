package subscribers

import (
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

// OwnerForwarder sends an owned event to its owner's sockets only.
type OwnerForwarder struct {
	name  string
	hub   Hub
	audit AuditLog
	log   logger.Logger
}

func NewOwnerForwarder(name string, hub Hub, audit AuditLog, log logger.Logger) *OwnerForwarder {
	return &OwnerForwarder{name: name, hub: hub, audit: audit, log: log}
}

func (s *OwnerForwarder) Handle(event any) {
	evt, ok := event.(domain.OwnedEvent)
	if !ok {
		return
	}

	s.hub.SendToUser(evt.Owner(), &domain.WsServerEvent{
		Event:   s.name,
		Payload: evt,
	})

	appendAudit(s.audit, s.log, s.name, evt.Owner(), evt)
}
