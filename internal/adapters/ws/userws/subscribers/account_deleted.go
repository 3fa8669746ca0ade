package subscribers

import (
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type AccountDeleted struct {
	hub   Hub
	audit AuditLog
	log   logger.Logger
}

func NewAccountDeleted(hub Hub, audit AuditLog, log logger.Logger) *AccountDeleted {
	return &AccountDeleted{hub: hub, audit: audit, log: log}
}

func (s *AccountDeleted) Handle(event any) {
	evt, ok := event.(domain.EventAccountDeletedPayload)
	if !ok {
		return
	}

	s.hub.SendToUser(evt.UserID, &domain.WsServerEvent{
		Event:   domain.EventAccountDeleted,
		Payload: evt,
	})
	s.hub.Disconnect(evt.UserID)

	appendAudit(s.audit, s.log, domain.EventAccountDeleted, evt.UserID, evt)
}
