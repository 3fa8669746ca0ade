package domain

import "encoding/json"

type WsClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WsServerEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
