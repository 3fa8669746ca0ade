// Package userws pushes live events to the websocket connections of a
// single user.
package userws

import (
	"context"
	"encoding/json"

	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients map[*Client]bool
	users   map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan *userEvent

	log logger.Logger
}

// userEvent targets every connection of userID, or only client when set.
// A disconnect event closes the targeted connections instead.
type userEvent struct {
	userID     int64
	client     *Client
	event      *domain.WsServerEvent
	disconnect bool
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients: make(map[*Client]bool),
		users:   make(map[int64]map[*Client]bool),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *userEvent, 100),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			h.users = make(map[int64]map[*Client]bool)
			return

		case client := <-h.register:
			h.clients[client] = true
			if h.users[client.UserID] == nil {
				h.users[client.UserID] = make(map[*Client]bool)
			}
			h.users[client.UserID][client] = true
			h.log.Info("ws: client registered", "id", client.ID, "user_id", client.UserID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			h.remove(client)

		case ev := <-h.events:
			h.deliver(ev)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

func (h *Hub) remove(client *Client) {
	if !h.clients[client] {
		return
	}

	delete(h.clients, client)
	if subs, ok := h.users[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.users, client.UserID)
		}
	}
	close(client.send)

	h.log.Info("ws: client unregistered", "id", client.ID, "user_id", client.UserID, "total_clients", len(h.clients))
}

func (h *Hub) deliver(ev *userEvent) {
	targets := h.users[ev.userID]
	if ev.client != nil {
		if !h.clients[ev.client] {
			return
		}
		targets = map[*Client]bool{ev.client: true}
	}
	if len(targets) == 0 {
		return
	}

	if ev.disconnect {
		for client := range targets {
			h.remove(client)
		}
		return
	}

	message, err := json.Marshal(ev.event)
	if err != nil {
		h.log.Error("ws: failed to marshal server event", "error", err)
		return
	}

	for client := range targets {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, force unregister", "id", client.ID)
			h.remove(client)
		}
	}
}

// SendToUser queues ev for every connection of userID. It drops the event
// once the hub has stopped.
func (h *Hub) SendToUser(userID int64, ev *domain.WsServerEvent) {
	h.enqueue(&userEvent{userID: userID, event: ev})
}

// Disconnect closes every connection of userID after the events already
// queued for it.
func (h *Hub) Disconnect(userID int64) {
	h.enqueue(&userEvent{userID: userID, disconnect: true})
}

func (h *Hub) sendToClient(c *Client, ev *domain.WsServerEvent) {
	h.enqueue(&userEvent{userID: c.UserID, client: c, event: ev})
}

func (h *Hub) enqueue(ev *userEvent) {
	select {
	case h.events <- ev:
	case <-h.ctx.Done():
	}
}

func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}
