package websocket

import (
	"context"
	"sync"

	"nexusmarket/pkg/logger"
)

// Manager tracks the open sessions of every user. A user may hold several
// sessions, one per tab or device.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the registration loop until ctx is done, then closes every
// remaining session.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if m.clients[client.UserID] == nil {
					m.clients[client.UserID] = make(map[*Client]struct{})
				}
				m.clients[client.UserID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("Manager: client registered for %s", client.UserID)

			case client := <-m.Unregister:
				m.remove(client)
				logger.Debug("Manager: client unregistered for %s", client.UserID)

			case <-ctx.Done():
				close(m.done)
				m.mutex.Lock()
				for _, sessions := range m.clients {
					for client := range sessions {
						client.close()
					}
				}
				m.clients = make(map[string]map[*Client]struct{})
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Add hands client to the loop. It reports false, closing the client, once
// the loop has stopped.
func (m *Manager) Add(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		client.close()
		return false
	}
}

// unregister hands client to the loop, or closes it directly once the loop
// has stopped.
func (m *Manager) unregister(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
		client.close()
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	sessions, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := sessions[client]; ok {
		delete(sessions, client)
		client.close()
	}
	if len(sessions) == 0 {
		delete(m.clients, client.UserID)
	}
}

// SessionCount returns the number of open sessions across all users.
func (m *Manager) SessionCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for _, sessions := range m.clients {
		count += len(sessions)
	}
	return count
}
