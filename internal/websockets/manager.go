package websockets

import (
	"healthdash/config"
	"healthdash/internal/database"
	"healthdash/internal/events"
	"healthdash/internal/logger"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Manager pushes server events (new insights, cache invalidations) to the
// dashboard over websockets, one connection set per user.
type Manager struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger

	mu    sync.RWMutex
	conns map[string][]*websocket.Conn
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("websockets"),
		conns:    make(map[string][]*websocket.Conn),
	}

	eventBus.Subscribe("insights", m.fanOut)
	eventBus.Subscribe("cache", m.fanOut)

	return m, nil
}

func (m *Manager) fanOut(event events.Event) {
	log := m.log.Function("fanOut")

	m.mu.RLock()
	conns := m.conns[event.UserID]
	m.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Warn("failed to write event to websocket",
				"userID", event.UserID, "type", event.Type, "error", err)
		}
	}
}

// HandleWebSocket owns the connection for its lifetime; it returns when the
// client goes away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		log.Warn("websocket connection without user, closing")
		_ = c.Close()
		return
	}

	m.register(userID, c)
	defer m.unregister(userID, c)

	log.Info("websocket connected", "userID", userID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Manager) register(userID string, c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[userID] = append(m.conns[userID], c)
}

func (m *Manager) unregister(userID string, c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns := m.conns[userID]
	for i, conn := range conns {
		if conn == c {
			m.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.conns[userID]) == 0 {
		delete(m.conns, userID)
	}
}
