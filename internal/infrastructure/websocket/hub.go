// Package websocket implements the realtime transport that keeps dashboard
// widgets in sync: every schedule change is fanned out to all connected
// widgets, and widget date selections flow back in over the same socket.
package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/uuid"
)

// Hub configuration constants.
const (
	defaultBroadcastBufferSize = 256
)

// ScheduleGateway is the slice of the scheduling service driven from the
// socket. Declared on the consumer side; the schedule service implements it.
type ScheduleGateway interface {
	// AttachWidget registers a widget and returns the settled date it
	// should render first.
	AttachWidget(widgetID uuid.UUID) calendar.Day

	// DetachWidget removes a widget from the synchronizer.
	DetachWidget(widgetID uuid.UUID)

	// SelectDate records a widget's date selection and settles the
	// shared cursor.
	SelectDate(ctx context.Context, widgetID uuid.UUID, day calendar.Day) calendar.Day
}

// Hub manages all connected widget clients. Every broadcast reaches every
// widget: the dashboard has a single shared view, there are no rooms.
type Hub struct {
	// clients holds all connected widget clients.
	clients map[*Client]bool

	// widgets maps widget IDs to their client connections.
	widgets map[uuid.UUID]*Client

	// register channel for new client connections.
	register chan *Client

	// unregister channel for client disconnections.
	unregister chan *Client

	// broadcast channel for messages to be fanned out.
	broadcast chan []byte

	// gateway is the scheduling service the widgets drive.
	gateway ScheduleGateway

	// mu protects concurrent access to maps.
	mu sync.RWMutex

	// logger for structured logging.
	logger *slog.Logger

	// done signals when the hub should stop.
	done chan struct{}

	// running indicates if the hub is currently running.
	running bool

	// runningMu protects the running flag.
	runningMu sync.RWMutex
}

// HubOption configures the Hub.
type HubOption func(*Hub)

// WithHubLogger sets the logger for the hub.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithGateway sets the scheduling gateway widgets drive over the socket.
func WithGateway(gateway ScheduleGateway) HubOption {
	return func(h *Hub) {
		h.gateway = gateway
	}
}

// NewHub creates a new Hub with the given options.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		widgets:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, defaultBroadcastBufferSize),
		logger:     slog.Default(),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// SetGateway wires the scheduling gateway after construction. The hub and
// the schedule service reference each other (the service broadcasts through
// the hub), so one side has to be attached late. Call before Run.
func (h *Hub) SetGateway(gateway ScheduleGateway) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gateway = gateway
}

// Run starts the hub's main event loop.
// It should be run as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	h.runningMu.Lock()
	if h.running {
		h.runningMu.Unlock()
		return
	}
	h.running = true
	h.runningMu.Unlock()

	h.logger.InfoContext(ctx, "websocket hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case <-h.done:
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

// Stop signals the hub to stop.
func (h *Hub) Stop() {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()

	if !h.running {
		return
	}

	close(h.done)
}

// shutdown performs graceful shutdown of all connections.
func (h *Hub) shutdown() {
	h.runningMu.Lock()
	h.running = false
	h.runningMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if h.gateway != nil {
			h.gateway.DetachWidget(client.widgetID)
		}
		client.Close()
	}

	h.clients = make(map[*Client]bool)
	h.widgets = make(map[uuid.UUID]*Client)

	h.logger.Info("websocket hub stopped")
}

// Register registers a new client with the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister unregisters a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast fans a message out to every connected widget.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// registerClient adds a client to the hub.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.widgets[client.widgetID] = client

	h.logger.Debug("widget registered",
		slog.String("widget_id", client.widgetID.String()),
		slog.Int("total_clients", len(h.clients)),
	)
}

// unregisterClient removes a client from the hub and detaches its widget
// from the synchronizer.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	if h.widgets[client.widgetID] == client {
		delete(h.widgets, client.widgetID)
	}
	if h.gateway != nil {
		h.gateway.DetachWidget(client.widgetID)
	}
	client.Close()

	h.logger.Debug("widget unregistered",
		slog.String("widget_id", client.widgetID.String()),
		slog.Int("total_clients", len(h.clients)),
	)
}

// fanOut delivers a message to every connected client.
func (h *Hub) fanOut(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client's send buffer is full, skip this message
			h.logger.Warn("client send buffer full, dropping message",
				slog.String("widget_id", client.widgetID.String()),
			)
		}
	}
}

// selectDate forwards a widget's date selection to the scheduling gateway.
func (h *Hub) selectDate(ctx context.Context, widgetID uuid.UUID, day calendar.Day) (calendar.Day, bool) {
	if h.gateway == nil {
		return calendar.Day{}, false
	}
	return h.gateway.SelectDate(ctx, widgetID, day), true
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WidgetConnected reports whether a widget currently has a connection.
func (h *Hub) WidgetConnected(widgetID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.widgets[widgetID]
	return ok
}

// IsRunning returns whether the hub is currently running.
func (h *Hub) IsRunning() bool {
	h.runningMu.RLock()
	defer h.runningMu.RUnlock()
	return h.running
}
