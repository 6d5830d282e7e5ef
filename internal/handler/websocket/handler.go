// Package websocket provides the HTTP handler that upgrades widget
// connections and attaches them to the scheduling synchronizer.
package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/task"
	"github.com/okodanev/deskhub/internal/domain/uuid"
	ws "github.com/okodanev/deskhub/internal/infrastructure/websocket"
)

// Handler configuration constants.
const (
	defaultHandlerReadBufferSize  = 1024
	defaultHandlerWriteBufferSize = 1024
)

// ScheduleSnapshot is the slice of the scheduling service the handler needs
// to attach a widget and push its first render state.
// Declared on the consumer side; the schedule service implements it.
type ScheduleSnapshot interface {
	// AttachWidget registers the widget and returns the settled date.
	AttachWidget(widgetID uuid.UUID) calendar.Day

	// TasksOnDate returns the tasks the widget renders for a day.
	TasksOnDate(day any) []*task.Task

	// CountByDate returns the per-day task counts for calendar cells.
	CountByDate() map[calendar.Day]int
}

// initMessage is the first frame pushed to a freshly attached widget: the
// settled date plus everything it needs to render without a second round
// trip.
type initMessage struct {
	Type     string               `json:"type"`
	WidgetID uuid.UUID            `json:"widget_id"`
	Date     calendar.Day         `json:"date"`
	Tasks    []*task.Task         `json:"tasks"`
	Counts   map[calendar.Day]int `json:"counts"`
}

// Handler handles WebSocket upgrade requests for dashboard widgets.
type Handler struct {
	hub          *ws.Hub
	schedule     ScheduleSnapshot
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	clientConfig ws.ClientConfig
}

// HandlerConfig holds configuration for the WebSocket handler.
type HandlerConfig struct {
	// ReadBufferSize is the size of the read buffer for WebSocket connections.
	ReadBufferSize int

	// WriteBufferSize is the size of the write buffer for WebSocket connections.
	WriteBufferSize int

	// CheckOrigin is a function that returns true if the request origin is acceptable.
	// If nil, a default function allowing all origins is used.
	CheckOrigin func(r *http.Request) bool

	// Logger is the structured logger for the handler.
	Logger *slog.Logger

	// ClientConfig is the configuration for WebSocket clients.
	ClientConfig ws.ClientConfig
}

// DefaultHandlerConfig returns a default configuration.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		ReadBufferSize:  defaultHandlerReadBufferSize,
		WriteBufferSize: defaultHandlerWriteBufferSize,
		CheckOrigin:     nil,
		Logger:          slog.Default(),
		ClientConfig:    ws.DefaultClientConfig(),
	}
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger for the handler.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithHandlerConfig sets the handler configuration.
func WithHandlerConfig(config HandlerConfig) HandlerOption {
	return func(h *Handler) {
		h.upgrader.ReadBufferSize = config.ReadBufferSize
		h.upgrader.WriteBufferSize = config.WriteBufferSize
		if config.CheckOrigin != nil {
			h.upgrader.CheckOrigin = config.CheckOrigin
		}
		if config.Logger != nil {
			h.logger = config.Logger
		}
		h.clientConfig = config.ClientConfig
	}
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *ws.Hub, schedule ScheduleSnapshot, opts ...HandlerOption) *Handler {
	h := &Handler{
		hub:      hub,
		schedule: schedule,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  defaultHandlerReadBufferSize,
			WriteBufferSize: defaultHandlerWriteBufferSize,
			CheckOrigin: func(_ *http.Request) bool {
				// The dashboard is served from the same origin; widgets in
				// development run off localhost ports.
				return true
			},
		},
		logger:       slog.Default(),
		clientConfig: ws.DefaultClientConfig(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleWebSocket handles WebSocket upgrade requests. Each connection is one
// widget: it gets an ID, a local date cell on the synchronizer, and an
// initial state frame so it can render immediately.
func (h *Handler) HandleWebSocket(c echo.Context) error {
	widgetID := h.widgetID(c)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.String("widget_id", widgetID.String()),
			slog.String("error", err.Error()),
		)
		return nil // Upgrade already sent an error response
	}

	client := ws.NewClient(
		h.hub,
		conn,
		widgetID,
		ws.WithClientConfig(h.clientConfig),
		ws.WithClientLogger(h.logger),
	)

	settled := h.schedule.AttachWidget(widgetID)
	h.hub.Register(client)
	h.pushInitialState(client, widgetID, settled)

	h.logger.Info("widget connected",
		slog.String("widget_id", widgetID.String()),
		slog.String("remote_ip", c.RealIP()),
	)

	go client.WritePump()
	go client.ReadPump()

	return nil
}

// widgetID reuses the ID a reconnecting widget presents, or mints one.
func (h *Handler) widgetID(c echo.Context) uuid.UUID {
	if raw := c.QueryParam("widget_id"); raw != "" {
		if id, err := uuid.ParseUUID(raw); err == nil {
			return id
		}
	}
	return uuid.NewUUID()
}

// pushInitialState sends the widget its first render frame.
func (h *Handler) pushInitialState(client *ws.Client, widgetID uuid.UUID, settled calendar.Day) {
	init := initMessage{
		Type:     "init",
		WidgetID: widgetID,
		Date:     settled,
		Tasks:    h.schedule.TasksOnDate(settled),
		Counts:   h.schedule.CountByDate(),
	}

	data, err := json.Marshal(init)
	if err != nil {
		h.logger.Error("failed to marshal init message",
			slog.String("widget_id", widgetID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	client.Send(data)
}

// RegisterRoutes registers the WebSocket handler with the Echo router.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.HandleWebSocket)
}
