// Package main provides the API server entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okodanev/deskhub/internal/application/schedule"
	"github.com/okodanev/deskhub/internal/config"
	"github.com/okodanev/deskhub/internal/domain/calendar"
	httphandler "github.com/okodanev/deskhub/internal/handler/http"
	wshandler "github.com/okodanev/deskhub/internal/handler/websocket"
	"github.com/okodanev/deskhub/internal/infrastructure/directorystore"
	"github.com/okodanev/deskhub/internal/infrastructure/httpserver"
	"github.com/okodanev/deskhub/internal/infrastructure/metrics"
	"github.com/okodanev/deskhub/internal/infrastructure/websocket"
	"github.com/okodanev/deskhub/internal/store"
)

// Container holds all application dependencies and manages their lifecycle.
// It implements httpserver.HealthChecker for the health endpoints.
type Container struct {
	// Configuration
	Config *config.Config
	Logger *slog.Logger

	// Stores
	Tasks     *store.TaskStore
	Cursor    *store.Cursor
	Directory *directorystore.Store

	// Application
	Sync     *schedule.Synchronizer
	Schedule *schedule.Service
	Metrics  *metrics.ScheduleMetrics

	// Infrastructure
	Hub         *websocket.Hub
	Broadcaster *websocket.Broadcaster

	// Handlers
	ScheduleHandler  *httphandler.ScheduleHandler
	DirectoryHandler *httphandler.DirectoryHandler
	WSHandler        *wshandler.Handler

	registerer prometheus.Registerer
}

// ContainerOption configures the container.
type ContainerOption func(*Container)

// WithLogger sets the logger for the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// WithRegisterer sets the Prometheus registerer. Defaults to the global one.
func WithRegisterer(registerer prometheus.Registerer) ContainerOption {
	return func(c *Container) {
		c.registerer = registerer
	}
}

// NewContainer builds the dependency container for the API server.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config:     cfg,
		Logger:     slog.Default(),
		registerer: prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.setupDirectory(); err != nil {
		return nil, fmt.Errorf("failed to setup directory: %w", err)
	}
	c.setupStores()
	c.setupHub()
	c.setupSchedule()
	c.setupHandlers()

	c.Logger.Info("container initialized",
		slog.String("app", cfg.App.Name),
		slog.String("directory_seed", cfg.Directory.SeedPath),
	)

	return c, nil
}

// setupDirectory creates the employee directory and loads the seed file
// when one is configured.
func (c *Container) setupDirectory() error {
	c.Directory = directorystore.NewStore(directorystore.WithLogger(c.Logger))

	if path := c.Config.Directory.SeedPath; path != "" {
		if err := c.Directory.LoadFile(path); err != nil {
			return fmt.Errorf("failed to load directory seed: %w", err)
		}
	}

	return nil
}

// setupStores creates the task store and the shared date cursor, which
// starts on today.
func (c *Container) setupStores() {
	c.Tasks = store.NewTaskStore()
	c.Cursor = store.NewCursor(calendar.Today())
	c.Sync = schedule.NewSynchronizer(c.Cursor)
}

// setupHub creates the WebSocket hub and broadcaster. The gateway is wired
// in setupSchedule once the service exists.
func (c *Container) setupHub() {
	c.Hub = websocket.NewHub(websocket.WithHubLogger(c.Logger))
	c.Broadcaster = websocket.NewBroadcaster(c.Hub, websocket.WithBroadcasterLogger(c.Logger))
}

// setupSchedule creates the scheduling service and closes the loop with
// the hub: service events broadcast through the hub, socket messages drive
// the service.
func (c *Container) setupSchedule() {
	c.Metrics = metrics.NewScheduleMetrics(c.registerer)

	c.Schedule = schedule.NewService(
		c.Tasks,
		c.Sync,
		c.Directory,
		schedule.WithNotifier(c.Broadcaster),
		schedule.WithMetrics(c.Metrics),
		schedule.WithLogger(c.Logger),
	)

	c.Hub.SetGateway(c.Schedule)

	// Deleting directory entries strips them from any assigned tasks.
	c.Directory.SetDeletionHooks(directorystore.DeletionHooks{
		OnEmployeeDeleted: c.Schedule.DetachEmployee,
		OnCrewDeleted:     c.Schedule.DetachCrew,
	})
}

// setupHandlers creates the HTTP and WebSocket handlers.
func (c *Container) setupHandlers() {
	c.ScheduleHandler = httphandler.NewScheduleHandler(c.Schedule)
	c.DirectoryHandler = httphandler.NewDirectoryHandler(c.Directory)

	wsConfig := wshandler.DefaultHandlerConfig()
	wsConfig.ReadBufferSize = c.Config.WebSocket.ReadBufferSize
	wsConfig.WriteBufferSize = c.Config.WebSocket.WriteBufferSize
	wsConfig.Logger = c.Logger

	clientConfig := websocket.DefaultClientConfig()
	clientConfig.PingInterval = c.Config.WebSocket.PingInterval
	clientConfig.PongWait = c.Config.WebSocket.PongTimeout
	wsConfig.ClientConfig = clientConfig

	c.WSHandler = wshandler.NewHandler(c.Hub, c.Schedule,
		wshandler.WithHandlerConfig(wsConfig),
	)
}

// StartHub starts the WebSocket hub's event loop.
func (c *Container) StartHub(ctx context.Context) {
	go c.Hub.Run(ctx)
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.Hub != nil && c.Hub.IsRunning() {
		c.Hub.Stop()
	}

	c.Logger.Info("container closed")
	return nil
}

// IsReady reports whether the application can serve traffic.
func (c *Container) IsReady(_ context.Context) bool {
	return c.Hub != nil && c.Hub.IsRunning()
}

// GetHealthStatus reports the status of each component.
func (c *Container) GetHealthStatus(_ context.Context) []httpserver.ComponentStatus {
	hubStatus := httpserver.StatusHealthy
	if c.Hub == nil || !c.Hub.IsRunning() {
		hubStatus = httpserver.StatusUnhealthy
	}

	return []httpserver.ComponentStatus{
		{
			Name:   "websocket_hub",
			Status: hubStatus,
		},
		{
			Name:   "task_store",
			Status: httpserver.StatusHealthy,
		},
	}
}
