package websocket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/uuid"
	ws "github.com/okodanev/deskhub/internal/infrastructure/websocket"
)

// fakeGateway records attach/detach/select calls for hub tests.
type fakeGateway struct {
	mu       sync.Mutex
	attached map[uuid.UUID]bool
	selected []calendar.Day
	shared   calendar.Day
}

func newFakeGateway(day calendar.Day) *fakeGateway {
	return &fakeGateway{
		attached: make(map[uuid.UUID]bool),
		shared:   day,
	}
}

func (g *fakeGateway) AttachWidget(widgetID uuid.UUID) calendar.Day {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attached[widgetID] = true
	return g.shared
}

func (g *fakeGateway) DetachWidget(widgetID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.attached, widgetID)
}

func (g *fakeGateway) SelectDate(_ context.Context, _ uuid.UUID, day calendar.Day) calendar.Day {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shared = calendar.Normalize(day)
	g.selected = append(g.selected, g.shared)
	return g.shared
}

func (g *fakeGateway) isAttached(widgetID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attached[widgetID]
}

func TestNewHub(t *testing.T) {
	t.Run("creates hub with defaults", func(t *testing.T) {
		hub := ws.NewHub()

		assert.NotNil(t, hub)
		assert.False(t, hub.IsRunning())
		assert.Equal(t, 0, hub.ClientCount())
	})

	t.Run("creates hub with gateway option", func(t *testing.T) {
		hub := ws.NewHub(ws.WithGateway(newFakeGateway(calendar.Today())))

		assert.NotNil(t, hub)
	})
}

func TestHub_Run(t *testing.T) {
	t.Run("starts and stops with context cancellation", func(t *testing.T) {
		hub := ws.NewHub()
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			hub.Run(ctx)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		assert.True(t, hub.IsRunning())

		cancel()

		select {
		case <-done:
			assert.False(t, hub.IsRunning())
		case <-time.After(time.Second):
			t.Fatal("hub did not stop in time")
		}
	})

	t.Run("stops with Stop method", func(t *testing.T) {
		hub := ws.NewHub()

		done := make(chan struct{})
		go func() {
			hub.Run(context.Background())
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		assert.True(t, hub.IsRunning())

		hub.Stop()

		select {
		case <-done:
			assert.False(t, hub.IsRunning())
		case <-time.After(time.Second):
			t.Fatal("hub did not stop in time")
		}
	})

	t.Run("does not start twice", func(t *testing.T) {
		hub := ws.NewHub()
		ctx := context.Background()

		done1 := make(chan struct{})
		go func() {
			hub.Run(ctx)
			close(done1)
		}()

		time.Sleep(10 * time.Millisecond)

		done2 := make(chan struct{})
		go func() {
			hub.Run(ctx)
			close(done2)
		}()

		select {
		case <-done2:
			// Expected
		case <-time.After(100 * time.Millisecond):
			t.Fatal("second Run call did not return immediately")
		}
	})
}

func TestHub_RegisterUnregister(t *testing.T) {
	t.Run("registers and counts client", func(t *testing.T) {
		hub := ws.NewHub()
		ctx := context.Background()
		go hub.Run(ctx)
		time.Sleep(10 * time.Millisecond)

		serverConn, _, cleanup := createWSConnPair(t)
		defer cleanup()

		widgetID := uuid.NewUUID()
		client := ws.NewClient(hub, serverConn, widgetID)
		hub.Register(client)
		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, 1, hub.ClientCount())
		assert.True(t, hub.WidgetConnected(widgetID))

		hub.Unregister(client)
		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, 0, hub.ClientCount())
		assert.False(t, hub.WidgetConnected(widgetID))
	})

	t.Run("unregister detaches widget from gateway", func(t *testing.T) {
		gateway := newFakeGateway(calendar.NewDay(2026, time.March, 14))
		hub := ws.NewHub(ws.WithGateway(gateway))
		ctx := context.Background()
		go hub.Run(ctx)
		time.Sleep(10 * time.Millisecond)

		serverConn, _, cleanup := createWSConnPair(t)
		defer cleanup()

		widgetID := uuid.NewUUID()
		gateway.AttachWidget(widgetID)
		client := ws.NewClient(hub, serverConn, widgetID)
		hub.Register(client)
		time.Sleep(10 * time.Millisecond)

		hub.Unregister(client)
		time.Sleep(10 * time.Millisecond)

		assert.False(t, gateway.isAttached(widgetID))
	})
}

func TestHub_Broadcast(t *testing.T) {
	t.Run("fans message out to every widget", func(t *testing.T) {
		hub := ws.NewHub()
		ctx := context.Background()
		go hub.Run(ctx)
		time.Sleep(10 * time.Millisecond)

		serverConn1, clientConn1, cleanup1 := createWSConnPair(t)
		defer cleanup1()
		serverConn2, clientConn2, cleanup2 := createWSConnPair(t)
		defer cleanup2()

		client1 := ws.NewClient(hub, serverConn1, uuid.NewUUID())
		client2 := ws.NewClient(hub, serverConn2, uuid.NewUUID())
		hub.Register(client1)
		hub.Register(client2)
		go client1.WritePump()
		go client2.WritePump()
		time.Sleep(10 * time.Millisecond)

		message := []byte(`{"type":"task_created"}`)
		hub.Broadcast(message)

		for _, conn := range []*websocket.Conn{clientConn1, clientConn2} {
			require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
			_, got, err := conn.ReadMessage()
			require.NoError(t, err)
			assert.Equal(t, message, got)
		}
	})
}

func TestHub_SelectDateMessage(t *testing.T) {
	t.Run("select_date message drives the gateway", func(t *testing.T) {
		gateway := newFakeGateway(calendar.NewDay(2026, time.March, 14))
		hub := ws.NewHub(ws.WithGateway(gateway))
		ctx := context.Background()
		go hub.Run(ctx)
		time.Sleep(10 * time.Millisecond)

		serverConn, clientConn, cleanup := createWSConnPair(t)
		defer cleanup()

		client := ws.NewClient(hub, serverConn, uuid.NewUUID())
		hub.Register(client)
		go client.ReadPump()
		go client.WritePump()
		time.Sleep(10 * time.Millisecond)

		err := clientConn.WriteMessage(websocket.TextMessage, []byte(`{"type":"select_date","date":"2026-03-20"}`))
		require.NoError(t, err)

		require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(time.Second)))
		_, ack, err := clientConn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"ack","action":"date_selected","date":"2026-03-20"}`, string(ack))

		gateway.mu.Lock()
		defer gateway.mu.Unlock()
		require.Len(t, gateway.selected, 1)
		assert.Equal(t, calendar.NewDay(2026, time.March, 20), gateway.selected[0])
	})
}

func createWSConnPair(t *testing.T) (*websocket.Conn, *websocket.Conn, func()) {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(_ *http.Request) bool { return true },
	}

	serverChan := make(chan *websocket.Conn, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverChan <- conn
	}))

	wsURL := "ws" + server.URL[4:]
	clientConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	select {
	case serverConn := <-serverChan:
		cleanup := func() {
			serverConn.Close()
			clientConn.Close()
			server.Close()
		}
		return serverConn, clientConn, cleanup
	case <-time.After(time.Second):
		clientConn.Close()
		server.Close()
		t.Fatal("timeout waiting for server connection")
		return nil, nil, nil
	}
}
