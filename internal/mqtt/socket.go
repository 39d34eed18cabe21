package mqtt

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bornholm/relais/internal/settings"
	"github.com/bornholm/relais/internal/syncx"
	"github.com/bornholm/relais/pkg/log"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const socketWriteTimeout = 5 * time.Second

// statusSocket pushes the MQTT status to websocket clients on connection and
// after every settings update.
type statusSocket struct {
	upgrader  websocket.Upgrader
	clients   syncx.Map[string, *socketClient]
	status    func() Status
	service   *SettingsService
	handlerID settings.HandlerID
}

type socketClient struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *socketClient) send(status Status) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout)); err != nil {
		return errors.WithStack(err)
	}

	if err := c.conn.WriteJSON(status); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *socketClient) close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(socketWriteTimeout)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), deadline)
	_ = c.conn.Close()
}

// ServeHTTP implements http.Handler.
func (s *statusSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "could not upgrade connection", log.Error(errors.WithStack(err)))
		return
	}

	client := &socketClient{
		id:   xid.New().String(),
		conn: conn,
	}

	ctx = log.WithAttrs(ctx, slog.String("socketClient", client.id))

	s.clients.Store(client.id, client)
	defer func() {
		s.clients.Delete(client.id)
		_ = conn.Close()
		slog.DebugContext(ctx, "status socket client disconnected")
	}()

	slog.DebugContext(ctx, "status socket client connected")

	if err := client.send(s.status()); err != nil {
		slog.ErrorContext(ctx, "could not send status", log.Error(err))
		return
	}

	// Incoming messages are ignored, reading only detects the disconnection
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *statusSocket) broadcast(originID string) {
	status := s.status()

	s.clients.Range(func(id string, client *socketClient) bool {
		if err := client.send(status); err != nil {
			slog.Warn("could not send status", log.Error(err), slog.String("socketClient", id), slog.String("origin", originID))
			s.clients.Delete(id)
			_ = client.conn.Close()
		}

		return true
	})
}

func (s *statusSocket) Close() {
	s.service.RemoveUpdateHandler(s.handlerID)

	s.clients.Range(func(id string, client *socketClient) bool {
		s.clients.Delete(id)
		client.close()
		return true
	})
}

func newStatusSocket(service *SettingsService, status func() Status) *statusSocket {
	s := &statusSocket{
		service: service,
		status:  status,
	}

	s.handlerID = service.AddUpdateHandler(s.broadcast)

	return s
}

var _ http.Handler = &statusSocket{}
