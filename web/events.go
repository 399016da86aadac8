package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"aceguard-demo/store"
)

const writeTimeout = 5 * time.Second

// Hub fans store events out to connected WebSocket clients.
// It implements store.Observer.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	log     logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log,
	}
}

func (h *Hub) Subscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Clients returns the number of subscribed connections
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify implements store.Observer
func (h *Hub) Notify(e store.Event) {
	h.Broadcast(e)
}

// Broadcast sends the event as JSON to every client, dropping clients that fail
func (h *Hub) Broadcast(e store.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.WithError(err).Warn("failed to encode event")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			h.log.WithError(err).Debug("ws write error")
			h.Unsubscribe(conn)
			conn.Close(websocket.StatusNormalClosure, "")
		}
	}
}

// ServeHTTP upgrades the request and keeps the client subscribed until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.WithError(err).Error("ws accept error")
		return
	}
	defer conn.CloseNow()

	h.Subscribe(conn)
	defer h.Unsubscribe(conn)

	// clients only listen; reads detect the close
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

// EventServer serves the hub on its own HTTP listener
type EventServer struct {
	srv *http.Server
	log logrus.FieldLogger
}

func NewEventServer(addr string, hub *Hub, log logrus.FieldLogger) *EventServer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	return &EventServer{
		srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		log: log,
	}
}

// Start listens until Shutdown is called
func (es *EventServer) Start() error {
	es.log.WithField("addr", es.srv.Addr).Info("Starting live event stream")
	if err := es.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (es *EventServer) Shutdown(ctx context.Context) error {
	return es.srv.Shutdown(ctx)
}
