package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 64
	writeWait  = 10 * time.Second
)

// EventView is the message pushed to websocket clients after every registry
// operation.
type EventView struct {
	Operation string             `json:"operation"`
	Method    string             `json:"method,omitempty"`
	Value     *int               `json:"value,omitempty"`
	Size      int                `json:"size"`
	Insert    *models.InsertView `json:"insert,omitempty"`
	Search    *models.SearchView `json:"search,omitempty"`
	Stats     *models.StatsView  `json:"stats,omitempty"`
	Error     string             `json:"error,omitempty"`
	Steps     []models.StepView  `json:"steps,omitempty"`
	Timestamp int64              `json:"timestamp"`
}

func toEventView(ev engine.Event) EventView {
	view := EventView{
		Operation: ev.Operation,
		Size:      ev.Capacity,
		Timestamp: ev.At.UnixMilli(),
	}
	if ev.Operation == engine.OpReset {
		return view
	}

	key := ev.Key
	stats := models.ToStatsView(ev.Stats)
	view.Method = ev.Strategy.String()
	view.Value = &key
	view.Stats = &stats

	switch {
	case ev.Err != nil:
		view.Error = ev.Err.Error()
		if ev.Insert != nil {
			view.Steps = models.ToStepViews(ev.Insert.Steps)
		}
	case ev.Insert != nil:
		iv := models.ToInsertView(*ev.Insert)
		view.Insert = &iv
	case ev.Search != nil:
		sv := models.ToSearchView(*ev.Search)
		view.Search = &sv
	}
	return view
}

type connection struct {
	ws   *websocket.Conn
	send chan []byte
	h    *Hub
}

func (c *connection) reader() {
	defer func() {
		select {
		case c.h.unregister <- c:
		case <-c.h.done:
		}
	}()
	for {
		// clients only listen; reading detects close
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *connection) writer() {
	defer c.ws.Close()
	for message := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Hub fans registry events out to every connected websocket client. Slow
// clients are dropped rather than allowed to stall the registry.
type Hub struct {
	connections map[*connection]bool
	broadcast   chan []byte
	register    chan *connection
	unregister  chan *connection
	clients     atomic.Int64
	upgrader    websocket.Upgrader
	done        chan struct{}
}

func NewHub(allowedOrigins []string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Hub{
		connections: make(map[*connection]bool),
		broadcast:   make(chan []byte, sendBuffer),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.connections {
				h.drop(c)
			}
			log.Info("[WS] Hub stopped")
			return
		case c := <-h.register:
			h.connections[c] = true
			h.clients.Add(1)
			log.Debug("[WS] Registered new websocket connection")
		case c := <-h.unregister:
			h.drop(c)
			log.Debug("[WS] Unregistered websocket connection")
		case m := <-h.broadcast:
			for c := range h.connections {
				select {
				case c.send <- m:
				default:
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *connection) {
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
		h.clients.Add(-1)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.clients.Load())
}

// OnEvent implements engine.Listener. It never blocks; events are dropped
// when the broadcast queue is full.
func (h *Hub) OnEvent(ev engine.Event) {
	msg, err := json.Marshal(toEventView(ev))
	if err != nil {
		log.Errorf("[WS] Encode event: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Warning("[WS] Broadcast queue full, dropping event")
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("[WS] Error upgrading to websockets: %v", err)
		return
	}

	c := &connection{send: make(chan []byte, sendBuffer), ws: ws, h: h}
	select {
	case h.register <- c:
	case <-h.done:
		ws.Close()
		return
	}
	go c.writer()
	c.reader()
}
