package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"TickerBoard/internal/chart"
	"TickerBoard/internal/model"
	"TickerBoard/internal/presenter"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	sendBuffer = 8
)

// View is what the page shows: the latest output plus its rendered chart.
type View struct {
	presenter.Output
	ChartSVG string `json:"chart_svg"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the currently displayed view and pushes every change to
// connected WebSocket clients. It implements session.Publisher.
type Hub struct {
	mu      sync.RWMutex
	view    View
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	chart    chart.Options
	logger   *zap.Logger
}

// NewHub creates a hub whose initial view is an empty page for pair.
func NewHub(pair model.Pair, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		chart:  chart.DefaultOptions(),
		logger: logger,
	}
	h.view = View{Output: presenter.Output{
		Pair:       pair,
		Title:      presenter.PageTitle,
		Subheading: presenter.Subheading(pair),
	}}
	return h
}

// View returns the view currently on screen.
func (h *Hub) View() View {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.view
}

// Publish merges out into the displayed view and broadcasts it. A failure
// for the pair already on screen keeps the previous summary and chart and
// only raises the notice; a success clears any notice.
func (h *Hub) Publish(out presenter.Output) {
	h.mu.Lock()
	var next View
	if out.Failed() && h.view.Pair == out.Pair && h.view.Chart != nil {
		next = h.view
		next.Notice = out.Notice
	} else {
		next = View{Output: out, ChartSVG: h.renderChart(out.Chart)}
	}
	h.view = next
	msg, err := json.Marshal(next)
	if err != nil {
		h.mu.Unlock()
		h.logger.Error("marshal view", zap.Error(err))
		return
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("websocket client too slow, dropping")
			h.removeLocked(c)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) renderChart(c *presenter.Chart) string {
	svg, err := chart.Render(c, h.chart)
	if err != nil {
		if !errors.Is(err, chart.ErrNoData) {
			h.logger.Error("render chart", zap.Error(err))
		}
		return ""
	}
	return svg
}

// Clients returns the number of connected WebSocket clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and streams views until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if msg, err := json.Marshal(h.view); err == nil {
		c.send <- msg
	}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", zap.String("remote", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop discards client messages and detects disconnects.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// removeLocked drops c; h.mu must be held.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
