package webui

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"bookforge/catalog"
	"bookforge/logging"
	"bookforge/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamConfig holds websocket timing and buffer settings.
type StreamConfig struct {
	// PingInterval is how often to send ping frames (default: 30s)
	PingInterval time.Duration

	// PongWait is how long to wait for a pong (default: 60s)
	PongWait time.Duration

	// WriteWait is the time allowed to write a message (default: 10s)
	WriteWait time.Duration

	// MaxMessageSize caps client messages in bytes (default: 4096)
	MaxMessageSize int64

	// SendBufferSize is the per-client outgoing queue length (default: 16)
	SendBufferSize int
}

// DefaultStreamConfig returns the default configuration.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
		SendBufferSize: 16,
	}
}

// BookStream serves pages of books over websocket connections. Each client
// sends page requests and receives replies in order.
type BookStream struct {
	gen       *catalog.Generator
	collector metrics.Collector
	tracker   Tracker
	limits    PageLimits
	config    StreamConfig
	upgrader  websocket.Upgrader
	logger    *zap.Logger

	mu      sync.RWMutex
	clients map[*streamClient]struct{}
	closed  bool
}

type streamClient struct {
	conn       *websocket.Conn
	remoteAddr string
	send       chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// close signals writePump, which sends a close frame and releases the
// connection.
func (c *streamClient) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// NewBookStream creates a stream handler. collector and tracker may be nil.
func NewBookStream(gen *catalog.Generator, collector metrics.Collector, tracker Tracker, limits PageLimits, config StreamConfig, logger *zap.Logger) *BookStream {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultStreamConfig()
	if config.PingInterval <= 0 {
		config.PingInterval = def.PingInterval
	}
	if config.PongWait <= 0 {
		config.PongWait = def.PongWait
	}
	if config.WriteWait <= 0 {
		config.WriteWait = def.WriteWait
	}
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = def.MaxMessageSize
	}
	if config.SendBufferSize <= 0 {
		config.SendBufferSize = def.SendBufferSize
	}
	if limits.MaxSize < 1 {
		limits = DefaultCatalogAPIConfig().Limits
	}

	return &BookStream{
		gen:       gen,
		collector: collector,
		tracker:   tracker,
		limits:    limits,
		config:    config,
		logger:    logger,
		clients:   make(map[*streamClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The UI is served from the same origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and starts the client's pumps.
func (s *BookStream) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", getClientIP(r)),
			zap.Error(err),
		)
		return
	}

	c := &streamClient{
		conn:       conn,
		remoteAddr: getClientIP(r),
		send:       make(chan []byte, s.config.SendBufferSize),
		done:       make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(s.config.WriteWait))
		conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Debug("WebSocket client connected",
		zap.String("remote_addr", c.remoteAddr),
		zap.Int("clients", total),
	)

	conn.SetReadLimit(s.config.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.config.PongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.config.PongWait))
		return nil
	})

	go s.writePump(c)
	go s.readPump(c)
}

// ClientCount returns the number of connected clients.
func (s *BookStream) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects every client and refuses new connections.
func (s *BookStream) Close() error {
	s.mu.Lock()
	s.closed = true
	clients := make([]*streamClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	clear(s.clients)
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	s.logger.Debug("All WebSocket clients disconnected", zap.Int("clients", len(clients)))
	return nil
}

func (s *BookStream) removeClient(c *streamClient) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	total := len(s.clients)
	s.mu.Unlock()

	c.close()
	if ok {
		s.logger.Debug("WebSocket client disconnected",
			zap.String("remote_addr", c.remoteAddr),
			zap.Int("clients", total),
		)
	}
}

// readPump decodes client messages and answers each one in turn.
func (s *BookStream) readPump(c *streamClient) {
	defer s.removeClient(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("Unexpected websocket close", zap.String("remote_addr", c.remoteAddr), zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(c, NewErrorMessage("", "malformed message"))
			continue
		}

		switch msg.Type {
		case MessageTypePage:
			s.send(c, s.servePage(msg))
		case MessageTypePing:
			s.send(c, NewWSMessage(MessageTypePong, msg.ID, nil))
		default:
			s.send(c, NewErrorMessage(msg.ID, "unknown message type: "+msg.Type))
		}
	}
}

// servePage generates the requested page and records it.
func (s *BookStream) servePage(msg ClientMessage) WSMessage {
	if s.tracker != nil {
		done, ok := s.tracker.Track()
		if !ok {
			return NewErrorMessage(msg.ID, "server is shutting down")
		}
		defer done()
	}

	start := time.Now()
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}

	q, err := parseBookQuery(msg.query(), s.limits)
	var books []catalog.Book
	if err == nil {
		books, err = s.gen.GeneratePage(q.Params, q.Page)
	}

	if s.collector != nil {
		rec := metrics.RequestRecord{
			ID:        id,
			Kind:      metrics.KindWSPage,
			Status:    metrics.StatusSuccess,
			Seed:      q.Params.Seed,
			Locale:    q.Params.Locale,
			Books:     len(books),
			StartTime: start,
			Duration:  time.Since(start),
		}
		if err != nil {
			rec.Status = metrics.StatusClientError
			if statusFor(err) >= http.StatusInternalServerError {
				rec.Status = metrics.StatusError
			}
			rec.ErrorMsg = err.Error()
		}
		s.collector.RecordRequest(rec)
	}

	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			s.logger.Error("WebSocket page failed", logging.RequestID(id), zap.Error(err))
			return NewErrorMessage(msg.ID, "Internal server error")
		}
		return NewErrorMessage(msg.ID, err.Error())
	}

	s.logger.Debug("WebSocket page served",
		logging.PageFields(q.Params.Seed, q.Params.Locale, q.Page.Number, len(books))...,
	)
	return NewBooksMessage(msg.ID, q.Page.Number, books)
}

// send queues msg for c. A client whose queue is full is dropped.
func (s *BookStream) send(c *streamClient, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Failed to marshal websocket message", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	case <-c.done:
	default:
		s.logger.Warn("WebSocket send buffer full, closing client", zap.String("remote_addr", c.remoteAddr))
		c.close()
	}
}

// writePump writes queued messages and periodic pings until the client
// closes.
func (s *BookStream) writePump(c *streamClient) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug("WebSocket write failed", zap.String("remote_addr", c.remoteAddr), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(s.config.WriteWait))
			return
		}
	}
}
