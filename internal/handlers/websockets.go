package handlers

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/models"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingEvery  = streamPongWait * 9 / 10
	streamMaxMessage = 1 << 12

	defaultStreamInterval = time.Second
	minStreamInterval     = 10 * time.Millisecond
	maxStreamInterval     = 10 * time.Second
)

// Message types exchanged on the spawn stream.
const (
	wsTypeSpawnPrediction = "spawn_prediction"
	wsTypeError           = "error"

	cmdRefresh     = "refresh"
	cmdSetInterval = "set_interval"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// streamCommand is a control message sent by the client.
type streamCommand struct {
	Type       string `json:"type"`
	IntervalMS int    `json:"interval_ms,omitempty"`
}

// spawnStream pushes predictions to one websocket client.
type spawnStream struct {
	conn     *websocket.Conn
	predict  func(context.Context) models.SpawnPrediction
	log      *logger.Logger
	interval time.Duration
}

// @Summary      Spawn prediction stream
// @Description  WebSocket pushing the spawn prediction every interval (?interval=2s or ?interval_ms=500, 10ms..10s).
// @Description  Clients may send {"type":"refresh"} or {"type":"set_interval","interval_ms":N}.
// @Tags         spawns
// @Router       /api/ws/spawn-prediction [get]
func (h *Handler) wsSpawnPrediction(c *gin.Context) {
	interval := streamIntervalFromQuery(c.Request.URL.Query())

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &spawnStream{
		conn:     conn,
		predict:  h.services.PredictSpawns,
		log:      h.log,
		interval: interval,
	}
	s.run(c.Request.Context())
}

func (s *spawnStream) run(ctx context.Context) {
	s.conn.SetReadLimit(streamMaxMessage)
	_ = s.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	cmds := make(chan streamCommand)
	done := make(chan struct{})
	defer close(done)
	go s.readCommands(cmds, done)

	push := time.NewTicker(s.interval)
	defer push.Stop()
	ping := time.NewTicker(streamPingEvery)
	defer ping.Stop()

	if err := s.send(ctx); err != nil {
		s.debug("ws_write_failed", err)
		return
	}

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-cmds:
			if !ok {
				return
			}
			err = s.handle(ctx, cmd, push)
		case <-push.C:
			err = s.send(ctx)
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			s.debug("ws_write_failed", err)
			return
		}
	}
}

// readCommands decodes client messages until the connection closes or done
// is closed, then closes cmds.
func (s *spawnStream) readCommands(cmds chan<- streamCommand, done <-chan struct{}) {
	defer close(cmds)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.debug("ws_read_closed", err)
			return
		}
		var cmd streamCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			cmd = streamCommand{}
		}
		select {
		case cmds <- cmd:
		case <-done:
			return
		}
	}
}

func (s *spawnStream) handle(ctx context.Context, cmd streamCommand, push *time.Ticker) error {
	switch cmd.Type {
	case cmdRefresh:
		return s.send(ctx)
	case cmdSetInterval:
		d, ok := clampStreamInterval(time.Duration(cmd.IntervalMS) * time.Millisecond)
		if !ok {
			return s.write(wsEnvelope{Type: wsTypeError, Error: "interval_ms must be between 10 and 10000"})
		}
		s.interval = d
		push.Reset(d)
		return nil
	default:
		return s.write(wsEnvelope{Type: wsTypeError, Error: "unknown command"})
	}
}

func (s *spawnStream) send(ctx context.Context) error {
	return s.write(wsEnvelope{Type: wsTypeSpawnPrediction, Data: s.predict(ctx)})
}

func (s *spawnStream) write(env wsEnvelope) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return s.conn.WriteJSON(env)
}

func (s *spawnStream) debug(event string, err error) {
	if s.log != nil {
		s.log.Debugw(event, "err", err)
	}
}

// streamIntervalFromQuery reads ?interval=2s, falling back to ?interval_ms=2000.
func streamIntervalFromQuery(q url.Values) time.Duration {
	if v := q.Get("interval"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			if d, ok := clampStreamInterval(d); ok {
				return d
			}
		}
	}
	if v := q.Get("interval_ms"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			if d, ok := clampStreamInterval(time.Duration(ms) * time.Millisecond); ok {
				return d
			}
		}
	}
	return defaultStreamInterval
}

func clampStreamInterval(d time.Duration) (time.Duration, bool) {
	if d < minStreamInterval || d > maxStreamInterval {
		return 0, false
	}
	return d, true
}
